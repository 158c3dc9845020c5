package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PAYSTACK_SECRET_KEY", "")
	t.Setenv("PENDING_ORDER_TTL_HOURS", "6")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("FRONTEND_URL", "https://learn.example.com/")

	LoadConfig()

	assert.Equal(t, "3000", AppConfig.Port)
	assert.Equal(t, 6*time.Hour, AppConfig.PendingOrderTTL)
	assert.False(t, AppConfig.SchedulerEnabled)
	assert.Equal(t, "https://learn.example.com", AppConfig.FrontendURL)
}

func TestValidate_RequiresPaystackSecret(t *testing.T) {
	c := &Config{JWTKey: "user", AdminJWTKey: "admin", AdminPassword: "pw"}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAYSTACK_SECRET_KEY")

	c.PaystackSecretKey = "sk_test_x"
	assert.NoError(t, c.Validate())
}

func TestValidate_AdminKeyMustDiffer(t *testing.T) {
	c := &Config{JWTKey: "same", AdminJWTKey: "same", AdminPassword: "pw", PaystackSecretKey: "sk"}
	assert.Error(t, c.Validate())
}

func TestGetEnvInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}
