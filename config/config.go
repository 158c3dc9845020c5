package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port    string
	AppEnv  string
	LogMode string

	DBDriver   string // postgres, mysql, sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBPath     string // sqlite file

	JWTKey        string
	AdminJWTKey   string
	AdminPassword string
	SaltRound     int

	PaystackSecretKey   string
	PaystackBaseURL     string
	PaystackCallbackURL string
	PaymentCurrency     string
	FrontendURL         string

	SendgridAPIKey  string
	EmailSender     string
	EmailSenderName string

	RedisAddr      string
	RedisPassword  string
	CourseCacheTTL time.Duration

	PendingOrderTTL  time.Duration
	SchedulerEnabled bool
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:    getEnv("PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),
		LogMode: getEnv("LOG_MODE", "dev"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "elearn"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBPath:     getEnv("DB_PATH", "elearn.db"),

		JWTKey:        getEnv("JWT_SECRET_KEY", "defaultSecret"),
		AdminJWTKey:   getEnv("ADMIN_JWT_SECRET_KEY", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SaltRound:     getEnvInt("SALT_ROUND", 10),

		PaystackSecretKey:   getEnv("PAYSTACK_SECRET_KEY", ""),
		PaystackBaseURL:     getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaystackCallbackURL: getEnv("PAYSTACK_CALLBACK_URL", "http://localhost:3000/payments/callback"),
		PaymentCurrency:     getEnv("PAYMENT_CURRENCY", "NGN"),
		FrontendURL:         strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),

		SendgridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", "noreply@localhost"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "EACCC Academy"),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		CourseCacheTTL: time.Duration(getEnvInt("COURSE_CACHE_TTL_SECONDS", 300)) * time.Second,

		PendingOrderTTL:  time.Duration(getEnvInt("PENDING_ORDER_TTL_HOURS", 24)) * time.Hour,
		SchedulerEnabled: getEnvBool("SCHEDULER_ENABLED", true),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// Validate reports configuration the process cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.PaystackSecretKey) == "" {
		missing = append(missing, "PAYSTACK_SECRET_KEY")
	}
	if strings.TrimSpace(c.AdminJWTKey) == "" {
		missing = append(missing, "ADMIN_JWT_SECRET_KEY")
	}
	if strings.TrimSpace(c.AdminPassword) == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	if c.AdminJWTKey != "" && c.AdminJWTKey == c.JWTKey {
		return errors.New("ADMIN_JWT_SECRET_KEY must differ from JWT_SECRET_KEY")
	}
	if len(missing) > 0 {
		return errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return b
}
