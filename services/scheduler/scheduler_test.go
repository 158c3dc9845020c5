package scheduler

import (
	"elearn/models"
	"elearn/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpirePendingOrders(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "s@test.io", models.RoleStudent)
	course, _ := testutil.SeedCourse(t, db, models.Course{Title: "Paid", Price: 10}, 1)

	stale := models.Order{UserID: user.ID, CourseID: course.ID, Amount: 10, Currency: "NGN",
		Status: models.OrderPending, PaystackReference: "EAC-stale"}
	stale.CreatedAt = time.Now().UTC().Add(-25 * time.Hour)
	done := models.Order{UserID: user.ID, CourseID: course.ID, Amount: 10, Currency: "NGN",
		Status: models.OrderCompleted, PaystackReference: "EAC-done"}
	done.CreatedAt = time.Now().UTC().Add(-72 * time.Hour)
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&done).Error)

	s := New(db, 24*time.Hour, nil)
	assert.Equal(t, int64(1), s.ExpirePendingOrders())
	assert.Equal(t, int64(0), s.ExpirePendingOrders())

	var got models.Order
	require.NoError(t, db.Where("paystack_reference = ?", "EAC-done").First(&got).Error)
	assert.Equal(t, models.OrderCompleted, got.Status)
	var expired models.Order
	require.NoError(t, db.Where("paystack_reference = ?", "EAC-stale").First(&expired).Error)
	assert.Equal(t, models.OrderCancelled, expired.Status)
}

func TestReissueCertificates_Notifies(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "r@test.io", models.RoleStudent)
	course, _ := testutil.SeedCourse(t, db, models.Course{Title: "Cert", IsFree: true, HasCertificate: true}, 1)
	e := testutil.SeedEnrollment(t, db, user.ID, course.ID)
	require.NoError(t, db.Model(&e).Update("progress", 100).Error)

	var notified []models.Certificate
	s := New(db, time.Hour, func(c models.Certificate) { notified = append(notified, c) })

	issued := s.ReissueCertificates()
	require.Len(t, issued, 1)
	require.Len(t, notified, 1)
	assert.Equal(t, issued[0].CertificateNumber, notified[0].CertificateNumber)

	assert.Empty(t, s.ReissueCertificates())
}

func TestStartStop(t *testing.T) {
	db := testutil.OpenDB(t)
	s := New(db, time.Hour, nil)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}
