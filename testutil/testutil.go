// Package testutil holds fixtures shared by package tests: an in-memory
// database wired into the global handle and seed helpers.
package testutil

import (
	"elearn/config"
	"elearn/database"
	"elearn/models"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config installs a deterministic configuration for tests.
func Config() *config.Config {
	config.AppConfig = &config.Config{
		Port:                "0",
		AppEnv:              "test",
		JWTKey:              "test-user-secret",
		AdminJWTKey:         "test-admin-secret",
		AdminPassword:       "operator-pass",
		SaltRound:           bcrypt.MinCost,
		PaystackSecretKey:   "sk_test_123",
		PaystackBaseURL:     "http://paystack.invalid",
		PaystackCallbackURL: "http://localhost/payments/callback",
		PaymentCurrency:     "NGN",
		FrontendURL:         "http://frontend.test",
	}
	return config.AppConfig
}

// OpenDB opens a migrated in-memory SQLite database and installs it as the
// global database. A single connection keeps the in-memory schema alive.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	Config()

	db, err := database.Open(sqlite.Open("file::memory:"), false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.Database = database.DbInstance{Db: db}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func SeedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{Name: "Test " + email, Email: email, Password: string(hash), Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedCourse creates a published course with n lessons.
func SeedCourse(t *testing.T, db *gorm.DB, course models.Course, n int) (models.Course, []models.Lesson) {
	t.Helper()
	course.IsPublished = true
	if course.Title == "" {
		course.Title = "Course"
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	lessons := make([]models.Lesson, 0, n)
	for i := 0; i < n; i++ {
		l := models.Lesson{
			CourseID:    course.ID,
			Title:       "Lesson",
			OrderIndex:  i + 1,
			ContentType: models.ContentVideo,
			ContentURL:  "https://cdn.test/lesson.mp4",
			Duration:    10,
		}
		if err := db.Create(&l).Error; err != nil {
			t.Fatalf("seed lesson: %v", err)
		}
		lessons = append(lessons, l)
	}
	return course, lessons
}

func SeedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) models.Enrollment {
	t.Helper()
	e := models.Enrollment{UserID: userID, CourseID: courseID}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return e
}
