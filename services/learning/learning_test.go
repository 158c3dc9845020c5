package learning

import (
	"elearn/models"
	"elearn/testutil"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		name             string
		total, completed int64
		want             int
	}{
		{"no lessons", 0, 0, 0},
		{"no lessons but stale completions", 0, 4, 0},
		{"none done", 3, 0, 0},
		{"one of three", 3, 1, 33},
		{"two of three rounds up", 3, 2, 67},
		{"all done", 3, 3, 100},
		{"more completions than lessons", 2, 5, 100},
		{"half", 8, 4, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateProgress(tt.total, tt.completed)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestMarkComplete_Idempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "idem@test.io", models.RoleStudent)
	_, lessons := testutil.SeedCourse(t, db, models.Course{Title: "Go"}, 2)

	first, err := MarkComplete(db, user.ID, lessons[0].ID)
	require.NoError(t, err)
	second, err := MarkComplete(db, user.ID, lessons[0].ID)
	require.NoError(t, err)

	var count int64
	db.Model(&models.LessonProgress{}).Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Completed)
	require.NotNil(t, second.CompletedAt)
}

func TestGetProgress_OnlyCourseLessons(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "p@test.io", models.RoleStudent)
	a, aLessons := testutil.SeedCourse(t, db, models.Course{Title: "A"}, 2)
	_, bLessons := testutil.SeedCourse(t, db, models.Course{Title: "B"}, 1)

	_, err := MarkComplete(db, user.ID, aLessons[1].ID)
	require.NoError(t, err)
	_, err = MarkComplete(db, user.ID, bLessons[0].ID)
	require.NoError(t, err)

	rows, err := GetProgress(db, user.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, aLessons[1].ID, rows[0].LessonID)
}

func TestEnroll_DuplicateIsConflict(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "dup@test.io", models.RoleStudent)
	course, _ := testutil.SeedCourse(t, db, models.Course{Title: "Dup", IsFree: true}, 1)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	_, err = Enroll(db, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var count int64
	db.Model(&models.Enrollment{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnsureEnrollment_CreatesOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "ensure@test.io", models.RoleStudent)
	course, _ := testutil.SeedCourse(t, db, models.Course{Title: "Paid", Price: 10}, 1)

	e1, created, err := EnsureEnrollment(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)

	e2, created, err := EnsureEnrollment(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, e1.ID, e2.ID)
}

func TestEnrollFree(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "free@test.io", models.RoleStudent)
	free, _ := testutil.SeedCourse(t, db, models.Course{Title: "Free", IsFree: true}, 1)
	paid, _ := testutil.SeedCourse(t, db, models.Course{Title: "Paid", Price: 49.99}, 1)

	e, err := EnrollFree(db, user.ID, free.ID)
	require.NoError(t, err)
	assert.Equal(t, free.ID, e.CourseID)

	_, err = EnrollFree(db, user.ID, free.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	_, err = EnrollFree(db, user.ID, paid.ID)
	assert.ErrorIs(t, err, ErrPaymentRequired)

	_, err = EnrollFree(db, user.ID, 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestUpdateProgress_CompletedAtTracksHundred(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "upd@test.io", models.RoleStudent)
	course, _ := testutil.SeedCourse(t, db, models.Course{Title: "U"}, 1)
	testutil.SeedEnrollment(t, db, user.ID, course.ID)

	e, err := UpdateProgress(db, user.ID, course.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, e.Progress)
	assert.NotNil(t, e.CompletedAt)

	e, err = UpdateProgress(db, user.ID, course.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, e.Progress)
	assert.Nil(t, e.CompletedAt)

	stored, err := GetEnrollment(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.Progress)
	assert.Nil(t, stored.CompletedAt)

	_, err = UpdateProgress(db, user.ID, 4242, 10)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestComputeCourseProgress_IgnoresDeletedLessons(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "del@test.io", models.RoleStudent)
	course, lessons := testutil.SeedCourse(t, db, models.Course{Title: "D"}, 4)

	_, err := MarkComplete(db, user.ID, lessons[0].ID)
	require.NoError(t, err)
	p, err := ComputeCourseProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, p)

	require.NoError(t, db.Delete(&models.Lesson{}, lessons[3].ID).Error)
	p, err = ComputeCourseProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, p)

	empty, _ := testutil.SeedCourse(t, db, models.Course{Title: "Empty"}, 0)
	p, err = ComputeCourseProgress(db, user.ID, empty.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p)
}

func TestIssueIfEligible_AtMostOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "cert@test.io", models.RoleStudent)
	course, _ := testutil.SeedCourse(t, db, models.Course{Title: "C", HasCertificate: true}, 1)
	testutil.SeedEnrollment(t, db, user.ID, course.ID)
	_, err := UpdateProgress(db, user.ID, course.ID, 100)
	require.NoError(t, err)

	cert, err := IssueIfEligible(db, user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.Contains(t, cert.CertificateNumber, "CERT-")

	again, err := IssueIfEligible(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, again)

	var count int64
	db.Model(&models.Certificate{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	e, err := GetEnrollment(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, e.CertificateIssued)
}

func TestIssueIfEligible_Gating(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "gate@test.io", models.RoleStudent)
	noCert, _ := testutil.SeedCourse(t, db, models.Course{Title: "No cert"}, 1)
	withCert, _ := testutil.SeedCourse(t, db, models.Course{Title: "Cert", HasCertificate: true}, 1)
	testutil.SeedEnrollment(t, db, user.ID, noCert.ID)
	testutil.SeedEnrollment(t, db, user.ID, withCert.ID)

	_, err := UpdateProgress(db, user.ID, noCert.ID, 100)
	require.NoError(t, err)
	cert, err := IssueIfEligible(db, user.ID, noCert.ID)
	require.NoError(t, err)
	assert.Nil(t, cert, "hasCertificate=false never produces a certificate")

	_, err = UpdateProgress(db, user.ID, withCert.ID, 99)
	require.NoError(t, err)
	cert, err = IssueIfEligible(db, user.ID, withCert.ID)
	require.NoError(t, err)
	assert.Nil(t, cert, "incomplete course is not eligible")

	var count int64
	db.Model(&models.Certificate{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestCompleteLesson_CourseCompletionIssuesCertificate(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "flow@test.io", models.RoleStudent)
	course, lessons := testutil.SeedCourse(t, db, models.Course{Title: "Flow", HasCertificate: true, IsFree: true}, 3)
	testutil.SeedEnrollment(t, db, user.ID, course.ID)

	res, err := CompleteLesson(db, user.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 33, res.Progress)
	assert.False(t, res.CourseCompleted)
	assert.False(t, res.CertificateIssued)

	res, err = CompleteLesson(db, user.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 67, res.Progress)

	res, err = CompleteLesson(db, user.ID, lessons[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Progress)
	assert.True(t, res.CourseCompleted)
	assert.True(t, res.CertificateIssued)
	require.NotNil(t, res.NewCertificate)

	// Repeating a completion keeps exactly one certificate.
	res, err = CompleteLesson(db, user.ID, lessons[2].ID)
	require.NoError(t, err)
	assert.True(t, res.CertificateIssued)
	assert.Nil(t, res.NewCertificate)

	var count int64
	db.Model(&models.Certificate{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	e, err := GetEnrollment(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, e.Progress)
	assert.NotNil(t, e.CompletedAt)
}

func TestCompleteLesson_RecompletionKeepsCompletedAt(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "again@test.io", models.RoleStudent)
	course, lessons := testutil.SeedCourse(t, db, models.Course{Title: "Once", HasCertificate: true, IsFree: true}, 1)
	testutil.SeedEnrollment(t, db, user.ID, course.ID)

	res, err := CompleteLesson(db, user.ID, lessons[0].ID)
	require.NoError(t, err)
	require.NotNil(t, res.NewCertificate)

	finished := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Update("completed_at", finished).Error)

	_, err = CompleteLesson(db, user.ID, lessons[0].ID)
	require.NoError(t, err)

	e, err := GetEnrollment(db, user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, e.CompletedAt)
	assert.True(t, finished.Equal(*e.CompletedAt), "completedAt moved to %s", e.CompletedAt)

	doc, err := CertificateDocument(db, res.NewCertificate)
	require.NoError(t, err)
	assert.True(t, finished.Equal(doc.CompletedAt))
}

func TestCompleteLesson_Errors(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "err@test.io", models.RoleStudent)
	_, lessons := testutil.SeedCourse(t, db, models.Course{Title: "E"}, 1)

	_, err := CompleteLesson(db, user.ID, lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	_, err = CompleteLesson(db, user.ID, 777)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestCompleteLesson_IssuanceFailureIsIsolated(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "iso@test.io", models.RoleStudent)
	course, lessons := testutil.SeedCourse(t, db, models.Course{Title: "Iso", HasCertificate: true}, 1)
	testutil.SeedEnrollment(t, db, user.ID, course.ID)

	const cb = "test:fail_certificates"
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(cb, func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "certificates" {
			_ = tx.AddError(errors.New("storage unavailable"))
		}
	}))

	res, err := CompleteLesson(db, user.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Progress)
	assert.True(t, res.CourseCompleted)
	assert.False(t, res.CertificateIssued)

	var lp int64
	db.Model(&models.LessonProgress{}).Where("user_id = ?", user.ID).Count(&lp)
	assert.Equal(t, int64(1), lp, "lesson completion survives the failed issuance")

	require.NoError(t, db.Callback().Create().Remove(cb))

	issued, err := ReissueMissingCertificates(db)
	require.NoError(t, err)
	require.Len(t, issued, 1)
	assert.Equal(t, course.ID, issued[0].CourseID)

	issued, err = ReissueMissingCertificates(db)
	require.NoError(t, err)
	assert.Empty(t, issued)
}

func TestDeleteCourse_BlockedByEnrollments(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "delc@test.io", models.RoleStudent)
	busy, _ := testutil.SeedCourse(t, db, models.Course{Title: "Busy"}, 2)
	idle, _ := testutil.SeedCourse(t, db, models.Course{Title: "Idle"}, 2)
	testutil.SeedEnrollment(t, db, user.ID, busy.ID)

	assert.ErrorIs(t, DeleteCourse(db, busy.ID), ErrEnrollmentsExist)
	require.NoError(t, DeleteCourse(db, idle.ID))
	assert.ErrorIs(t, DeleteCourse(db, idle.ID), ErrCourseNotFound)

	var lessons int64
	db.Model(&models.Lesson{}).Where("course_id = ?", idle.ID).Count(&lessons)
	assert.Zero(t, lessons)
}

func TestGetLessonForUser(t *testing.T) {
	db := testutil.OpenDB(t)
	student := testutil.SeedUser(t, db, "s@test.io", models.RoleStudent)
	instructor := testutil.SeedUser(t, db, "i@test.io", models.RoleInstructor)
	course, lessons := testutil.SeedCourse(t, db, models.Course{Title: "L"}, 1)

	_, err := GetLessonForUser(db, student.ID, student.Role, lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	l, err := GetLessonForUser(db, instructor.ID, instructor.Role, lessons[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, l.ContentURL)

	testutil.SeedEnrollment(t, db, student.ID, course.ID)
	_, err = GetLessonForUser(db, student.ID, student.Role, lessons[0].ID)
	assert.NoError(t, err)
}

func TestGetPublishedCourse_HidesContent(t *testing.T) {
	db := testutil.OpenDB(t)
	course, _ := testutil.SeedCourse(t, db, models.Course{Title: "Pub"}, 2)

	got, err := GetPublishedCourse(db, course.ID)
	require.NoError(t, err)
	require.Len(t, got.Lessons, 2)
	for _, l := range got.Lessons {
		assert.Empty(t, l.ContentURL)
	}

	require.NoError(t, db.Model(&models.Course{}).Where("id = ?", course.ID).Update("is_published", false).Error)
	_, err = GetPublishedCourse(db, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
