package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/services/learning"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type enrollmentWithUser struct {
	models.Enrollment
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// AdminGetCourseEnrollments lists the enrolled students of a course.
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)
	db := database.Database.Db

	if _, err := learning.GetCourse(db, courseID); err != nil {
		return respondError(c, err, "courseId", courseID)
	}

	result := []enrollmentWithUser{}
	err := db.Model(&models.Enrollment{}).
		Select("enrollments.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Where("enrollments.course_id = ?", courseID).
		Order("enrollments.created_at desc").
		Scan(&result).Error
	if err != nil {
		return respondError(c, err, "courseId", courseID)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", result)
}

// AdminDashboardStats reports platform totals.
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses, published, users, enrollments, completions, certificates int64
	queries := []struct {
		db  *gorm.DB
		out *int64
	}{
		{db.Model(&models.Course{}), &courses},
		{db.Model(&models.Course{}).Where("is_published = ?", true), &published},
		{db.Model(&models.User{}), &users},
		{db.Model(&models.Enrollment{}), &enrollments},
		{db.Model(&models.Enrollment{}).Where("progress = ?", 100), &completions},
		{db.Model(&models.Certificate{}), &certificates},
	}
	for _, q := range queries {
		if err := q.db.Count(q.out).Error; err != nil {
			return respondError(c, err)
		}
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var byStatus []statusCount
	if err := db.Model(&models.Order{}).Select("status, COUNT(*) AS count").Group("status").Scan(&byStatus).Error; err != nil {
		return respondError(c, err)
	}
	orders := map[string]int64{
		models.OrderPending:   0,
		models.OrderCompleted: 0,
		models.OrderFailed:    0,
		models.OrderCancelled: 0,
	}
	for _, s := range byStatus {
		orders[s.Status] = s.Count
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"totalCourses":       courses,
		"publishedCourses":   published,
		"totalUsers":         users,
		"totalEnrollments":   enrollments,
		"completedCourses":   completions,
		"issuedCertificates": certificates,
		"orders":             orders,
	})
}
