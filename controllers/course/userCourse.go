package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/services/learning"
	"elearn/services/notify"

	"github.com/gofiber/fiber/v2"
)

// GetLesson returns a lesson with its content to enrolled users.
func GetLesson(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	lessonID := c.Locals("lessonId").(uint)

	lesson, err := learning.GetLessonForUser(database.Database.Db, userID, middleware.CurrentRole(c), lessonID)
	if err != nil {
		return respondError(c, err, "userId", userID, "lessonId", lessonID)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", lesson)
}

// CompleteLesson marks a lesson complete and reports the course progress.
func CompleteLesson(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	lessonID := c.Locals("lessonId").(uint)
	db := database.Database.Db

	result, err := learning.CompleteLesson(db, userID, lessonID)
	if err != nil {
		return respondError(c, err, "userId", userID, "lessonId", lessonID)
	}
	if result.NewCertificate != nil {
		go notify.CertificateIssued(db, *result.NewCertificate)
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"progress":          result.Progress,
		"courseCompleted":   result.CourseCompleted,
		"certificateIssued": result.CertificateIssued,
	})
}

// GetLessonProgress lists the caller's lesson progress records for a course.
func GetLessonProgress(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	courseID := c.Locals("courseId").(uint)

	records, err := learning.GetProgress(database.Database.Db, userID, courseID)
	if err != nil {
		return respondError(c, err, "userId", userID, "courseId", courseID)
	}
	return c.JSON(records)
}

func GetMyEnrollments(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	enrollments, err := learning.ListEnrollments(database.Database.Db, userID)
	if err != nil {
		return respondError(c, err, "userId", userID)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
