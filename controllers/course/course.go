package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/services/learning"
	"elearn/services/notify"
	"elearn/utils"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists the published catalog.
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if Cache.GetJSON(c.UserContext(), utils.CatalogKey(), &courses) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
	}

	courses, err := learning.ListPublishedCourses(database.Database.Db)
	if err != nil {
		return respondError(c, err)
	}
	Cache.SetJSON(c.UserContext(), utils.CatalogKey(), courses)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourseDetails returns a published course with its outline. Lesson
// content is not included.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)

	var course models.Course
	if Cache.GetJSON(c.UserContext(), utils.CourseKey(courseID), &course) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
	}

	found, err := learning.GetPublishedCourse(database.Database.Db, courseID)
	if err != nil {
		return respondError(c, err, "courseId", courseID)
	}
	Cache.SetJSON(c.UserContext(), utils.CourseKey(courseID), found)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", found)
}

// EnrollInCourse enrolls the caller in a free course and returns the
// enrollment. Paid courses go through /payments/initialize.
func EnrollInCourse(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	courseID := c.Locals("courseId").(uint)
	db := database.Database.Db

	enrollment, err := learning.EnrollFree(db, userID, courseID)
	if err != nil {
		return respondError(c, err, "userId", userID, "courseId", courseID)
	}
	notify.Enrolled(db, userID, courseID)
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}
