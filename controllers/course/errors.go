package controllers

import (
	"elearn/logger"
	"elearn/middleware"
	"elearn/services/learning"
	"elearn/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Cache holds catalog reads when Redis is configured; nil disables it.
var Cache *utils.CourseCache

// respondError maps workflow errors onto HTTP responses. Anything unknown is
// logged with the request context and surfaced as a generic 500.
func respondError(c *fiber.Ctx, err error, kv ...interface{}) error {
	switch {
	case errors.Is(err, learning.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, learning.ErrLessonNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	case errors.Is(err, learning.ErrEnrollmentNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	case errors.Is(err, learning.ErrCertificateNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	case errors.Is(err, learning.ErrAlreadyEnrolled):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User already enrolled in this course!", nil)
	case errors.Is(err, learning.ErrPaymentRequired):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course requires payment!", nil)
	case errors.Is(err, learning.ErrEnrollmentsExist):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot delete a course that has enrollments!", nil)
	case errors.Is(err, learning.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}
	logger.Log.Error("request failed", append([]interface{}{"path", c.Path(), "error", err}, kv...)...)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}
