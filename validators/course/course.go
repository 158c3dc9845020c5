package courseValidator

import (
	"elearn/validators"

	"github.com/gofiber/fiber/v2"
)

// CourseID validates the :id course path parameter.
func CourseID() fiber.Handler {
	return validators.IDParam("id", "courseId", "Course ID")
}

// ProgressCourseID validates the :courseId path parameter of the progress route.
func ProgressCourseID() fiber.Handler {
	return validators.IDParam("courseId", "courseId", "Course ID")
}

func LessonID() fiber.Handler {
	return validators.IDParam("id", "lessonId", "Lesson ID")
}

func CertificateID() fiber.Handler {
	return validators.IDParam("id", "certificateId", "Certificate ID")
}
