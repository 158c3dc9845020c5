package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/courses", middleware.AdminMiddleware)

	// Course CRUD
	adminGroup.Post("/", validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", validators.CourseID(), validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseID(), controllers.AdminDeleteCourse)

	// Topics & lessons
	adminGroup.Post("/:id/topics", validators.CourseID(), validators.CreateTopic(), controllers.AdminCreateTopic)
	adminGroup.Post("/:id/lessons", validators.CourseID(), validators.CreateLesson(), controllers.AdminCreateLesson)

	lessonGroup := app.Group("/admin/lessons", middleware.AdminMiddleware)
	lessonGroup.Put("/:id", validators.LessonID(), validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Delete("/:id", validators.LessonID(), controllers.AdminDeleteLesson)

	// Enrollment tracking
	adminGroup.Get("/:id/enrollments", validators.CourseID(), controllers.AdminGetCourseEnrollments)

	// Dashboard
	app.Get("/admin/dashboard/stats", middleware.AdminMiddleware, controllers.AdminDashboardStats)
}
