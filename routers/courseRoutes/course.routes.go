package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	"elearn/models"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	// Catalog (public)
	courseGroup := app.Group("/courses")
	courseGroup.Get("/", controllers.GetAllCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)

	// Lessons
	lessonGroup := app.Group("/lessons")
	lessonGroup.Get("/:id", middleware.JWTMiddleware, middleware.LoadUser, validators.LessonID(), controllers.GetLesson)
	lessonGroup.Post("/:id/complete", middleware.JWTMiddleware, validators.LessonID(), controllers.CompleteLesson)

	// Progress, enrollments and certificates
	app.Get("/lesson-progress/:courseId", middleware.JWTMiddleware, validators.ProgressCourseID(), controllers.GetLessonProgress)
	app.Get("/my-enrollments", middleware.JWTMiddleware, controllers.GetMyEnrollments)
	app.Get("/my-certificates", middleware.JWTMiddleware, controllers.GetMyCertificates)
	app.Get("/certificates/:id/download", middleware.JWTMiddleware, validators.CertificateID(), controllers.DownloadCertificate)

	// Instructor view of a course roster
	instructorGroup := app.Group("/instructor", middleware.JWTMiddleware, middleware.LoadUser,
		middleware.RequireRole(models.RoleInstructor, models.RoleAdmin))
	instructorGroup.Get("/courses/:id/enrollments", validators.CourseID(), controllers.AdminGetCourseEnrollments)
}
