package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/services/learning"
	courseValidator "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ============ Course ============

func AdminCreateCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	course := models.Course{
		Title:          reqData.Title,
		Description:    reqData.Description,
		InstructorName: reqData.InstructorName,
		ThumbnailURL:   reqData.ThumbnailURL,
		Price:          reqData.Price,
		IsFree:         reqData.IsFree,
		HasCertificate: reqData.HasCertificate,
		IsPublished:    reqData.IsPublished,
	}
	if course.IsFree {
		course.Price = 0
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		return respondError(c, err)
	}
	Cache.Invalidate(c.UserContext())
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)
	reqData := c.Locals("validatedCourse").(*courseValidator.UpdateCourseRequest)
	db := database.Database.Db

	course, err := learning.GetCourse(db, courseID)
	if err != nil {
		return respondError(c, err, "courseId", courseID)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.InstructorName != nil {
		updates["instructor_name"] = *reqData.InstructorName
	}
	if reqData.ThumbnailURL != nil {
		updates["thumbnail_url"] = *reqData.ThumbnailURL
	}
	if reqData.Price != nil {
		updates["price"] = *reqData.Price
	}
	if reqData.IsFree != nil {
		updates["is_free"] = *reqData.IsFree
	}
	if reqData.HasCertificate != nil {
		updates["has_certificate"] = *reqData.HasCertificate
	}
	if reqData.IsPublished != nil {
		updates["is_published"] = *reqData.IsPublished
	}
	if len(updates) > 0 {
		if err := db.Model(course).Updates(updates).Error; err != nil {
			return respondError(c, err, "courseId", courseID)
		}
	}

	updated, err := learning.GetCourse(db, courseID)
	if err != nil {
		return respondError(c, err, "courseId", courseID)
	}
	Cache.Invalidate(c.UserContext(), courseID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", updated)
}

// AdminDeleteCourse is refused while any enrollment exists.
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)
	if err := learning.DeleteCourse(database.Database.Db, courseID); err != nil {
		return respondError(c, err, "courseId", courseID)
	}
	Cache.Invalidate(c.UserContext(), courseID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// ============ Topics & Lessons ============

func AdminCreateTopic(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)
	reqData := c.Locals("validatedTopic").(*courseValidator.CreateTopicRequest)
	db := database.Database.Db

	if _, err := learning.GetCourse(db, courseID); err != nil {
		return respondError(c, err, "courseId", courseID)
	}
	topic := models.Topic{CourseID: courseID, Title: reqData.Title, OrderIndex: reqData.OrderIndex}
	if err := db.Create(&topic).Error; err != nil {
		return respondError(c, err, "courseId", courseID)
	}
	Cache.Invalidate(c.UserContext(), courseID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Topic created successfully!", topic)
}

// checkTopic verifies topicID, when set, belongs to courseID.
func checkTopic(db *gorm.DB, c *fiber.Ctx, courseID uint, topicID *uint) (bool, error) {
	if topicID == nil {
		return true, nil
	}
	var topic models.Topic
	if err := db.Where("id = ? AND course_id = ?", *topicID, courseID).First(&topic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, middleware.ValidationErrorResponse(c, map[string]string{"topicId": "topic does not belong to this course"})
		}
		return false, respondError(c, err)
	}
	return true, nil
}

func AdminCreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(uint)
	reqData := c.Locals("validatedLesson").(*courseValidator.CreateLessonRequest)
	db := database.Database.Db

	if _, err := learning.GetCourse(db, courseID); err != nil {
		return respondError(c, err, "courseId", courseID)
	}
	if ok, err := checkTopic(db, c, courseID, reqData.TopicID); !ok {
		return err
	}

	lesson := models.Lesson{
		CourseID:    courseID,
		TopicID:     reqData.TopicID,
		Title:       reqData.Title,
		OrderIndex:  reqData.OrderIndex,
		ContentType: reqData.ContentType,
		ContentURL:  reqData.ContentURL,
		Duration:    reqData.Duration,
	}
	if err := db.Create(&lesson).Error; err != nil {
		return respondError(c, err, "courseId", courseID)
	}
	Cache.Invalidate(c.UserContext(), courseID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func AdminUpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonId").(uint)
	reqData := c.Locals("validatedLesson").(*courseValidator.UpdateLessonRequest)
	db := database.Database.Db

	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, learning.ErrLessonNotFound)
		}
		return respondError(c, err, "lessonId", lessonID)
	}
	if ok, err := checkTopic(db, c, lesson.CourseID, reqData.TopicID); !ok {
		return err
	}

	updates := map[string]interface{}{}
	if reqData.TopicID != nil {
		updates["topic_id"] = *reqData.TopicID
	}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.OrderIndex != nil {
		updates["order_index"] = *reqData.OrderIndex
	}
	if reqData.ContentType != nil {
		updates["content_type"] = *reqData.ContentType
	}
	if reqData.ContentURL != nil {
		updates["content_url"] = *reqData.ContentURL
	}
	if reqData.Duration != nil {
		updates["duration"] = *reqData.Duration
	}
	if len(updates) > 0 {
		if err := db.Model(&lesson).Updates(updates).Error; err != nil {
			return respondError(c, err, "lessonId", lessonID)
		}
	}
	if err := db.First(&lesson, lessonID).Error; err != nil {
		return respondError(c, err, "lessonId", lessonID)
	}
	Cache.Invalidate(c.UserContext(), lesson.CourseID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft-deletes a lesson. Existing progress percentages are
// recomputed on the next completion event in the course.
func AdminDeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonId").(uint)
	db := database.Database.Db

	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, learning.ErrLessonNotFound)
		}
		return respondError(c, err, "lessonId", lessonID)
	}
	if err := db.Delete(&lesson).Error; err != nil {
		return respondError(c, err, "lessonId", lessonID)
	}
	Cache.Invalidate(c.UserContext(), lesson.CourseID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
