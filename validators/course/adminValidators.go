package courseValidator

import (
	"elearn/middleware"
	"elearn/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CreateCourseRequest struct {
	Title          string  `json:"title" validate:"notblank,min=3,max=200"`
	Description    string  `json:"description" validate:"max=5000"`
	InstructorName string  `json:"instructorName" validate:"max=120"`
	ThumbnailURL   string  `json:"thumbnailUrl" validate:"omitempty,url"`
	Price          float64 `json:"price" validate:"gte=0"`
	IsFree         bool    `json:"isFree"`
	HasCertificate bool    `json:"hasCertificate"`
	IsPublished    bool    `json:"isPublished"`
}

// UpdateCourseRequest is a partial update; nil fields are left unchanged.
type UpdateCourseRequest struct {
	Title          *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description    *string  `json:"description" validate:"omitempty,max=5000"`
	InstructorName *string  `json:"instructorName" validate:"omitempty,max=120"`
	ThumbnailURL   *string  `json:"thumbnailUrl" validate:"omitempty,url"`
	Price          *float64 `json:"price" validate:"omitempty,gte=0"`
	IsFree         *bool    `json:"isFree"`
	HasCertificate *bool    `json:"hasCertificate"`
	IsPublished    *bool    `json:"isPublished"`
}

type CreateTopicRequest struct {
	Title      string `json:"title" validate:"notblank,max=200"`
	OrderIndex int    `json:"orderIndex" validate:"gte=0"`
}

type CreateLessonRequest struct {
	TopicID     *uint  `json:"topicId"`
	Title       string `json:"title" validate:"notblank,max=200"`
	OrderIndex  int    `json:"orderIndex" validate:"gte=0"`
	ContentType string `json:"contentType" validate:"content_type"`
	ContentURL  string `json:"contentUrl" validate:"omitempty,url"`
	Duration    int    `json:"duration" validate:"gte=0"`
}

type UpdateLessonRequest struct {
	TopicID     *uint   `json:"topicId"`
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	OrderIndex  *int    `json:"orderIndex" validate:"omitempty,gte=0"`
	ContentType *string `json:"contentType" validate:"omitempty,content_type"`
	ContentURL  *string `json:"contentUrl" validate:"omitempty,url"`
	Duration    *int    `json:"duration" validate:"omitempty,gte=0"`
}

// CreateCourseAdmin validates admin course creation request
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		if !reqData.IsFree && reqData.Price <= 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"price": "price must be greater than 0 unless the course is free",
			})
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates admin course update request
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func CreateTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTopicRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedTopic", reqData)
		return c.Next()
	}
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLessonRequest)
		if reqData.ContentType == "" {
			reqData.ContentType = "video"
		}
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateLessonRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
