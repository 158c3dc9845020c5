package paymentController

import (
	"elearn/config"
	"elearn/logger"
	"elearn/middleware"
	"elearn/services/notify"
	"elearn/services/payment"
	paymentValidator "elearn/validators/payment"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Reconciler is installed by main.
var Reconciler *payment.Reconciler

// InitializePayment opens a gateway checkout for a paid course.
func InitializePayment(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	reqData := c.Locals("validatedInitialize").(*paymentValidator.InitializeRequest)

	result, order, err := Reconciler.Initialize(c.UserContext(), userID, reqData.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, payment.ErrFreeCourse):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is free, enroll directly!", nil)
		case errors.Is(err, payment.ErrAlreadyEnrolled):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User already enrolled in this course!", nil)
		case errors.Is(err, payment.ErrUserNotFound):
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		kv := []interface{}{"userId", userID, "courseId", reqData.CourseID, "error", err}
		if order != nil {
			kv = append(kv, "orderId", order.ID, "reference", order.PaystackReference)
		}
		logger.Log.Error("payment initialization failed", kv...)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to initialize payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment initialized.", result)
}

// PaymentCallback is the gateway redirect target. It always redirects the
// browser to the course page with an explicit outcome.
func PaymentCallback(c *fiber.Ctx) error {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}

	result, err := Reconciler.Verify(c.UserContext(), reference)
	var courseID uint
	if result != nil && result.Order != nil {
		courseID = result.Order.CourseID
	}
	if err != nil {
		tag := payment.ErrorTag(err)
		logger.Log.Warn("payment callback failed", "reference", reference, "tag", tag, "error", err)
		return c.Redirect(redirectURL(courseID, "failed", tag), fiber.StatusFound)
	}

	if result.EnrollmentCreated {
		notify.Enrolled(Reconciler.DB, result.Order.UserID, result.Order.CourseID)
	}
	return c.Redirect(redirectURL(courseID, "success", ""), fiber.StatusFound)
}

// VerifyPayment is the client-initiated verify for the caller's own order.
func VerifyPayment(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	reqData := c.Locals("validatedVerify").(*paymentValidator.VerifyRequest)

	order, err := Reconciler.Lookup(reqData.Reference)
	if err != nil || order.UserID != userID {
		if err != nil && payment.ErrorTag(err) == payment.TagServerError {
			logger.Log.Error("payment lookup failed", "reference", reqData.Reference, "userId", userID, "error", err)
			return verifyResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", 0)
		}
		return verifyResponse(c, fiber.StatusNotFound, false, "Order not found!", 0)
	}

	result, err := Reconciler.Verify(c.UserContext(), reqData.Reference)
	if err != nil {
		switch payment.ErrorTag(err) {
		case payment.TagVerificationFailed:
			return verifyResponse(c, fiber.StatusBadRequest, false, "Payment verification failed!", order.CourseID)
		case payment.TagInvalidOrder:
			return verifyResponse(c, fiber.StatusBadRequest, false, "This payment can no longer be completed!", order.CourseID)
		case payment.TagOrderNotFound:
			return verifyResponse(c, fiber.StatusNotFound, false, "Order not found!", 0)
		}
		logger.Log.Error("payment verification failed", "orderId", order.ID, "reference", order.PaystackReference, "userId", userID, "error", err)
		return verifyResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", order.CourseID)
	}

	if result.EnrollmentCreated {
		notify.Enrolled(Reconciler.DB, result.Order.UserID, result.Order.CourseID)
	}
	return verifyResponse(c, fiber.StatusOK, true, "Payment verified, you are enrolled!", result.Order.CourseID)
}

func verifyResponse(c *fiber.Ctx, code int, status bool, message string, courseID uint) error {
	body := fiber.Map{"status": status, "message": message}
	if courseID != 0 {
		body["courseId"] = courseID
	}
	return c.Status(code).JSON(body)
}

func redirectURL(courseID uint, outcome, tag string) string {
	path := "/courses"
	if courseID != 0 {
		path = fmt.Sprintf("/courses/%d", courseID)
	}
	query := "?payment=" + url.QueryEscape(outcome)
	if tag != "" {
		query += "&error=" + url.QueryEscape(tag)
	}
	return config.AppConfig.FrontendURL + path + query
}
