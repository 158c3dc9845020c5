package payment

import (
	"context"
	"elearn/logger"
	"elearn/models"
	"elearn/services/learning"
	"elearn/utils"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNoReference        = errors.New("payment reference is required")
	ErrOrderNotFound      = errors.New("order not found")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrInvalidOrder       = errors.New("order is not payable")
	ErrCourseNotFound     = errors.New("course not found")
	ErrFreeCourse         = errors.New("course does not require payment")
	ErrAlreadyEnrolled    = errors.New("user already enrolled in this course")
	ErrUserNotFound       = errors.New("user not found")
	ErrGateway            = errors.New("payment gateway error")
)

// Failure tags carried on the callback redirect.
const (
	TagNoReference        = "no-reference"
	TagOrderNotFound      = "order-not-found"
	TagVerificationFailed = "verification-failed"
	TagInvalidOrder       = "invalid-order"
	TagServerError        = "server-error"
)

// ErrorTag classifies a Verify error for the presentation layer.
func ErrorTag(err error) string {
	switch {
	case errors.Is(err, ErrNoReference):
		return TagNoReference
	case errors.Is(err, ErrOrderNotFound):
		return TagOrderNotFound
	case errors.Is(err, ErrVerificationFailed):
		return TagVerificationFailed
	case errors.Is(err, ErrInvalidOrder):
		return TagInvalidOrder
	}
	return TagServerError
}

// Reconciler bridges gateway confirmations into the enrollment ledger.
type Reconciler struct {
	DB          *gorm.DB
	Gateway     utils.PaymentGateway
	Currency    string
	CallbackURL string
}

type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// NewReference builds a reference unique per payment attempt.
func NewReference(userID, courseID uint) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("EAC-%d-%d-%d-%s", time.Now().UnixMilli(), courseID, userID, suffix)
}

// Initialize creates a pending order and opens a gateway transaction for it.
// Any failure after the order exists marks it failed.
func (r *Reconciler) Initialize(ctx context.Context, userID, courseID uint) (*InitializeResult, *models.Order, error) {
	var user models.User
	if err := r.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, errors.Wrap(err, "load user")
	}

	var course models.Course
	if err := r.DB.Where("id = ? AND is_published = ?", courseID, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCourseNotFound
		}
		return nil, nil, errors.Wrap(err, "load course")
	}
	if !course.RequiresPayment() {
		return nil, nil, ErrFreeCourse
	}
	if _, err := learning.GetEnrollment(r.DB, userID, courseID); err == nil {
		return nil, nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, learning.ErrEnrollmentNotFound) {
		return nil, nil, err
	}

	order := models.Order{
		UserID:            userID,
		CourseID:          courseID,
		Amount:            course.Price,
		Currency:          r.currency(),
		Status:            models.OrderPending,
		PaystackReference: NewReference(userID, courseID),
	}
	if err := r.DB.Create(&order).Error; err != nil {
		return nil, nil, errors.Wrap(err, "create order")
	}

	log := logger.Log.With("orderId", order.ID, "reference", order.PaystackReference, "userId", userID, "courseId", courseID)

	data, err := r.Gateway.InitializeTransaction(ctx, utils.InitializeTransactionRequest{
		Email:       user.Email,
		Amount:      utils.ToMinorUnits(order.Amount),
		Reference:   order.PaystackReference,
		Currency:    order.Currency,
		CallbackURL: r.CallbackURL,
	})
	if err != nil {
		log.Error("payment initialization failed", "error", err)
		r.markFailed(order.PaystackReference, err.Error(), nil)
		order.Status = models.OrderFailed
		return nil, &order, errors.Wrap(ErrGateway, err.Error())
	}

	if err := r.DB.Model(&order).Update("paystack_access_code", data.AccessCode).Error; err != nil {
		log.Error("persisting access code failed", "error", err)
		r.markFailed(order.PaystackReference, "persist access code", nil)
		order.Status = models.OrderFailed
		return nil, &order, errors.Wrap(err, "save access code")
	}
	order.PaystackAccessCode = data.AccessCode

	log.Info("payment initialized")
	return &InitializeResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        order.PaystackReference,
	}, &order, nil
}

// VerifyResult describes a successful verification.
type VerifyResult struct {
	Order             *models.Order
	Enrollment        *models.Enrollment
	EnrollmentCreated bool
}

// Verify confirms the payment for reference and applies its effect exactly
// once. Only the caller whose conditional update moves the order out of
// pending, or one that finds it already completed, ensures the enrollment;
// replays never duplicate it.
func (r *Reconciler) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrNoReference
	}

	order, err := r.findOrder(r.DB, reference)
	if err != nil {
		return nil, err
	}
	log := logger.Log.With("orderId", order.ID, "reference", reference, "userId", order.UserID, "courseId", order.CourseID)

	switch order.Status {
	case models.OrderCompleted:
		return r.complete(order, nil)
	case models.OrderPending:
	default:
		return &VerifyResult{Order: order}, ErrInvalidOrder
	}

	data, err := r.Gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		log.Error("payment verification call failed", "error", err)
		r.markFailed(reference, err.Error(), nil)
		order.Status = models.OrderFailed
		return &VerifyResult{Order: order}, errors.Wrap(ErrGateway, err.Error())
	}

	if data.Status != "success" {
		log.Warn("payment not successful", "gatewayStatus", data.Status)
		r.markFailed(reference, "gateway status: "+data.Status, data.Raw)
		order.Status = models.OrderFailed
		return &VerifyResult{Order: order}, ErrVerificationFailed
	}
	if expected := utils.ToMinorUnits(order.Amount); data.Amount != expected {
		log.Warn("payment amount mismatch", "expected", expected, "got", data.Amount)
		r.markFailed(reference, fmt.Sprintf("amount mismatch: expected %d got %d", expected, data.Amount), data.Raw)
		order.Status = models.OrderFailed
		return &VerifyResult{Order: order}, ErrVerificationFailed
	}

	return r.complete(order, data.Raw)
}

// complete performs the pending→completed transition and the enrollment in one
// transaction.
func (r *Reconciler) complete(order *models.Order, raw []byte) (*VerifyResult, error) {
	result := &VerifyResult{}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if order.Status == models.OrderPending {
			now := time.Now().UTC()
			updates := map[string]interface{}{
				"status":  models.OrderCompleted,
				"paid_at": now,
			}
			if len(raw) > 0 {
				updates["gateway_response"] = datatypes.JSON(raw)
			}
			res := tx.Model(&models.Order{}).
				Where("paystack_reference = ? AND status = ?", order.PaystackReference, models.OrderPending).
				Updates(updates)
			if res.Error != nil {
				return errors.Wrap(res.Error, "complete order")
			}
			if res.RowsAffected == 0 {
				// Another caller moved it first; proceed only if it completed.
				current, err := r.findOrder(tx, order.PaystackReference)
				if err != nil {
					return err
				}
				if current.Status != models.OrderCompleted {
					result.Order = current
					return ErrInvalidOrder
				}
			}
		}

		current, err := r.findOrder(tx, order.PaystackReference)
		if err != nil {
			return err
		}
		result.Order = current

		enrollment, created, err := learning.EnsureEnrollment(tx, current.UserID, current.CourseID)
		if err != nil {
			return err
		}
		result.Enrollment = enrollment
		result.EnrollmentCreated = created
		return nil
	})
	if err != nil {
		if result.Order == nil {
			result.Order = order
		}
		return result, err
	}

	if result.EnrollmentCreated {
		logger.Log.Info("payment reconciled, enrollment created",
			"orderId", result.Order.ID, "reference", result.Order.PaystackReference,
			"userId", result.Order.UserID, "courseId", result.Order.CourseID)
	}
	return result, nil
}

func (r *Reconciler) findOrder(db *gorm.DB, reference string) (*models.Order, error) {
	var order models.Order
	if err := db.Where("paystack_reference = ?", reference).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "find order")
	}
	return &order, nil
}

// markFailed moves a pending order to failed. Orders already terminal are left
// untouched.
func (r *Reconciler) markFailed(reference, reason string, raw []byte) {
	updates := map[string]interface{}{
		"status":         models.OrderFailed,
		"failure_reason": truncate(reason, 255),
	}
	if len(raw) > 0 {
		updates["gateway_response"] = datatypes.JSON(raw)
	}
	err := r.DB.Model(&models.Order{}).
		Where("paystack_reference = ? AND status = ?", reference, models.OrderPending).
		Updates(updates).Error
	if err != nil {
		logger.Log.Error("marking order failed", "reference", reference, "error", err)
	}
}

func (r *Reconciler) currency() string {
	if r.Currency == "" {
		return "NGN"
	}
	return r.Currency
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ExpireStaleOrders cancels pending orders older than ttl. Returns the number
// of orders cancelled.
func ExpireStaleOrders(db *gorm.DB, ttl time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	res := db.Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.OrderPending, cutoff).
		Updates(map[string]interface{}{
			"status":         models.OrderCancelled,
			"failure_reason": "expired without confirmation",
		})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "expire stale orders")
	}
	return res.RowsAffected, nil
}

// Lookup returns the order for reference.
func (r *Reconciler) Lookup(reference string) (*models.Order, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrNoReference
	}
	return r.findOrder(r.DB, reference)
}
