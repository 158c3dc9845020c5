package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderFailed    = "failed"
	OrderCancelled = "cancelled"
)

// Order is one payment attempt for a course. PaystackReference is the key shared
// with the gateway.
type Order struct {
	gorm.Model
	UserID             uint           `json:"userId" gorm:"index;not null"`
	CourseID           uint           `json:"courseId" gorm:"index;not null"`
	Amount             float64        `json:"amount" gorm:"not null"`
	Currency           string         `json:"currency" gorm:"default:'NGN'"`
	Status             string         `json:"status" gorm:"default:'pending';index"`
	PaystackReference  string         `json:"paystackReference" gorm:"not null;uniqueIndex"`
	PaystackAccessCode string         `json:"paystackAccessCode"`
	PaidAt             *time.Time     `json:"paidAt"`
	FailureReason      string         `json:"failureReason,omitempty"`
	GatewayResponse    datatypes.JSON `json:"-"`
}
