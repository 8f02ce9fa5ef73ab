package models

import (
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusAccepted   OrderStatus = "accepted"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the five known statuses.
// There is deliberately no transition table: any valid status may replace
// any other, including reversals like completed -> pending.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	CustomerID uint        `gorm:"not null;index" json:"customer_id"`
	ServiceID  uint        `gorm:"not null;index" json:"service_id"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	// ScheduledDate is a plain date ("2024-06-01"), no time component
	ScheduledDate string    `gorm:"type:date" json:"scheduled_date"`
	Notes         string    `gorm:"type:text" json:"notes"`
	DateOrdered   time.Time `gorm:"autoCreateTime" json:"date_ordered"`

	Customer User    `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Service  Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"-"`
}

// Payment is a one-to-one financial record per order. It is migrated for
// schema compatibility with existing data but no endpoint reads or writes it.
type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OrderID     uint       `gorm:"uniqueIndex;not null" json:"order_id"`
	Amount      string     `gorm:"type:decimal(10,2)" json:"amount"`
	IsPaid      bool       `gorm:"default:false" json:"is_paid"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`

	Order Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}
