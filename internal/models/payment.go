package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment represents a single rent charge against a lease. Generated
// invoices start out pending with a nil payment date.
type Payment struct {
	gorm.Model
	LeaseID       uint          `json:"lease_id" gorm:"not null;index"`
	Lease         *Lease        `json:"lease,omitempty" gorm:"foreignKey:LeaseID"`
	Amount        float64       `json:"amount" gorm:"type:decimal(10,2);not null"`
	DueDate       time.Time     `json:"due_date" gorm:"type:date;not null;index"`
	PaymentDate   *time.Time    `json:"payment_date,omitempty" gorm:"type:date"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod string        `json:"payment_method" gorm:"type:varchar(20)"`
	TransactionID string        `json:"transaction_id,omitempty" gorm:"index"`
	Notes         string        `json:"notes"`
}

// IsCompleted reports whether the payment has been settled.
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}
