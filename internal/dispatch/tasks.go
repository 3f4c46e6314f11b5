// Package dispatch runs the background notification pipeline: an in-memory
// work queue fed by the scheduler and the payment service, drained by a
// worker pool that performs the actual email delivery.
package dispatch

import "propman/internal/models"

// Task is a unit of notification work. The concrete types below are the
// only two kinds the worker understands.
type Task interface {
	Kind() string
}

// RentReminderTask asks the worker to send an upcoming-rent reminder. Only
// the payment id and the days-before-due value survive enqueueing; the
// worker re-resolves everything else at delivery time since the data may
// have changed since the task was scheduled.
type RentReminderTask struct {
	PaymentID     uint
	DaysBeforeDue int
	Attempts      int
}

func (RentReminderTask) Kind() string { return "rent_reminder" }

// PaymentReceiptTask asks the worker to send a receipt for a completed
// payment. Recipient and related records are resolved by the caller at
// enqueue time; receipts are fire-and-forget.
type PaymentReceiptTask struct {
	Payment  *models.Payment
	Tenant   *models.Tenant
	Property *models.Property
	Unit     *models.Unit
	Email    string
}

func (PaymentReceiptTask) Kind() string { return "payment_receipt" }

// Enqueuer is the capability producers need: hand a task to the queue
// without blocking on delivery.
type Enqueuer interface {
	Enqueue(task Task)
}
