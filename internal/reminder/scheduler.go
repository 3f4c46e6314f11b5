// Package reminder decides which pending payments need an upcoming-rent
// reminder and feeds one task per eligible payment to the dispatch queue.
// Deciding is cheap and synchronous; delivery happens on the worker pool.
package reminder

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"propman/internal/dispatch"
	"propman/internal/errs"
	"propman/internal/store"
)

// DefaultDaysBeforeDue is how far ahead of the due date reminders go out
// when no explicit window is requested.
const DefaultDaysBeforeDue = 3

// Scheduler computes the reminder set for a target due date.
type Scheduler struct {
	payments store.PaymentStore
	queue    dispatch.Enqueuer
	logger   *log.Logger

	// Now is the clock the target date is derived from; replaceable in
	// tests.
	Now func() time.Time
}

// NewScheduler builds a scheduler over the payment store and the queue.
func NewScheduler(payments store.PaymentStore, queue dispatch.Enqueuer, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		payments: payments,
		queue:    queue,
		logger:   logger,
		Now:      time.Now,
	}
}

// ScheduleUpcoming enqueues one reminder task for every pending payment
// due exactly daysBeforeDue days from today. Payments missing their lease
// or tenant relation are skipped with a warning rather than failing the
// run. Returns the number of tasks enqueued.
func (s *Scheduler) ScheduleUpcoming(daysBeforeDue int) (int, error) {
	targetDate := store.DateOnly(s.Now().AddDate(0, 0, daysBeforeDue))

	upcoming, err := s.payments.DueOn(targetDate)
	if err != nil {
		return 0, fmt.Errorf("query payments due on %s: %w", targetDate.Format("2006-01-02"), err)
	}

	count := 0
	for _, payment := range upcoming {
		if payment.Lease == nil || payment.Lease.Tenant == nil {
			s.logger.Printf("cannot send reminder: missing lease or tenant payment_id=%d lease_id=%d",
				payment.ID, payment.LeaseID)
			continue
		}

		s.queue.Enqueue(dispatch.RentReminderTask{
			PaymentID:     payment.ID,
			DaysBeforeDue: daysBeforeDue,
		})
		count++
	}

	s.logger.Printf("scheduled %d rent reminders for payments due on %s",
		count, targetDate.Format("2006-01-02"))
	return count, nil
}

// SendForPayment enqueues a reminder for one specific payment, the manual
// path behind the API trigger. Missing payment or missing lease/tenant
// relations surface as a not-found error.
func (s *Scheduler) SendForPayment(paymentID uint, daysBeforeDue int) error {
	if daysBeforeDue <= 0 {
		daysBeforeDue = DefaultDaysBeforeDue
	}

	payment, err := s.payments.GetByIDWithRelations(paymentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("payment", paymentID)
	}
	if err != nil {
		return fmt.Errorf("load payment %d: %w", paymentID, err)
	}

	if payment.Lease == nil || payment.Lease.Tenant == nil {
		s.logger.Printf("cannot send reminder: missing lease or tenant payment_id=%d lease_id=%d",
			payment.ID, payment.LeaseID)
		return errs.NotFoundMsg(fmt.Sprintf("payment %d has no lease or tenant on record", paymentID))
	}

	s.queue.Enqueue(dispatch.RentReminderTask{
		PaymentID:     payment.ID,
		DaysBeforeDue: daysBeforeDue,
	})

	s.logger.Printf("manual rent reminder queued payment_id=%d tenant_id=%d due_date=%s",
		payment.ID, payment.Lease.Tenant.ID, payment.DueDate.Format("2006-01-02"))
	return nil
}
