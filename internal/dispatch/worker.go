package dispatch

import (
	"errors"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"propman/internal/mailer"
	"propman/internal/store"
)

// Defaults for the reminder retry policy: a failed send is attempted at
// most MaxAttempts times total with RetryDelay between attempts.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 5 * time.Minute
)

// Mailer is the delivery capability the worker needs.
type Mailer interface {
	Send(to, subject, body string) error
}

// Dispatcher drains the work queue with a pool of workers. Failures never
// propagate past the worker; they are logged and either retried (reminder
// send failures) or dropped (permanent data problems, receipt failures).
type Dispatcher struct {
	queue    *Queue
	payments store.PaymentStore
	mailer   Mailer
	logger   *log.Logger

	// RetryDelay and MaxAttempts tune the reminder retry policy.
	RetryDelay  time.Duration
	MaxAttempts int

	afterFunc func(time.Duration, func()) *time.Timer
	wg        sync.WaitGroup
}

// NewDispatcher wires a dispatcher over the queue with the default retry
// policy.
func NewDispatcher(queue *Queue, payments store.PaymentStore, m Mailer, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		queue:       queue,
		payments:    payments,
		mailer:      m,
		logger:      logger,
		RetryDelay:  DefaultRetryDelay,
		MaxAttempts: DefaultMaxAttempts,
		afterFunc:   time.AfterFunc,
	}
}

// Start launches the worker pool. Each worker pulls tasks until the queue
// is closed.
func (d *Dispatcher) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for task := range d.queue.tasks {
				d.Process(task)
			}
		}()
	}
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (d *Dispatcher) Stop() {
	d.queue.Close()
	d.wg.Wait()
}

// Process handles a single task. Exported so the delivery path can be
// exercised synchronously.
func (d *Dispatcher) Process(task Task) {
	switch t := task.(type) {
	case RentReminderTask:
		d.sendReminder(t)
	case PaymentReceiptTask:
		d.sendReceipt(t)
	default:
		d.logger.Printf("unknown task kind=%s dropped", task.Kind())
	}
}

func (d *Dispatcher) sendReminder(task RentReminderTask) {
	task.Attempts++

	payment, err := d.payments.GetByIDWithRelations(task.PaymentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		d.logger.Printf("rent reminder dropped: payment no longer exists payment_id=%d", task.PaymentID)
		return
	}
	if err != nil {
		d.retryReminder(task, err)
		return
	}

	// Missing relations or a blank address are permanent data problems;
	// retrying cannot fix them.
	if payment.Lease == nil || payment.Lease.Tenant == nil {
		d.logger.Printf("rent reminder dropped: missing lease or tenant payment_id=%d lease_id=%d",
			payment.ID, payment.LeaseID)
		return
	}
	tenant := payment.Lease.Tenant
	if tenant.Email == "" {
		d.logger.Printf("rent reminder dropped: no tenant email payment_id=%d lease_id=%d tenant_id=%d",
			payment.ID, payment.LeaseID, tenant.ID)
		return
	}

	subject, body := mailer.RentReminderMessage(payment, task.DaysBeforeDue)
	if err := d.mailer.Send(tenant.Email, subject, body); err != nil {
		d.logger.Printf("failed to send rent reminder payment_id=%d tenant_id=%d recipient=%s attempt=%d: %v",
			payment.ID, tenant.ID, tenant.Email, task.Attempts, err)
		d.retryReminder(task, err)
		return
	}

	d.logger.Printf("rent reminder sent payment_id=%d tenant_id=%d recipient=%s due_date=%s amount=%.2f",
		payment.ID, tenant.ID, tenant.Email, payment.DueDate.Format("2006-01-02"), payment.Amount)
}

func (d *Dispatcher) retryReminder(task RentReminderTask, cause error) {
	if task.Attempts >= d.MaxAttempts {
		d.logger.Printf("rent reminder dropped after %d attempts payment_id=%d: %v",
			task.Attempts, task.PaymentID, cause)
		return
	}
	d.afterFunc(d.RetryDelay, func() {
		if !d.queue.Offer(task) {
			d.logger.Printf("rent reminder retry dropped, queue unavailable payment_id=%d attempt=%d: %v",
				task.PaymentID, task.Attempts, cause)
		}
	})
}

func (d *Dispatcher) sendReceipt(task PaymentReceiptTask) {
	if task.Payment == nil || task.Email == "" {
		d.logger.Printf("payment receipt dropped: missing payment or recipient")
		return
	}

	subject, body := mailer.PaymentReceiptMessage(task.Payment, task.Tenant, task.Property, task.Unit)
	if err := d.mailer.Send(task.Email, subject, body); err != nil {
		var tenantID uint
		if task.Tenant != nil {
			tenantID = task.Tenant.ID
		}
		d.logger.Printf("failed to send payment receipt payment_id=%d tenant_id=%d recipient=%s: %v",
			task.Payment.ID, tenantID, task.Email, err)
		return
	}

	d.logger.Printf("payment receipt sent payment_id=%d recipient=%s", task.Payment.ID, task.Email)
}
