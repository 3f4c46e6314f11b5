// Package payment enforces the payment lifecycle rules: recording payments
// against active leases, settlement, invoice generation, and receipt
// dispatch.
package payment

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"propman/internal/dispatch"
	"propman/internal/errs"
	"propman/internal/models"
	"propman/internal/store"
)

// Invoices generated from a lease fall due this many days after creation.
const invoiceDueDays = 7

// Service is the payment lifecycle manager.
type Service struct {
	payments   store.PaymentStore
	leases     store.LeaseStore
	tenants    store.TenantStore
	units      store.UnitStore
	properties store.PropertyStore
	queue      dispatch.Enqueuer
	logger     *log.Logger

	// Now is the clock used for payment dates and invoice due dates;
	// replaceable in tests.
	Now func() time.Time
}

// NewService builds a payment service over the given stores and the
// notification queue.
func NewService(
	payments store.PaymentStore,
	leases store.LeaseStore,
	tenants store.TenantStore,
	units store.UnitStore,
	properties store.PropertyStore,
	queue dispatch.Enqueuer,
	logger *log.Logger,
) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		payments:   payments,
		leases:     leases,
		tenants:    tenants,
		units:      units,
		properties: properties,
		queue:      queue,
		logger:     logger,
		Now:        time.Now,
	}
}

// CreateParams carries the fields accepted when recording a payment.
type CreateParams struct {
	LeaseID       uint
	Amount        float64
	DueDate       time.Time
	Status        models.PaymentStatus
	PaymentMethod string
	Notes         string
}

// Create records a payment against a lease. The lease must be active
// regardless of the payment's own status or dates.
func (s *Service) Create(p CreateParams) (*models.Payment, error) {
	lease, err := s.leases.GetByID(p.LeaseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("lease", p.LeaseID)
	}
	if err != nil {
		return nil, fmt.Errorf("load lease %d: %w", p.LeaseID, err)
	}
	if !lease.IsActive() {
		return nil, errs.InvalidState("Cannot record payment for inactive lease")
	}

	status := p.Status
	if status == "" {
		status = models.PaymentStatusPending
	}

	payment := &models.Payment{
		LeaseID:       p.LeaseID,
		Amount:        p.Amount,
		DueDate:       store.DateOnly(p.DueDate),
		Status:        status,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}

// Get returns one payment by id.
func (s *Service) Get(id uint) (*models.Payment, error) {
	payment, err := s.payments.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("payment", id)
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// List returns one page of all payments.
func (s *Service) List(page store.Page) ([]*models.Payment, int64, error) {
	return s.payments.GetAll(page)
}

// ByLease returns one page of the lease's payments.
func (s *Service) ByLease(leaseID uint, page store.Page) ([]*models.Payment, int64, error) {
	return s.payments.ByLease(leaseID, page)
}

// Update applies arbitrary field changes to a payment.
func (s *Service) Update(id uint, fields map[string]interface{}) (*models.Payment, error) {
	payment, err := s.payments.Update(id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("payment", id)
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Delete removes a payment.
func (s *Service) Delete(id uint) error {
	err := s.payments.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("payment", id)
	}
	return err
}

// MarkCompleted settles a payment: status becomes completed, the payment
// date is stamped with today's date, and a transaction reference is
// assigned if the record has none.
func (s *Service) MarkCompleted(id uint) (*models.Payment, error) {
	fields := map[string]interface{}{
		"status":       models.PaymentStatusCompleted,
		"payment_date": store.DateOnly(s.Now()),
	}

	current, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if current.TransactionID == "" {
		fields["transaction_id"] = uuid.NewString()
	}
	return s.Update(id, fields)
}

// GenerateInvoice creates a pending rent charge from an active lease: the
// amount is the lease's rent, due seven days out. The payment method is
// the literal "pending" placeholder that downstream consumers expect on
// generated invoices.
func (s *Service) GenerateInvoice(leaseID uint) (*models.Payment, error) {
	lease, err := s.leases.GetByID(leaseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("lease", leaseID)
	}
	if err != nil {
		return nil, fmt.Errorf("load lease %d: %w", leaseID, err)
	}
	if !lease.IsActive() {
		return nil, errs.InvalidState("Cannot generate invoice for inactive lease")
	}

	payment := &models.Payment{
		LeaseID:       leaseID,
		Amount:        lease.RentAmount,
		DueDate:       store.DateOnly(s.Now().AddDate(0, 0, invoiceDueDays)),
		Status:        models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodPending,
		Notes:         "Monthly rent invoice",
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return payment, nil
}

// Outstanding returns one page of payments not yet completed.
func (s *Service) Outstanding(page store.Page) ([]*models.Payment, int64, error) {
	return s.payments.Outstanding(page)
}

// ByDateRange returns one page of payments whose payment date lies in
// [start, end] inclusive.
func (s *Service) ByDateRange(start, end time.Time, page store.Page) ([]*models.Payment, int64, error) {
	if end.Before(start) {
		return nil, 0, errs.Validation("end date must not be before start date")
	}
	return s.payments.ByDateRange(start, end, page)
}

// SendReceipt resolves the completed payment's tenant, unit, and property
// and enqueues a receipt task. The send itself happens on the worker; a
// failure there never reaches the caller.
func (s *Service) SendReceipt(paymentID uint) error {
	payment, err := s.Get(paymentID)
	if err != nil {
		return err
	}
	if !payment.IsCompleted() {
		return errs.InvalidState("Cannot send receipt for incomplete payment")
	}

	lease, err := s.leases.GetByID(payment.LeaseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("lease", payment.LeaseID)
	}
	if err != nil {
		return err
	}
	tenant, err := s.tenants.GetByID(lease.TenantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("tenant", lease.TenantID)
	}
	if err != nil {
		return err
	}
	unit, err := s.units.GetByID(lease.UnitID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("unit", lease.UnitID)
	}
	if err != nil {
		return err
	}
	property, err := s.properties.GetByID(unit.PropertyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("property", unit.PropertyID)
	}
	if err != nil {
		return err
	}

	s.queue.Enqueue(dispatch.PaymentReceiptTask{
		Payment:  payment,
		Tenant:   tenant,
		Property: property,
		Unit:     unit,
		Email:    tenant.Email,
	})

	s.logger.Printf("payment receipt queued payment_id=%d tenant_id=%d recipient=%s",
		payment.ID, tenant.ID, tenant.Email)
	return nil
}
