package store

import (
	"time"

	"gorm.io/gorm"

	"propman/internal/models"
)

// PaymentStore persists payments and answers the scheduler's due-date query.
type PaymentStore interface {
	GetAll(page Page) ([]*models.Payment, int64, error)
	GetByID(id uint) (*models.Payment, error)
	// GetByIDWithRelations eager-loads the payment's lease, the lease's
	// tenant, and the unit/property chain for notification rendering.
	GetByIDWithRelations(id uint) (*models.Payment, error)
	Create(payment *models.Payment) error
	Update(id uint, fields map[string]interface{}) (*models.Payment, error)
	Delete(id uint) error
	ByLease(leaseID uint, page Page) ([]*models.Payment, int64, error)
	// ByDateRange returns payments whose payment date lies in [start, end]
	// inclusive, compared at calendar-date precision.
	ByDateRange(start, end time.Time, page Page) ([]*models.Payment, int64, error)
	// Outstanding returns payments whose status is anything but completed.
	Outstanding(page Page) ([]*models.Payment, int64, error)
	// DueOn returns pending payments due exactly on the given calendar
	// date, with lease/tenant/property relations loaded.
	DueOn(date time.Time) ([]*models.Payment, error)
}

type paymentStore struct {
	db *gorm.DB
}

// NewPaymentStore builds a GORM-backed PaymentStore.
func NewPaymentStore(db *gorm.DB) PaymentStore {
	return &paymentStore{db: db}
}

func (s *paymentStore) GetAll(page Page) ([]*models.Payment, int64, error) {
	return s.list(s.db.Model(&models.Payment{}), page)
}

func (s *paymentStore) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *paymentStore) GetByIDWithRelations(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.
		Preload("Lease").
		Preload("Lease.Tenant").
		Preload("Lease.Unit").
		Preload("Lease.Unit.Property").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *paymentStore) Create(payment *models.Payment) error {
	return s.db.Create(payment).Error
}

func (s *paymentStore) Update(id uint, fields map[string]interface{}) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, id).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&payment).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *paymentStore) Delete(id uint) error {
	var payment models.Payment
	if err := s.db.First(&payment, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&payment).Error
}

func (s *paymentStore) ByLease(leaseID uint, page Page) ([]*models.Payment, int64, error) {
	return s.list(s.db.Model(&models.Payment{}).Where("lease_id = ?", leaseID), page)
}

func (s *paymentStore) ByDateRange(start, end time.Time, page Page) ([]*models.Payment, int64, error) {
	// Half-open upper bound so a payment date carrying a time of day on
	// the range's last calendar day still falls inside.
	from := DateOnly(start)
	to := DateOnly(end).AddDate(0, 0, 1)
	query := s.db.Model(&models.Payment{}).
		Where("payment_date >= ? AND payment_date < ?", from, to)
	return s.list(query, page)
}

func (s *paymentStore) Outstanding(page Page) ([]*models.Payment, int64, error) {
	query := s.db.Model(&models.Payment{}).Where("status != ?", models.PaymentStatusCompleted)
	return s.list(query, page)
}

func (s *paymentStore) DueOn(date time.Time) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := s.db.
		Preload("Lease").
		Preload("Lease.Tenant").
		Preload("Lease.Unit").
		Preload("Lease.Unit.Property").
		Where("due_date = ? AND status = ?", date, models.PaymentStatusPending).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *paymentStore) list(query *gorm.DB, page Page) ([]*models.Payment, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var payments []*models.Payment
	if err := query.Scopes(paginate(page)).Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
