package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"propman/internal/models"
)

// LeaseStore persists leases and answers the lifecycle queries the lease
// and payment services need.
type LeaseStore interface {
	GetAll(page Page) ([]*models.Lease, int64, error)
	GetByID(id uint) (*models.Lease, error)
	Create(lease *models.Lease) error
	Update(id uint, fields map[string]interface{}) (*models.Lease, error)
	Delete(id uint) error
	ByUnit(unitID uint, page Page) ([]*models.Lease, int64, error)
	ByTenant(tenantID uint, page Page) ([]*models.Lease, int64, error)
	Active(page Page) ([]*models.Lease, int64, error)
	// ActiveByUnit returns the unit's active lease, or nil when none exists.
	ActiveByUnit(unitID uint) (*models.Lease, error)
	// Expiring returns active leases whose end date falls within
	// [now, now+daysThreshold] inclusive.
	Expiring(now time.Time, daysThreshold int, page Page) ([]*models.Lease, int64, error)
}

type leaseStore struct {
	db *gorm.DB
}

// NewLeaseStore builds a GORM-backed LeaseStore.
func NewLeaseStore(db *gorm.DB) LeaseStore {
	return &leaseStore{db: db}
}

func (s *leaseStore) GetAll(page Page) ([]*models.Lease, int64, error) {
	return s.list(s.db.Model(&models.Lease{}), page)
}

func (s *leaseStore) GetByID(id uint) (*models.Lease, error) {
	var lease models.Lease
	err := s.db.Preload("Unit").Preload("Tenant").First(&lease, id).Error
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (s *leaseStore) Create(lease *models.Lease) error {
	return s.db.Create(lease).Error
}

func (s *leaseStore) Update(id uint, fields map[string]interface{}) (*models.Lease, error) {
	var lease models.Lease
	if err := s.db.First(&lease, id).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&lease).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &lease, nil
}

func (s *leaseStore) Delete(id uint) error {
	var lease models.Lease
	if err := s.db.First(&lease, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&lease).Error
}

func (s *leaseStore) ByUnit(unitID uint, page Page) ([]*models.Lease, int64, error) {
	return s.list(s.db.Model(&models.Lease{}).Where("unit_id = ?", unitID), page)
}

func (s *leaseStore) ByTenant(tenantID uint, page Page) ([]*models.Lease, int64, error) {
	return s.list(s.db.Model(&models.Lease{}).Where("tenant_id = ?", tenantID), page)
}

func (s *leaseStore) Active(page Page) ([]*models.Lease, int64, error) {
	return s.list(s.db.Model(&models.Lease{}).Where("status = ?", models.LeaseStatusActive), page)
}

func (s *leaseStore) ActiveByUnit(unitID uint) (*models.Lease, error) {
	var lease models.Lease
	err := s.db.Where("unit_id = ? AND status = ?", unitID, models.LeaseStatusActive).First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (s *leaseStore) Expiring(now time.Time, daysThreshold int, page Page) ([]*models.Lease, int64, error) {
	future := now.AddDate(0, 0, daysThreshold)
	query := s.db.Model(&models.Lease{}).
		Where("status = ?", models.LeaseStatusActive).
		Where("end_date >= ? AND end_date <= ?", now, future)
	return s.list(query, page)
}

func (s *leaseStore) list(query *gorm.DB, page Page) ([]*models.Lease, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var leases []*models.Lease
	if err := query.Scopes(paginate(page)).Find(&leases).Error; err != nil {
		return nil, 0, err
	}
	return leases, total, nil
}
