// Package lease enforces the lease lifecycle rules: creation against a
// unit's active lease, termination, renewal, and expiry queries.
package lease

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"propman/internal/errs"
	"propman/internal/models"
	"propman/internal/store"
)

// Service is the lease lifecycle manager.
type Service struct {
	leases store.LeaseStore
	units  store.UnitStore

	// Now is the clock used for expiry windows; replaceable in tests.
	Now func() time.Time
}

// NewService builds a lease service over the given stores.
func NewService(leases store.LeaseStore, units store.UnitStore) *Service {
	return &Service{
		leases: leases,
		units:  units,
		Now:    time.Now,
	}
}

// CreateParams carries the fields accepted when creating a lease.
type CreateParams struct {
	UnitID          uint
	TenantID        uint
	StartDate       time.Time
	EndDate         time.Time
	RentAmount      float64
	SecurityDeposit float64
	Status          models.LeaseStatus
	Notes           string
}

// Create persists a new lease. Creating an active lease for a unit that
// already holds one fails with a conflict; non-active leases may always be
// recorded alongside an existing active lease.
func (s *Service) Create(p CreateParams) (*models.Lease, error) {
	if _, err := s.units.GetByID(p.UnitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("unit", p.UnitID)
		}
		return nil, fmt.Errorf("load unit %d: %w", p.UnitID, err)
	}

	status := p.Status
	if status == "" {
		status = models.LeaseStatusPending
	}

	if status == models.LeaseStatusActive {
		active, err := s.leases.ActiveByUnit(p.UnitID)
		if err != nil {
			return nil, fmt.Errorf("check active lease for unit %d: %w", p.UnitID, err)
		}
		if active != nil {
			return nil, errs.Conflict("Unit already has an active lease")
		}
	}

	lease := &models.Lease{
		UnitID:          p.UnitID,
		TenantID:        p.TenantID,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		RentAmount:      p.RentAmount,
		SecurityDeposit: p.SecurityDeposit,
		Status:          status,
		Notes:           p.Notes,
	}
	if err := s.leases.Create(lease); err != nil {
		return nil, fmt.Errorf("create lease: %w", err)
	}
	return lease, nil
}

// Get returns one lease by id.
func (s *Service) Get(id uint) (*models.Lease, error) {
	lease, err := s.leases.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("lease", id)
	}
	if err != nil {
		return nil, err
	}
	return lease, nil
}

// List returns one page of all leases.
func (s *Service) List(page store.Page) ([]*models.Lease, int64, error) {
	return s.leases.GetAll(page)
}

// ByUnit returns one page of the unit's leases.
func (s *Service) ByUnit(unitID uint, page store.Page) ([]*models.Lease, int64, error) {
	return s.leases.ByUnit(unitID, page)
}

// ByTenant returns one page of the tenant's leases.
func (s *Service) ByTenant(tenantID uint, page store.Page) ([]*models.Lease, int64, error) {
	return s.leases.ByTenant(tenantID, page)
}

// Active returns one page of active leases.
func (s *Service) Active(page store.Page) ([]*models.Lease, int64, error) {
	return s.leases.Active(page)
}

// Update applies arbitrary field changes to a lease.
func (s *Service) Update(id uint, fields map[string]interface{}) (*models.Lease, error) {
	lease, err := s.leases.Update(id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("lease", id)
	}
	if err != nil {
		return nil, err
	}
	return lease, nil
}

// Delete removes a lease.
func (s *Service) Delete(id uint) error {
	err := s.leases.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("lease", id)
	}
	return err
}

// Terminate marks the lease terminated and records the reason in its
// notes. Terminating an already-terminated lease keeps the status and
// overwrites the notes with the latest reason.
func (s *Service) Terminate(id uint, reason string) (*models.Lease, error) {
	return s.Update(id, map[string]interface{}{
		"status": models.LeaseStatusTerminated,
		"notes":  reason,
	})
}

// Renew rolls the lease into a new term: the old term's end date becomes
// the new start date, the end date moves to newEndDate, and the rent is
// replaced only when newRentAmount is supplied.
func (s *Service) Renew(id uint, newEndDate time.Time, newRentAmount *float64) (*models.Lease, error) {
	lease, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"start_date": lease.EndDate,
		"end_date":   newEndDate,
	}
	if newRentAmount != nil {
		fields["rent_amount"] = *newRentAmount
	}
	return s.Update(id, fields)
}

// Expiring returns active leases whose end date falls within the next
// daysThreshold days, inclusive of today.
func (s *Service) Expiring(daysThreshold int, page store.Page) ([]*models.Lease, int64, error) {
	return s.leases.Expiring(store.DateOnly(s.Now()), daysThreshold, page)
}
