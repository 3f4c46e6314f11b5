package store

import (
	"gorm.io/gorm"

	"propman/internal/models"
)

// TenantStore persists tenants.
type TenantStore interface {
	GetAll(page Page) ([]*models.Tenant, int64, error)
	GetByID(id uint) (*models.Tenant, error)
	Create(tenant *models.Tenant) error
	Update(id uint, fields map[string]interface{}) (*models.Tenant, error)
	Delete(id uint) error
}

type tenantStore struct {
	db *gorm.DB
}

// NewTenantStore builds a GORM-backed TenantStore.
func NewTenantStore(db *gorm.DB) TenantStore {
	return &tenantStore{db: db}
}

func (s *tenantStore) GetAll(page Page) ([]*models.Tenant, int64, error) {
	var total int64
	query := s.db.Model(&models.Tenant{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var tenants []*models.Tenant
	if err := query.Scopes(paginate(page)).Find(&tenants).Error; err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

func (s *tenantStore) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *tenantStore) Create(tenant *models.Tenant) error {
	return s.db.Create(tenant).Error
}

func (s *tenantStore) Update(id uint, fields map[string]interface{}) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&tenant).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *tenantStore) Delete(id uint) error {
	var tenant models.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&tenant).Error
}
