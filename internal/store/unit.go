package store

import (
	"gorm.io/gorm"

	"propman/internal/models"
)

// UnitStore persists units.
type UnitStore interface {
	GetAll(page Page) ([]*models.Unit, int64, error)
	GetByID(id uint) (*models.Unit, error)
	ByProperty(propertyID uint, page Page) ([]*models.Unit, int64, error)
	Create(unit *models.Unit) error
	Update(id uint, fields map[string]interface{}) (*models.Unit, error)
	Delete(id uint) error
}

type unitStore struct {
	db *gorm.DB
}

// NewUnitStore builds a GORM-backed UnitStore.
func NewUnitStore(db *gorm.DB) UnitStore {
	return &unitStore{db: db}
}

func (s *unitStore) GetAll(page Page) ([]*models.Unit, int64, error) {
	return s.list(s.db.Model(&models.Unit{}), page)
}

func (s *unitStore) GetByID(id uint) (*models.Unit, error) {
	var unit models.Unit
	if err := s.db.Preload("Property").First(&unit, id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (s *unitStore) ByProperty(propertyID uint, page Page) ([]*models.Unit, int64, error) {
	return s.list(s.db.Model(&models.Unit{}).Where("property_id = ?", propertyID), page)
}

func (s *unitStore) Create(unit *models.Unit) error {
	return s.db.Create(unit).Error
}

func (s *unitStore) Update(id uint, fields map[string]interface{}) (*models.Unit, error) {
	var unit models.Unit
	if err := s.db.First(&unit, id).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&unit).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (s *unitStore) Delete(id uint) error {
	var unit models.Unit
	if err := s.db.First(&unit, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&unit).Error
}

func (s *unitStore) list(query *gorm.DB, page Page) ([]*models.Unit, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var units []*models.Unit
	if err := query.Scopes(paginate(page)).Find(&units).Error; err != nil {
		return nil, 0, err
	}
	return units, total, nil
}
