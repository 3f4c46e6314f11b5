package store

import (
	"gorm.io/gorm"

	"propman/internal/models"
)

// PropertyStore persists properties.
type PropertyStore interface {
	GetAll(page Page) ([]*models.Property, int64, error)
	GetByID(id uint) (*models.Property, error)
	Create(property *models.Property) error
	Update(id uint, fields map[string]interface{}) (*models.Property, error)
	Delete(id uint) error
}

type propertyStore struct {
	db *gorm.DB
}

// NewPropertyStore builds a GORM-backed PropertyStore.
func NewPropertyStore(db *gorm.DB) PropertyStore {
	return &propertyStore{db: db}
}

func (s *propertyStore) GetAll(page Page) ([]*models.Property, int64, error) {
	var total int64
	query := s.db.Model(&models.Property{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var properties []*models.Property
	if err := query.Scopes(paginate(page)).Find(&properties).Error; err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (s *propertyStore) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.Preload("Units").First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *propertyStore) Create(property *models.Property) error {
	return s.db.Create(property).Error
}

func (s *propertyStore) Update(id uint, fields map[string]interface{}) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, id).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&property).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *propertyStore) Delete(id uint) error {
	var property models.Property
	if err := s.db.First(&property, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&property).Error
}
