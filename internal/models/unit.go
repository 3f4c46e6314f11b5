package models

import "gorm.io/gorm"

// Unit represents a rentable unit within a property.
type Unit struct {
	gorm.Model
	PropertyID uint       `json:"property_id" gorm:"not null;index"`
	Property   *Property  `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	UnitNumber string     `json:"unit_number" gorm:"not null"`
	Bedrooms   int        `json:"bedrooms"`
	Bathrooms  int        `json:"bathrooms"`
	SquareFeet int        `json:"square_feet"`
	RentAmount float64    `json:"rent_amount" gorm:"type:decimal(10,2)"`
	Status     UnitStatus `json:"status" gorm:"type:varchar(20);default:'vacant'"`
	Leases     []*Lease   `json:"leases,omitempty" gorm:"foreignKey:UnitID"`
}
