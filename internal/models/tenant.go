package models

import "gorm.io/gorm"

// Tenant represents a person renting a unit.
type Tenant struct {
	gorm.Model
	FirstName string   `json:"first_name" gorm:"not null"`
	LastName  string   `json:"last_name" gorm:"not null"`
	Email     string   `json:"email" gorm:"index"`
	Phone     string   `json:"phone"`
	Status    string   `json:"status" gorm:"type:varchar(20);default:'active'"`
	Leases    []*Lease `json:"leases,omitempty" gorm:"foreignKey:TenantID"`
}

// FullName joins the tenant's first and last name for display.
func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}
