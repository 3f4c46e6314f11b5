package models

import (
	"time"

	"gorm.io/gorm"
)

// Lease represents a tenancy agreement binding a tenant to a unit for a
// period of time. At most one lease per unit may hold status "active".
type Lease struct {
	gorm.Model
	UnitID          uint        `json:"unit_id" gorm:"not null;index"`
	Unit            *Unit       `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	TenantID        uint        `json:"tenant_id" gorm:"not null;index"`
	Tenant          *Tenant     `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	StartDate       time.Time   `json:"start_date" gorm:"type:date;not null"`
	EndDate         time.Time   `json:"end_date" gorm:"type:date;not null"`
	RentAmount      float64     `json:"rent_amount" gorm:"type:decimal(10,2);not null"`
	SecurityDeposit float64     `json:"security_deposit" gorm:"type:decimal(10,2)"`
	Status          LeaseStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes           string      `json:"notes"`
	Payments        []*Payment  `json:"payments,omitempty" gorm:"foreignKey:LeaseID"`
}

// IsActive reports whether the lease is currently in force.
func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// Property resolves the property the lease's unit belongs to, when loaded.
func (l *Lease) Property() *Property {
	if l.Unit == nil {
		return nil
	}
	return l.Unit.Property
}
