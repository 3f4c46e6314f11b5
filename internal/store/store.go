// Package store provides repository-per-aggregate access to the relational
// store. Each aggregate gets an interface and a single GORM-backed
// implementation; callers classify missing rows with gorm.ErrRecordNotFound.
package store

import "gorm.io/gorm"

// DefaultPerPage matches the page size of the original API surface.
const DefaultPerPage = 15

// Page selects one page of a list query.
type Page struct {
	Number int
	Size   int
}

func (p Page) normalized() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPerPage
	}
	return p
}

// paginate is a GORM scope applying offset/limit for a page.
func paginate(p Page) func(*gorm.DB) *gorm.DB {
	p = p.normalized()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((p.Number - 1) * p.Size).Limit(p.Size)
	}
}

// Stores bundles every repository over one database handle.
type Stores struct {
	Properties PropertyStore
	Units      UnitStore
	Tenants    TenantStore
	Leases     LeaseStore
	Payments   PaymentStore
	Users      UserStore
}

// New builds the full repository set over db.
func New(db *gorm.DB) *Stores {
	return &Stores{
		Properties: NewPropertyStore(db),
		Units:      NewUnitStore(db),
		Tenants:    NewTenantStore(db),
		Leases:     NewLeaseStore(db),
		Payments:   NewPaymentStore(db),
		Users:      NewUserStore(db),
	}
}
