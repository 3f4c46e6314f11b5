// Package migrate versions the property-management schema. Migrations are
// registered at init time and applied in order; the applied set is tracked
// in a schema_migrations table.
package migrate

import (
	"sync"
	"time"

	"gorm.io/gorm"
)

// Migration is one versioned schema change.
type Migration struct {
	Version string
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

// Record marks a migration as applied.
type Record struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName keeps the conventional migrations table name.
func (Record) TableName() string { return "schema_migrations" }

var (
	registry      = make([]*Migration, 0)
	registryMutex sync.RWMutex
)

// Register adds a migration to the global set. Called from init functions.
func Register(m *Migration) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	registry = append(registry, m)
}

// Registered returns a copy of the registered migrations in order.
func Registered() []*Migration {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	out := make([]*Migration, len(registry))
	copy(out, registry)
	return out
}

// Migrator applies registered migrations against one database.
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

// NewMigrator builds a migrator carrying the globally registered set.
func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: Registered(),
	}
}

func (m *Migrator) ensureVersionTable() error {
	return m.db.AutoMigrate(&Record{})
}

// AppliedVersions returns the set of already-applied migration versions.
func (m *Migrator) AppliedVersions() (map[string]bool, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []Record
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}

	versions := make(map[string]bool)
	for _, record := range records {
		versions[record.Version] = true
	}
	return versions, nil
}

// Up applies every pending migration in registration order.
func (m *Migrator) Up() error {
	applied, err := m.AppliedVersions()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if applied[migration.Version] {
			continue
		}
		if err := migration.Up(m.db); err != nil {
			return err
		}

		record := Record{
			Version:   migration.Version,
			Name:      migration.Name,
			AppliedAt: time.Now(),
		}
		if err := m.db.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

// Down rolls back the most recently applied migration.
func (m *Migrator) Down() error {
	var last Record
	if err := m.db.Order("applied_at DESC, version DESC").First(&last).Error; err != nil {
		return err
	}

	var target *Migration
	for _, migration := range m.migrations {
		if migration.Version == last.Version {
			target = migration
			break
		}
	}
	if target == nil {
		return nil
	}

	if err := target.Down(m.db); err != nil {
		return err
	}
	return m.db.Delete(&last).Error
}
