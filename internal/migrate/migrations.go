package migrate

import (
	"gorm.io/gorm"

	"propman/internal/models"
)

func init() {
	Register(&Migration{
		Version: "20250115000001",
		Name:    "create_core_tables",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(models.All()...)
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable(
				&models.Payment{},
				&models.Lease{},
				&models.Tenant{},
				&models.Unit{},
				&models.Property{},
				&models.User{},
			)
		},
	})

	// The lease service checks for an existing active lease before
	// creating another, but check-then-act leaves a window under
	// concurrent requests. The partial unique index makes the store
	// reject the second active lease regardless of timing. Supported by
	// both postgres and sqlite.
	Register(&Migration{
		Version: "20250115000002",
		Name:    "active_lease_unique_per_unit",
		Up: func(db *gorm.DB) error {
			return db.Exec(
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_leases_one_active_per_unit
				 ON leases(unit_id) WHERE status = 'active' AND deleted_at IS NULL`,
			).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP INDEX IF EXISTS idx_leases_one_active_per_unit`).Error
		},
	})
}
