package models

// All returns every persisted model in foreign-key-safe creation order,
// for schema migration and test database setup.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Property{},
		&Unit{},
		&Tenant{},
		&Lease{},
		&Payment{},
	}
}
