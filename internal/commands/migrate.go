package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"propman/internal/migrate"
)

// MigrateCmd groups the schema migration subcommands.
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(migrateUpCmd(), migrateDownCmd(), migrateStatusCmd())
	return cmd
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB()
			if err != nil {
				return err
			}
			if err := migrate.NewMigrator(db).Up(); err != nil {
				return fmt.Errorf("apply migrations: %v", err)
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}

func migrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB()
			if err != nil {
				return err
			}
			if err := migrate.NewMigrator(db).Down(); err != nil {
				return fmt.Errorf("roll back migration: %v", err)
			}
			fmt.Println("Migration rolled back.")
			return nil
		},
	}
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status of all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB()
			if err != nil {
				return err
			}

			migrator := migrate.NewMigrator(db)
			applied, err := migrator.AppliedVersions()
			if err != nil {
				return fmt.Errorf("read applied migrations: %v", err)
			}

			fmt.Printf("%-16s  %-35s  %-8s\n", "Version", "Name", "Status")
			for _, migration := range migrate.Registered() {
				status := "Pending"
				if applied[migration.Version] {
					status = "Applied"
				}
				fmt.Printf("%-16s  %-35s  %-8s\n", migration.Version, migration.Name, status)
			}
			return nil
		},
	}
}
