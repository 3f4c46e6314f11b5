package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"propman/internal/auth"
	"propman/internal/models"
	"propman/internal/store"
)

// SeedCmd creates an initial admin operator account.
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create an initial admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")

			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}

			db, err := getDB()
			if err != nil {
				return err
			}
			users := store.NewUserStore(db)

			if _, err := users.GetByEmail(email); err == nil {
				return fmt.Errorf("user %s already exists", email)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %v", err)
			}

			user := &models.User{
				Name:         name,
				Email:        email,
				PasswordHash: hash,
				IsAdmin:      true,
			}
			if err := users.Create(user); err != nil {
				return fmt.Errorf("create user: %v", err)
			}

			fmt.Printf("Admin user %s created.\n", email)
			return nil
		},
	}

	cmd.Flags().String("email", "", "Admin email address")
	cmd.Flags().String("password", "", "Admin password")
	cmd.Flags().String("name", "Administrator", "Admin display name")

	return cmd
}
