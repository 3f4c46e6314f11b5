package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"propman/internal/commands"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "propman",
		Short: "Property Management Service",
	}

	rootCmd.AddCommand(
		commands.ServeCmd(),
		commands.RemindCmd(),
		commands.MigrateCmd(),
		commands.SeedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
