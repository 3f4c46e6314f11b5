package commands

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"propman/internal/api"
	"propman/internal/auth"
	"propman/internal/config"
	"propman/internal/dispatch"
	"propman/internal/lease"
	"propman/internal/mailer"
	"propman/internal/migrate"
	"propman/internal/payment"
	"propman/internal/reminder"
	"propman/internal/store"
)

// ServeCmd runs the HTTP API and the notification worker pool.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the property management API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runMigrations, _ := cmd.Flags().GetBool("migrate")

			cfg := config.Load()
			logger := log.New(os.Stdout, "", log.LstdFlags)

			db, err := getDB()
			if err != nil {
				return err
			}

			if runMigrations {
				if err := migrate.NewMigrator(db).Up(); err != nil {
					return fmt.Errorf("apply migrations: %v", err)
				}
			}

			stores := store.New(db)

			queue := dispatch.NewQueue(cfg.QueueSize, logger)
			smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
			dispatcher := dispatch.NewDispatcher(queue, stores.Payments, smtpMailer, logger)
			dispatcher.Start(cfg.Workers)

			leaseSvc := lease.NewService(stores.Leases, stores.Units)
			paymentSvc := payment.NewService(
				stores.Payments, stores.Leases, stores.Tenants,
				stores.Units, stores.Properties, queue, logger,
			)
			scheduler := reminder.NewScheduler(stores.Payments, queue, logger)
			tokens := auth.NewTokens(cfg.JWTSecret)

			server := api.NewServer(stores, leaseSvc, paymentSvc, scheduler, tokens, logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Listen(cfg.ListenAddr)
			}()
			logger.Printf("listening on %s", cfg.ListenAddr)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				dispatcher.Stop()
				return err
			case <-quit:
				logger.Println("shutting down...")
				if err := server.Shutdown(); err != nil {
					logger.Printf("server shutdown: %v", err)
				}
				dispatcher.Stop()
				return nil
			}
		},
	}

	cmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")

	return cmd
}
