package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"propman/internal/config"
	"propman/internal/dispatch"
	"propman/internal/mailer"
	"propman/internal/reminder"
	"propman/internal/store"
)

// RemindCmd schedules rent reminders for upcoming due dates and drains
// the resulting sends before exiting, so a cron entry can drive the whole
// pipeline.
func RemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Schedule rent payment reminders for upcoming due dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			if days < 1 {
				return fmt.Errorf("days must be at least 1")
			}

			cfg := config.Load()
			logger := log.New(os.Stdout, "", log.LstdFlags)

			db, err := getDB()
			if err != nil {
				return err
			}
			stores := store.New(db)

			queue := dispatch.NewQueue(cfg.QueueSize, logger)
			smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
			dispatcher := dispatch.NewDispatcher(queue, stores.Payments, smtpMailer, logger)
			dispatcher.Start(cfg.Workers)

			scheduler := reminder.NewScheduler(stores.Payments, queue, logger)

			fmt.Printf("Scheduling rent reminders for payments due in %d days...\n", days)

			count, err := scheduler.ScheduleUpcoming(days)
			if err != nil {
				dispatcher.Stop()
				return err
			}

			// Wait for queued sends to finish before the process exits.
			dispatcher.Stop()

			if count > 0 {
				fmt.Printf("Successfully queued %d rent reminders.\n", count)
			} else {
				fmt.Println("No upcoming payments found for reminder scheduling.")
			}
			return nil
		},
	}

	cmd.Flags().Int("days", reminder.DefaultDaysBeforeDue, "Days before due date to send reminders")

	return cmd
}
