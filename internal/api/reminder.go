package api

import (
	"github.com/gofiber/fiber/v2"

	"propman/internal/reminder"
)

// scheduleRentReminders is the batch trigger: one reminder per pending
// payment due exactly N days from today.
func (s *Server) scheduleRentReminders(c *fiber.Ctx) error {
	days := c.QueryInt("days", reminder.DefaultDaysBeforeDue)
	if days < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "days must be at least 1")
	}

	count, err := s.reminders.ScheduleUpcoming(days)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"scheduled": count,
	})
}

// sendRentReminder is the manual single-payment trigger.
func (s *Server) sendRentReminder(c *fiber.Ctx) error {
	paymentID, err := idParam(c, "paymentId")
	if err != nil {
		return err
	}
	days := c.QueryInt("days", reminder.DefaultDaysBeforeDue)

	if err := s.reminders.SendForPayment(paymentID, days); err != nil {
		return serviceErr(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "reminder queued",
	})
}
