package api

import (
	"github.com/gofiber/fiber/v2"

	"propman/internal/models"
	"propman/internal/payment"
)

type createPaymentRequest struct {
	LeaseID       uint    `json:"lease_id"`
	Amount        float64 `json:"amount"`
	DueDate       string  `json:"due_date"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

func (s *Server) listPayments(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	payments, total, err := s.payments.List(page)
	if err != nil {
		return err
	}
	return pagedJSON(c, payments, total, page)
}

func (s *Server) getPayment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	found, err := s.payments.Get(id)
	if err != nil {
		return serviceErr(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": found})
}

func (s *Server) createPayment(c *fiber.Ctx) error {
	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.LeaseID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "lease_id is required")
	}
	if req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	due, err := parseDate(req.DueDate, "due_date")
	if err != nil {
		return err
	}

	created, err := s.payments.Create(payment.CreateParams{
		LeaseID:       req.LeaseID,
		Amount:        req.Amount,
		DueDate:       due,
		Status:        models.PaymentStatus(req.Status),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		return serviceErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

func (s *Server) updatePayment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := s.payments.Update(id, fields)
	if err != nil {
		return serviceErr(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": updated})
}

func (s *Server) deletePayment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.payments.Delete(id); err != nil {
		return serviceErr(err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "payment deleted"})
}

// completePayment settles the payment, then queues the receipt as a
// best-effort side effect: a receipt failure is logged and never fails
// the completion response.
func (s *Server) completePayment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	completed, err := s.payments.MarkCompleted(id)
	if err != nil {
		return serviceErr(err)
	}

	if err := s.payments.SendReceipt(completed.ID); err != nil {
		s.logger.Printf("failed to queue payment receipt payment_id=%d: %v", completed.ID, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": completed})
}

func (s *Server) generateInvoice(c *fiber.Ctx) error {
	leaseID, err := idParam(c, "leaseId")
	if err != nil {
		return err
	}

	invoice, err := s.payments.GenerateInvoice(leaseID)
	if err != nil {
		return serviceErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": invoice})
}

func (s *Server) listOutstandingPayments(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	payments, total, err := s.payments.Outstanding(page)
	if err != nil {
		return err
	}
	return pagedJSON(c, payments, total, page)
}

func (s *Server) listPaymentsByDateRange(c *fiber.Ctx) error {
	start, err := parseDate(c.Query("start"), "start")
	if err != nil {
		return err
	}
	end, err := parseDate(c.Query("end"), "end")
	if err != nil {
		return err
	}

	page := pageFromQuery(c)
	payments, total, err := s.payments.ByDateRange(start, end, page)
	if err != nil {
		return serviceErr(err)
	}
	return pagedJSON(c, payments, total, page)
}

func (s *Server) listPaymentsByLease(c *fiber.Ctx) error {
	leaseID, err := idParam(c, "leaseId")
	if err != nil {
		return err
	}
	page := pageFromQuery(c)
	payments, total, err := s.payments.ByLease(leaseID, page)
	if err != nil {
		return err
	}
	return pagedJSON(c, payments, total, page)
}
