package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"propman/internal/lease"
	"propman/internal/models"
)

const dateLayout = "2006-01-02"

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, field+" must be a YYYY-MM-DD date")
	}
	return t, nil
}

type createLeaseRequest struct {
	UnitID          uint    `json:"unit_id"`
	TenantID        uint    `json:"tenant_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	RentAmount      float64 `json:"rent_amount"`
	SecurityDeposit float64 `json:"security_deposit"`
	Status          string  `json:"status"`
	Notes           string  `json:"notes"`
}

type terminateLeaseRequest struct {
	TerminationReason string `json:"termination_reason"`
}

type renewLeaseRequest struct {
	NewEndDate    string   `json:"new_end_date"`
	NewRentAmount *float64 `json:"new_rent_amount"`
}

func (s *Server) listLeases(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	leases, total, err := s.leases.List(page)
	if err != nil {
		return err
	}
	return pagedJSON(c, leases, total, page)
}

func (s *Server) getLease(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	found, err := s.leases.Get(id)
	if err != nil {
		return serviceErr(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": found})
}

func (s *Server) createLease(c *fiber.Ctx) error {
	var req createLeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.UnitID == 0 || req.TenantID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "unit_id and tenant_id are required")
	}

	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return err
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return err
	}

	created, err := s.leases.Create(lease.CreateParams{
		UnitID:          req.UnitID,
		TenantID:        req.TenantID,
		StartDate:       start,
		EndDate:         end,
		RentAmount:      req.RentAmount,
		SecurityDeposit: req.SecurityDeposit,
		Status:          models.LeaseStatus(req.Status),
		Notes:           req.Notes,
	})
	if err != nil {
		return serviceErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

func (s *Server) updateLease(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := s.leases.Update(id, fields)
	if err != nil {
		return serviceErr(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": updated})
}

func (s *Server) deleteLease(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.leases.Delete(id); err != nil {
		return serviceErr(err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "lease deleted"})
}

func (s *Server) terminateLease(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req terminateLeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.TerminationReason == "" {
		return fiber.NewError(fiber.StatusBadRequest, "termination_reason is required")
	}

	terminated, err := s.leases.Terminate(id, req.TerminationReason)
	if err != nil {
		return serviceErr(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": terminated})
}

func (s *Server) renewLease(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req renewLeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	newEnd, err := parseDate(req.NewEndDate, "new_end_date")
	if err != nil {
		return err
	}

	renewed, err := s.leases.Renew(id, newEnd, req.NewRentAmount)
	if err != nil {
		return serviceErr(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": renewed})
}

func (s *Server) listActiveLeases(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	leases, total, err := s.leases.Active(page)
	if err != nil {
		return err
	}
	return pagedJSON(c, leases, total, page)
}

func (s *Server) listExpiringLeases(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	days := c.QueryInt("days", 30)
	leases, total, err := s.leases.Expiring(days, page)
	if err != nil {
		return err
	}
	return pagedJSON(c, leases, total, page)
}

func (s *Server) listLeasesByUnit(c *fiber.Ctx) error {
	unitID, err := idParam(c, "unitId")
	if err != nil {
		return err
	}
	page := pageFromQuery(c)
	leases, total, err := s.leases.ByUnit(unitID, page)
	if err != nil {
		return err
	}
	return pagedJSON(c, leases, total, page)
}

func (s *Server) listLeasesByTenant(c *fiber.Ctx) error {
	tenantID, err := idParam(c, "tenantId")
	if err != nil {
		return err
	}
	page := pageFromQuery(c)
	leases, total, err := s.leases.ByTenant(tenantID, page)
	if err != nil {
		return err
	}
	return pagedJSON(c, leases, total, page)
}
