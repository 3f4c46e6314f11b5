package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"propman/internal/models"
)

type tenantRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
}

func (s *Server) listTenants(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	tenants, total, err := s.stores.Tenants.GetAll(page)
	if err != nil {
		return err
	}
	return pagedJSON(c, tenants, total, page)
}

func (s *Server) getTenant(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	tenant, err := s.stores.Tenants.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "tenant not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": tenant})
}

func (s *Server) createTenant(c *fiber.Ctx) error {
	var req tenantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.FirstName == "" || req.LastName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "first_name and last_name are required")
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	tenant := &models.Tenant{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    status,
	}
	if err := s.stores.Tenants.Create(tenant); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": tenant})
}

func (s *Server) updateTenant(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	tenant, err := s.stores.Tenants.Update(id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "tenant not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": tenant})
}

func (s *Server) deleteTenant(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	err = s.stores.Tenants.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "tenant not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "tenant deleted"})
}
