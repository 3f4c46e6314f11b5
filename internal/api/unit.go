package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"propman/internal/models"
)

type unitRequest struct {
	PropertyID uint    `json:"property_id"`
	UnitNumber string  `json:"unit_number"`
	Bedrooms   int     `json:"bedrooms"`
	Bathrooms  int     `json:"bathrooms"`
	SquareFeet int     `json:"square_feet"`
	RentAmount float64 `json:"rent_amount"`
	Status     string  `json:"status"`
}

func (s *Server) listUnits(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	units, total, err := s.stores.Units.GetAll(page)
	if err != nil {
		return err
	}
	return pagedJSON(c, units, total, page)
}

func (s *Server) getUnit(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	unit, err := s.stores.Units.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "unit not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": unit})
}

func (s *Server) createUnit(c *fiber.Ctx) error {
	var req unitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.PropertyID == 0 || req.UnitNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "property_id and unit_number are required")
	}

	if _, err := s.stores.Properties.GetByID(req.PropertyID); errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "property not found")
	} else if err != nil {
		return err
	}

	status := models.UnitStatus(req.Status)
	if status == "" {
		status = models.UnitStatusVacant
	}

	unit := &models.Unit{
		PropertyID: req.PropertyID,
		UnitNumber: req.UnitNumber,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		SquareFeet: req.SquareFeet,
		RentAmount: req.RentAmount,
		Status:     status,
	}
	if err := s.stores.Units.Create(unit); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": unit})
}

func (s *Server) updateUnit(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	unit, err := s.stores.Units.Update(id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "unit not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": unit})
}

func (s *Server) deleteUnit(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	err = s.stores.Units.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "unit not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "unit deleted"})
}
