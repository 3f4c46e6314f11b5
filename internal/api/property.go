package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"propman/internal/models"
)

type propertyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Town    string `json:"town"`
	County  string `json:"county"`
	Type    string `json:"type"`
	UserID  uint   `json:"user_id"`
}

func (s *Server) listProperties(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	properties, total, err := s.stores.Properties.GetAll(page)
	if err != nil {
		return err
	}
	return pagedJSON(c, properties, total, page)
}

func (s *Server) getProperty(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	property, err := s.stores.Properties.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "property not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": property})
}

func (s *Server) createProperty(c *fiber.Ctx) error {
	var req propertyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Address == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name and address are required")
	}

	property := &models.Property{
		Name:    req.Name,
		Address: req.Address,
		Town:    req.Town,
		County:  req.County,
		Type:    req.Type,
		UserID:  req.UserID,
	}
	if err := s.stores.Properties.Create(property); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": property})
}

func (s *Server) updateProperty(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	property, err := s.stores.Properties.Update(id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "property not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": property})
}

func (s *Server) deleteProperty(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	err = s.stores.Properties.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "property not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "property deleted"})
}

func (s *Server) listUnitsByProperty(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	page := pageFromQuery(c)
	units, total, err := s.stores.Units.ByProperty(id, page)
	if err != nil {
		return err
	}
	return pagedJSON(c, units, total, page)
}
