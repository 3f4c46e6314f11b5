// Package api exposes the service over HTTP. Handlers stay thin: decode
// the request, call the service, map the error taxonomy to status codes.
package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"propman/internal/auth"
	"propman/internal/errs"
	"propman/internal/lease"
	"propman/internal/payment"
	"propman/internal/reminder"
	"propman/internal/store"
)

// Server wires the HTTP surface over the services.
type Server struct {
	app       *fiber.App
	stores    *store.Stores
	leases    *lease.Service
	payments  *payment.Service
	reminders *reminder.Scheduler
	tokens    *auth.Tokens
	logger    *log.Logger
}

// NewServer builds the fiber app and registers every route.
func NewServer(
	stores *store.Stores,
	leases *lease.Service,
	payments *payment.Service,
	reminders *reminder.Scheduler,
	tokens *auth.Tokens,
	logger *log.Logger,
) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		stores:    stores,
		leases:    leases,
		payments:  payments,
		reminders: reminders,
		tokens:    tokens,
		logger:    logger,
	}

	s.app = fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	s.routes()
	return s
}

// App returns the underlying fiber app, used by tests via app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on the given address until shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) routes() {
	api := s.app.Group("/api/v1")

	api.Post("/auth/login", s.login)

	authed := api.Group("", auth.Required(s.tokens))

	properties := authed.Group("/properties")
	properties.Get("/", s.listProperties)
	properties.Post("/", s.createProperty)
	properties.Get("/:id", s.getProperty)
	properties.Put("/:id", s.updateProperty)
	properties.Delete("/:id", s.deleteProperty)
	properties.Get("/:id/units", s.listUnitsByProperty)

	units := authed.Group("/units")
	units.Get("/", s.listUnits)
	units.Post("/", s.createUnit)
	units.Get("/:id", s.getUnit)
	units.Put("/:id", s.updateUnit)
	units.Delete("/:id", s.deleteUnit)

	tenants := authed.Group("/tenants")
	tenants.Get("/", s.listTenants)
	tenants.Post("/", s.createTenant)
	tenants.Get("/:id", s.getTenant)
	tenants.Put("/:id", s.updateTenant)
	tenants.Delete("/:id", s.deleteTenant)

	leases := authed.Group("/leases")
	leases.Get("/", s.listLeases)
	leases.Post("/", s.createLease)
	leases.Get("/active", s.listActiveLeases)
	leases.Get("/expiring", s.listExpiringLeases)
	leases.Get("/unit/:unitId", s.listLeasesByUnit)
	leases.Get("/tenant/:tenantId", s.listLeasesByTenant)
	leases.Get("/:id", s.getLease)
	leases.Put("/:id", s.updateLease)
	leases.Delete("/:id", s.deleteLease)
	leases.Post("/:id/terminate", s.terminateLease)
	leases.Post("/:id/renew", s.renewLease)

	// Payment mutation and reminder triggers are admin-gated.
	payments := authed.Group("/payments", auth.AdminOnly())
	payments.Get("/", s.listPayments)
	payments.Post("/", s.createPayment)
	payments.Get("/outstanding", s.listOutstandingPayments)
	payments.Get("/date-range", s.listPaymentsByDateRange)
	payments.Get("/lease/:leaseId", s.listPaymentsByLease)
	payments.Get("/:id", s.getPayment)
	payments.Put("/:id", s.updatePayment)
	payments.Delete("/:id", s.deletePayment)
	payments.Post("/:id/complete", s.completePayment)
	payments.Post("/invoices/:leaseId", s.generateInvoice)

	reminders := authed.Group("/reminders", auth.AdminOnly())
	reminders.Post("/rent", s.scheduleRentReminders)
	reminders.Post("/rent/:paymentId", s.sendRentReminder)
}

// errorHandler renders every error as a JSON envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

// serviceErr maps the error taxonomy to HTTP status codes.
func serviceErr(err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidState):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}

func pageFromQuery(c *fiber.Ctx) store.Page {
	return store.Page{
		Number: c.QueryInt("page", 1),
		Size:   c.QueryInt("per_page", store.DefaultPerPage),
	}
}

func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func pagedJSON(c *fiber.Ctx, items interface{}, total int64, page store.Page) error {
	return c.JSON(fiber.Map{
		"success":  true,
		"data":     items,
		"total":    total,
		"page":     page.Number,
		"per_page": page.Size,
	})
}
