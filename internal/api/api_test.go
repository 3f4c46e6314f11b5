package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"propman/internal/api"
	"propman/internal/auth"
	"propman/internal/dispatch"
	"propman/internal/lease"
	"propman/internal/models"
	"propman/internal/payment"
	"propman/internal/reminder"
	"propman/internal/store"
)

type recordingQueue struct {
	tasks []dispatch.Task
}

func (q *recordingQueue) Enqueue(task dispatch.Task) {
	q.tasks = append(q.tasks, task)
}

type harness struct {
	app    *fiber.App
	db     *gorm.DB
	stores *store.Stores
	queue  *recordingQueue
	tokens *auth.Tokens

	adminToken  string
	viewerToken string
}

func newHarness(t *testing.T) *harness {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	stores := store.New(db)
	queue := &recordingQueue{}
	tokens := auth.NewTokens("test-secret")

	leaseSvc := lease.NewService(stores.Leases, stores.Units)
	paymentSvc := payment.NewService(
		stores.Payments, stores.Leases, stores.Tenants,
		stores.Units, stores.Properties, queue, nil,
	)
	scheduler := reminder.NewScheduler(stores.Payments, queue, nil)

	server := api.NewServer(stores, leaseSvc, paymentSvc, scheduler, tokens, nil)

	admin := &models.User{Name: "Admin", Email: "admin@propman.local", IsAdmin: true}
	admin.ID = 1
	viewer := &models.User{Name: "Viewer", Email: "viewer@propman.local"}
	viewer.ID = 2

	adminToken, err := tokens.Issue(admin)
	require.NoError(t, err)
	viewerToken, err := tokens.Issue(viewer)
	require.NoError(t, err)

	return &harness{
		app:         server.App(),
		db:          db,
		stores:      stores,
		queue:       queue,
		tokens:      tokens,
		adminToken:  adminToken,
		viewerToken: viewerToken,
	}
}

func (h *harness) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (h *harness) seedUnit(t *testing.T) (*models.Unit, *models.Tenant) {
	property := &models.Property{Name: "Lakeview", Address: "1 Lake Rd"}
	require.NoError(t, h.db.Create(property).Error)
	unit := &models.Unit{PropertyID: property.ID, UnitNumber: "5B", RentAmount: 1250}
	require.NoError(t, h.db.Create(unit).Error)
	tenant := &models.Tenant{FirstName: "Mary", LastName: "Achieng", Email: "mary@example.com"}
	require.NoError(t, h.db.Create(tenant).Error)
	return unit, tenant
}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	require.NoError(t, h.db.Create(&models.User{
		Name: "Admin", Email: "admin@propman.local",
		PasswordHash: hash, IsAdmin: true,
	}).Error)

	resp, body := h.request(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "admin@propman.local", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	resp, body = h.request(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "admin@propman.local", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAuthRequired(t *testing.T) {
	h := newHarness(t)

	resp, body := h.request(t, "GET", "/api/v1/properties/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = h.request(t, "GET", "/api/v1/properties/", h.viewerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPaymentsAdminGated(t *testing.T) {
	h := newHarness(t)

	resp, _ := h.request(t, "GET", "/api/v1/payments/", h.viewerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = h.request(t, "GET", "/api/v1/payments/", h.adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = h.request(t, "POST", "/api/v1/reminders/rent", h.viewerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLeaseLifecycle(t *testing.T) {
	h := newHarness(t)
	unit, tenant := h.seedUnit(t)

	createBody := map[string]interface{}{
		"unit_id":     unit.ID,
		"tenant_id":   tenant.ID,
		"start_date":  "2025-01-01",
		"end_date":    "2025-12-31",
		"rent_amount": 1250,
		"status":      "active",
	}

	resp, body := h.request(t, "POST", "/api/v1/leases/", h.viewerToken, createBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	leaseID := uint(data["ID"].(float64))
	assert.Equal(t, "active", data["status"])

	// A second active lease for the same unit conflicts.
	resp, body = h.request(t, "POST", "/api/v1/leases/", h.viewerToken, createBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Unit already has an active lease", body["error"])

	// Renew: the old end date becomes the new start date.
	resp, body = h.request(t, "POST", "/api/v1/leases/"+itoa(leaseID)+"/renew", h.viewerToken, map[string]interface{}{
		"new_end_date": "2026-12-31",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Contains(t, data["start_date"], "2025-12-31")
	assert.Contains(t, data["end_date"], "2026-12-31")

	// Terminate records the reason in the notes.
	resp, body = h.request(t, "POST", "/api/v1/leases/"+itoa(leaseID)+"/terminate", h.viewerToken, map[string]interface{}{
		"termination_reason": "tenant moved out",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "terminated", data["status"])
	assert.Equal(t, "tenant moved out", data["notes"])

	// Termination without a reason is rejected.
	resp, _ = h.request(t, "POST", "/api/v1/leases/"+itoa(leaseID)+"/terminate", h.viewerToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvoiceAndCompletion(t *testing.T) {
	h := newHarness(t)
	unit, tenant := h.seedUnit(t)

	activeLease := &models.Lease{
		UnitID: unit.ID, TenantID: tenant.ID,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: 1250, Status: models.LeaseStatusActive,
	}
	require.NoError(t, h.db.Create(activeLease).Error)

	resp, body := h.request(t, "POST", "/api/v1/payments/invoices/"+itoa(activeLease.ID), h.adminToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	invoiceID := uint(data["ID"].(float64))
	assert.Equal(t, 1250.0, data["amount"])
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "pending", data["payment_method"])

	resp, body = h.request(t, "POST", "/api/v1/payments/"+itoa(invoiceID)+"/complete", h.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.NotEmpty(t, data["transaction_id"])

	// Completing a payment queues its receipt.
	require.Len(t, h.queue.tasks, 1)
	receipt, ok := h.queue.tasks[0].(dispatch.PaymentReceiptTask)
	require.True(t, ok)
	assert.Equal(t, invoiceID, receipt.Payment.ID)
	assert.Equal(t, "mary@example.com", receipt.Email)

	// Invoicing a terminated lease is rejected.
	require.NoError(t, h.db.Model(activeLease).Update("status", models.LeaseStatusTerminated).Error)
	resp, body = h.request(t, "POST", "/api/v1/payments/invoices/"+itoa(activeLease.ID), h.adminToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Cannot generate invoice for inactive lease", body["error"])
}

func TestScheduleRentReminders(t *testing.T) {
	h := newHarness(t)
	unit, tenant := h.seedUnit(t)

	activeLease := &models.Lease{
		UnitID: unit.ID, TenantID: tenant.ID,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: 1250, Status: models.LeaseStatusActive,
	}
	require.NoError(t, h.db.Create(activeLease).Error)

	dueDate := store.DateOnly(time.Now().UTC().AddDate(0, 0, 3))
	require.NoError(t, h.db.Create(&models.Payment{
		LeaseID: activeLease.ID, Amount: 1250,
		DueDate: dueDate, Status: models.PaymentStatusPending,
	}).Error)

	resp, body := h.request(t, "POST", "/api/v1/reminders/rent?days=3", h.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, body["scheduled"])
	require.Len(t, h.queue.tasks, 1)
	assert.Equal(t, 3, h.queue.tasks[0].(dispatch.RentReminderTask).DaysBeforeDue)

	resp, _ = h.request(t, "POST", "/api/v1/reminders/rent?days=0", h.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendSingleReminder(t *testing.T) {
	h := newHarness(t)

	resp, body := h.request(t, "POST", "/api/v1/reminders/rent/999", h.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
