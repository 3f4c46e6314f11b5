package payment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"propman/internal/dispatch"
	"propman/internal/errs"
	"propman/internal/models"
	"propman/internal/payment"
	"propman/internal/store"
)

// recordingQueue captures enqueued tasks for assertions.
type recordingQueue struct {
	tasks []dispatch.Task
}

func (q *recordingQueue) Enqueue(task dispatch.Task) {
	q.tasks = append(q.tasks, task)
}

type fixtures struct {
	svc    *payment.Service
	queue  *recordingQueue
	db     *gorm.DB
	lease  *models.Lease
	tenant *models.Tenant
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T, leaseStatus models.LeaseStatus) *fixtures {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	property := &models.Property{Name: "Maple Heights", Address: "7 Maple Ave"}
	require.NoError(t, db.Create(property).Error)
	unit := &models.Unit{PropertyID: property.ID, UnitNumber: "3C", RentAmount: 1500}
	require.NoError(t, db.Create(unit).Error)
	tenant := &models.Tenant{FirstName: "Amina", LastName: "Nansubuga", Email: "amina@example.com"}
	require.NoError(t, db.Create(tenant).Error)
	lease := &models.Lease{
		UnitID: unit.ID, TenantID: tenant.ID,
		StartDate: date(2025, 1, 1), EndDate: date(2025, 12, 31),
		RentAmount: 1500, Status: leaseStatus,
	}
	require.NoError(t, db.Create(lease).Error)

	queue := &recordingQueue{}
	svc := payment.NewService(
		store.NewPaymentStore(db),
		store.NewLeaseStore(db),
		store.NewTenantStore(db),
		store.NewUnitStore(db),
		store.NewPropertyStore(db),
		queue,
		nil,
	)
	return &fixtures{svc: svc, queue: queue, db: db, lease: lease, tenant: tenant}
}

func TestCreatePayment_InactiveLeaseRejected(t *testing.T) {
	for _, status := range []models.LeaseStatus{
		models.LeaseStatusPending,
		models.LeaseStatusTerminated,
		models.LeaseStatusExpired,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := setup(t, status)

			_, err := f.svc.Create(payment.CreateParams{
				LeaseID: f.lease.ID,
				Amount:  1500,
				DueDate: date(2025, 7, 1),
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidState)
			assert.Equal(t, "Cannot record payment for inactive lease", err.Error())
		})
	}
}

func TestCreatePayment_ActiveLease(t *testing.T) {
	f := setup(t, models.LeaseStatusActive)

	created, err := f.svc.Create(payment.CreateParams{
		LeaseID:       f.lease.ID,
		Amount:        1500,
		DueDate:       date(2025, 7, 1),
		PaymentMethod: models.PaymentMethodBankTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, created.Status)
	assert.True(t, created.DueDate.Equal(date(2025, 7, 1)))
}

func TestCreatePayment_UnknownLease(t *testing.T) {
	f := setup(t, models.LeaseStatusActive)

	_, err := f.svc.Create(payment.CreateParams{LeaseID: 999, Amount: 100, DueDate: date(2025, 7, 1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGenerateInvoice(t *testing.T) {
	f := setup(t, models.LeaseStatusActive)
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	f.svc.Now = func() time.Time { return now }

	invoice, err := f.svc.GenerateInvoice(f.lease.ID)
	require.NoError(t, err)

	assert.Equal(t, f.lease.RentAmount, invoice.Amount)
	assert.True(t, invoice.DueDate.Equal(date(2025, 6, 8)), "due date should be 7 days out at date precision")
	assert.Equal(t, models.PaymentStatusPending, invoice.Status)
	assert.Equal(t, models.PaymentMethodPending, invoice.PaymentMethod)
	assert.Equal(t, "Monthly rent invoice", invoice.Notes)
}

func TestGenerateInvoice_InactiveLease(t *testing.T) {
	f := setup(t, models.LeaseStatusTerminated)

	_, err := f.svc.GenerateInvoice(f.lease.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, "Cannot generate invoice for inactive lease", err.Error())
}

func TestMarkCompleted(t *testing.T) {
	f := setup(t, models.LeaseStatusActive)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	f.svc.Now = func() time.Time { return now }

	invoice, err := f.svc.GenerateInvoice(f.lease.ID)
	require.NoError(t, err)

	completed, err := f.svc.MarkCompleted(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, completed.Status)
	require.NotNil(t, completed.PaymentDate)
	assert.True(t, completed.PaymentDate.Equal(date(2025, 6, 10)),
		"payment date is stamped at date precision")
	assert.NotEmpty(t, completed.TransactionID)
}

func TestMarkCompleted_NotFound(t *testing.T) {
	f := setup(t, models.LeaseStatusActive)

	_, err := f.svc.MarkCompleted(999)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSendReceipt(t *testing.T) {
	f := setup(t, models.LeaseStatusActive)

	invoice, err := f.svc.GenerateInvoice(f.lease.ID)
	require.NoError(t, err)
	_, err = f.svc.MarkCompleted(invoice.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.SendReceipt(invoice.ID))

	require.Len(t, f.queue.tasks, 1)
	task, ok := f.queue.tasks[0].(dispatch.PaymentReceiptTask)
	require.True(t, ok)
	assert.Equal(t, invoice.ID, task.Payment.ID)
	assert.Equal(t, "amina@example.com", task.Email)
	require.NotNil(t, task.Tenant)
	require.NotNil(t, task.Unit)
	require.NotNil(t, task.Property)
	assert.Equal(t, "Maple Heights", task.Property.Name)
}

func TestSendReceipt_IncompletePayment(t *testing.T) {
	f := setup(t, models.LeaseStatusActive)

	invoice, err := f.svc.GenerateInvoice(f.lease.ID)
	require.NoError(t, err)

	err = f.svc.SendReceipt(invoice.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Empty(t, f.queue.tasks)
}

func TestByDateRange_IncludesEndDate(t *testing.T) {
	f := setup(t, models.LeaseStatusActive)
	f.svc.Now = func() time.Time { return time.Date(2025, 5, 31, 9, 0, 0, 0, time.UTC) }

	invoice, err := f.svc.GenerateInvoice(f.lease.ID)
	require.NoError(t, err)
	_, err = f.svc.MarkCompleted(invoice.ID)
	require.NoError(t, err)

	// Completed mid-morning on the range's last day: still inside.
	inRange, total, err := f.svc.ByDateRange(date(2025, 5, 1), date(2025, 5, 31), store.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, inRange, 1)
	assert.Equal(t, invoice.ID, inRange[0].ID)

	// The day after the range ends is outside.
	_, total, err = f.svc.ByDateRange(date(2025, 5, 1), date(2025, 5, 30), store.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestByDateRange_Validation(t *testing.T) {
	f := setup(t, models.LeaseStatusActive)

	_, _, err := f.svc.ByDateRange(date(2025, 6, 30), date(2025, 6, 1), store.Page{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestOutstanding(t *testing.T) {
	f := setup(t, models.LeaseStatusActive)

	_, err := f.svc.GenerateInvoice(f.lease.ID)
	require.NoError(t, err)
	second, err := f.svc.GenerateInvoice(f.lease.ID)
	require.NoError(t, err)
	_, err = f.svc.MarkCompleted(second.ID)
	require.NoError(t, err)

	outstanding, total, err := f.svc.Outstanding(store.Page{})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, outstanding, 1)
	assert.Equal(t, models.PaymentStatusPending, outstanding[0].Status)
}
