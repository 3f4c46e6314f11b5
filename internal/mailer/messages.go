package mailer

import (
	"fmt"
	"strings"

	"propman/internal/models"
)

// RentReminderMessage renders the subject and body for an upcoming-rent
// reminder. The payment is expected to carry its lease with tenant and
// unit/property loaded; missing pieces degrade to generic wording.
func RentReminderMessage(payment *models.Payment, daysBeforeDue int) (subject, body string) {
	subject = fmt.Sprintf("Rent Payment Reminder - Due in %d days", daysBeforeDue)

	name := "Tenant"
	if payment.Lease != nil && payment.Lease.Tenant != nil {
		name = payment.Lease.Tenant.FullName()
	}
	location := "your unit"
	if payment.Lease != nil && payment.Lease.Unit != nil {
		unit := payment.Lease.Unit
		if unit.Property != nil {
			location = fmt.Sprintf("unit %s at %s", unit.UnitNumber, unit.Property.Name)
		} else {
			location = fmt.Sprintf("unit %s", unit.UnitNumber)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "This is a reminder that your rent payment of %.2f for %s is due on %s.\n\n",
		payment.Amount, location, payment.DueDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Please make your payment on or before the due date to avoid late fees.\n\n")
	fmt.Fprintf(&b, "Thank you.\n")
	return subject, b.String()
}

// PaymentReceiptMessage renders the subject and body for a completed
// payment receipt.
func PaymentReceiptMessage(payment *models.Payment, tenant *models.Tenant, property *models.Property, unit *models.Unit) (subject, body string) {
	subject = fmt.Sprintf("Payment Receipt #%d", payment.ID)

	name := "Tenant"
	if tenant != nil {
		name = tenant.FullName()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "We have received your payment of %.2f.\n\n", payment.Amount)
	if payment.PaymentDate != nil {
		fmt.Fprintf(&b, "Payment date: %s\n", payment.PaymentDate.Format("2006-01-02"))
	}
	if payment.PaymentMethod != "" {
		fmt.Fprintf(&b, "Payment method: %s\n", payment.PaymentMethod)
	}
	if unit != nil {
		fmt.Fprintf(&b, "Unit: %s\n", unit.UnitNumber)
	}
	if property != nil {
		fmt.Fprintf(&b, "Property: %s, %s\n", property.Name, property.Address)
	}
	fmt.Fprintf(&b, "\nThank you for your payment.\n")
	return subject, b.String()
}
