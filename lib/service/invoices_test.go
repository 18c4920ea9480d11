package service

import (
	"testing"
	"time"

	"github.com/clearway/freightbill/common"
	"github.com/clearway/freightbill/db/models"
	"github.com/stretchr/testify/assert"
)

var svc = &BillingService{
	Config: &Config{
		Currency:         "USD",
		PaymentTermsDays: 30,
	},
}

func testJob(charges ...*models.JobCharge) *models.Job {
	return &models.Job{
		ID:         7,
		CustomerID: 3,
		Status:     common.JobStatusOpen,
		Charges:    charges,
	}
}

func testCustomer() *models.Customer {
	return &models.Customer{ID: 3, Name: "Acme Shipping", Email: "billing@acme.test"}
}

func TestBuildInvoiceTotals(t *testing.T) {
	charge := &models.JobCharge{ID: 1, FeeName: "Customs clearance", Amount: 10000, TaxAmount: 500, Total: 10500}
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	invoice := svc.BuildInvoice(testJob(charge), testCustomer(), []*models.JobCharge{charge}, "INV-000000001", now)

	assert.Equal(t, int64(10500), invoice.Total)
	assert.Equal(t, int64(500), invoice.TaxTotal)
	assert.Equal(t, int64(0), invoice.AmountPaid)
	assert.Equal(t, int64(10500), invoice.Balance)
	assert.Equal(t, common.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, "INV-000000001", invoice.InvoiceNumber)
	assert.Equal(t, "Acme Shipping", invoice.CustomerName)
	assert.Equal(t, now, invoice.IssueDate)
	assert.Equal(t, now.AddDate(0, 0, 30), invoice.DueDate)

	assert.Len(t, invoice.Lines, 1)
	line := invoice.Lines[0]
	assert.Equal(t, "Customs clearance", line.Description)
	assert.Equal(t, int64(1), line.Quantity)
	assert.Equal(t, int64(10000), line.UnitPrice)
	assert.Equal(t, float64(5), line.TaxRate)
	assert.Equal(t, int64(10500), line.LineTotal)
}

func TestBuildInvoiceSumsMultipleCharges(t *testing.T) {
	charges := []*models.JobCharge{
		{ID: 1, FeeName: "Customs clearance", Amount: 10000, TaxAmount: 500, Total: 10500},
		{ID: 2, FeeName: "Dock handling", Amount: 2500, TaxAmount: 0, Total: 2500},
		{ID: 3, FeeName: "Storage", Amount: 1000, TaxAmount: 80, Total: 1080},
	}

	invoice := svc.BuildInvoice(testJob(charges...), testCustomer(), charges, "INV-000000002", time.Now())

	assert.Equal(t, int64(14080), invoice.Total)
	assert.Equal(t, int64(580), invoice.TaxTotal)
	assert.Equal(t, invoice.Total, invoice.Balance)

	// invariant: the invoice total is exactly the sum of its line totals
	var lineSum, taxSum int64
	for _, line := range invoice.Lines {
		lineSum += line.LineTotal
		taxSum += line.TaxAmount()
	}
	assert.Equal(t, invoice.Total, lineSum)
	assert.Equal(t, invoice.TaxTotal, taxSum)
}

func TestLineDescriptionPrefersOverride(t *testing.T) {
	charge := &models.JobCharge{FeeName: "Customs clearance", Description: "Clearance, container MSKU-123", Amount: 10000, Total: 10000}

	line := lineFromCharge(charge)
	assert.Equal(t, "Clearance, container MSKU-123", line.Description)

	charge.Description = ""
	line = lineFromCharge(charge)
	assert.Equal(t, "Customs clearance", line.Description)
}

func TestLineTotalCarriedVerbatim(t *testing.T) {
	// the charge total is authoritative, the line must not recompute it from
	// the derived rate
	charge := &models.JobCharge{FeeName: "Inspection", Amount: 3, TaxAmount: 1, Total: 4}

	line := lineFromCharge(charge)
	assert.Equal(t, int64(4), line.LineTotal)
	assert.InDelta(t, 33.33, line.TaxRate, 0.01)
}

func TestBillableChargesFiltersZeroAmounts(t *testing.T) {
	job := testJob(
		&models.JobCharge{ID: 1, FeeName: "Waived fee", Amount: 0},
		&models.JobCharge{ID: 2, FeeName: "Customs clearance", Amount: 10000, TaxAmount: 500, Total: 10500},
	)

	charges, err := BillableCharges(job)
	assert.NoError(t, err)
	assert.Len(t, charges, 1)
	assert.Equal(t, int64(2), charges[0].ID)
}

func TestBillableChargesEmptyJob(t *testing.T) {
	job := testJob(
		&models.JobCharge{ID: 1, FeeName: "Waived fee", Amount: 0},
	)

	charges, err := BillableCharges(job)
	assert.Nil(t, charges)

	var noCharges *NoBillableChargesError
	assert.ErrorAs(t, err, &noCharges)
	assert.Equal(t, job.ID, noCharges.JobID)
}
