package service

import (
	"testing"

	"github.com/clearway/freightbill/common"
	"github.com/stretchr/testify/assert"
)

func TestNextStatusDraftStaysWithoutPayment(t *testing.T) {
	status := NextStatus(common.InvoiceStatusDraft, 10500, 0)
	assert.Equal(t, common.InvoiceStatusDraft, status)
}

func TestNextStatusDraftAdvancesOncePaid(t *testing.T) {
	status := NextStatus(common.InvoiceStatusDraft, 10500, 5000)
	assert.Equal(t, common.InvoiceStatusPartiallyPaid, status)

	status = NextStatus(common.InvoiceStatusDraft, 10500, 10500)
	assert.Equal(t, common.InvoiceStatusPaid, status)
}

func TestNextStatusSentStaysWithoutPayment(t *testing.T) {
	status := NextStatus(common.InvoiceStatusSent, 10500, 0)
	assert.Equal(t, common.InvoiceStatusSent, status)
}

func TestNextStatusPartialPayment(t *testing.T) {
	status := NextStatus(common.InvoiceStatusSent, 10500, 5000)
	assert.Equal(t, common.InvoiceStatusPartiallyPaid, status)
}

func TestNextStatusFullPayment(t *testing.T) {
	status := NextStatus(common.InvoiceStatusPartiallyPaid, 10500, 10500)
	assert.Equal(t, common.InvoiceStatusPaid, status)
}

func TestNextStatusOverpaymentClampsToPaid(t *testing.T) {
	status := NextStatus(common.InvoiceStatusSent, 10500, 20000)
	assert.Equal(t, common.InvoiceStatusPaid, status)
}

func TestNextStatusVoidIsTerminal(t *testing.T) {
	status := NextStatus(common.InvoiceStatusVoid, 10500, 10500)
	assert.Equal(t, common.InvoiceStatusVoid, status)
}

func TestCanAcceptPayment(t *testing.T) {
	assert.True(t, CanAcceptPayment(common.InvoiceStatusDraft))
	assert.True(t, CanAcceptPayment(common.InvoiceStatusSent))
	assert.True(t, CanAcceptPayment(common.InvoiceStatusPartiallyPaid))
	// a paid invoice is rejected by the overpayment check, not the status machine
	assert.True(t, CanAcceptPayment(common.InvoiceStatusPaid))
	assert.False(t, CanAcceptPayment(common.InvoiceStatusVoid))
}

func TestCanVoidTerminalStates(t *testing.T) {
	assert.True(t, CanVoid(common.InvoiceStatusDraft))
	assert.True(t, CanVoid(common.InvoiceStatusSent))
	assert.True(t, CanVoid(common.InvoiceStatusPartiallyPaid))
	assert.False(t, CanVoid(common.InvoiceStatusPaid))
	assert.False(t, CanVoid(common.InvoiceStatusVoid))
}

func TestCanSendOnlyFromDraft(t *testing.T) {
	assert.True(t, CanSend(common.InvoiceStatusDraft))
	assert.False(t, CanSend(common.InvoiceStatusSent))
	assert.False(t, CanSend(common.InvoiceStatusVoid))
}

func TestJobStatusMirrorsInvoice(t *testing.T) {
	assert.Equal(t, common.JobStatusInvoiced, jobStatusFor(common.InvoiceStatusSent))
	assert.Equal(t, common.JobStatusPartiallyPaid, jobStatusFor(common.InvoiceStatusPartiallyPaid))
	assert.Equal(t, common.JobStatusCleared, jobStatusFor(common.InvoiceStatusPaid))
}
