package service

import (
	"github.com/clearway/freightbill/common"
)

// Pure invoice status transitions. Draft is only exited by an explicit send,
// void is terminal, everything in between is derived from the paid amount.

// NextStatus returns the status an invoice ends up in after its paid amount
// changed. Void is sticky. A draft with nothing paid only leaves draft
// through an explicit send; once money is recorded against it the amount
// rules take over and move it straight to partially_paid or paid. Any status
// clamps to paid once the total is covered.
func NextStatus(current string, total, amountPaid int64) string {
	if current == common.InvoiceStatusVoid {
		return current
	}
	switch {
	case amountPaid >= total:
		return common.InvoiceStatusPaid
	case amountPaid > 0:
		return common.InvoiceStatusPartiallyPaid
	case current == common.InvoiceStatusDraft:
		return common.InvoiceStatusDraft
	default:
		return common.InvoiceStatusSent
	}
}

// CanAcceptPayment reports whether the status machine allows recording a
// payment against an invoice in the given state. A fully paid invoice is not
// rejected here, the overpayment check handles that case.
func CanAcceptPayment(status string) bool {
	return status != common.InvoiceStatusVoid
}

// CanVoid reports whether an invoice may still be voided. Paid and void are
// terminal.
func CanVoid(status string) bool {
	switch status {
	case common.InvoiceStatusVoid, common.InvoiceStatusPaid:
		return false
	default:
		return true
	}
}

// CanSend reports whether the explicit send action applies.
func CanSend(status string) bool {
	return status == common.InvoiceStatusDraft
}

// jobStatusFor mirrors the invoice status onto the owning job.
func jobStatusFor(invoiceStatus string) string {
	switch invoiceStatus {
	case common.InvoiceStatusPaid:
		return common.JobStatusCleared
	case common.InvoiceStatusPartiallyPaid:
		return common.JobStatusPartiallyPaid
	default:
		return common.JobStatusInvoiced
	}
}
