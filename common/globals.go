package common

const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusSent          = "sent"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusVoid          = "void"

	JobStatusOpen          = "open"
	JobStatusInvoiced      = "invoiced"
	JobStatusPartiallyPaid = "partially_paid"
	JobStatusCleared       = "cleared"
	JobStatusCancelled     = "cancelled"

	SequenceKindInvoice = "invoice"
	SequenceKindPayment = "payment"

	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheck        = "check"
	PaymentMethodCard         = "card"
	PaymentMethodCash         = "cash"

	NotificationInvoiceCreated  = "invoice_created"
	NotificationPaymentReceived = "payment_received"
	NotificationPaymentReminder = "payment_reminder"
	NotificationOverdueNotice   = "overdue_notice"

	AuditActionInvoiceGenerated = "invoice_generated"
	AuditActionInvoiceSent      = "invoice_sent"
	AuditActionInvoiceVoided    = "invoice_voided"
	AuditActionPaymentRecorded  = "payment_recorded"

	EntityTypeInvoice = "invoice"
	EntityTypePayment = "payment"
)
