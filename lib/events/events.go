package events

import (
	"time"
)

// NotificationEvent is the structured request handed to the notification
// collaborator. Delivery is the collaborator's problem, failures never roll
// back the financial operation that produced the event.
type NotificationEvent struct {
	Type           string     `json:"type"`
	RecipientEmail string     `json:"recipient_email"`
	RecipientName  string     `json:"recipient_name"`
	InvoiceNumber  string     `json:"invoice_number"`
	Amount         int64      `json:"amount"`
	Currency       string     `json:"currency"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	PaymentMethod  string     `json:"payment_method,omitempty"`
	PaymentDate    *time.Time `json:"payment_date,omitempty"`
	CompanyName    string     `json:"company_name,omitempty"`
	Attachments    []string   `json:"attachments,omitempty"`
}

// AuditEvent is emitted to the audit sink, best effort.
type AuditEvent struct {
	Action     string      `json:"action"`
	EntityType string      `json:"entity_type"`
	EntityID   int64       `json:"entity_id"`
	ActorID    int64       `json:"actor_id,omitempty"`
	OldData    interface{} `json:"old_data,omitempty"`
	NewData    interface{} `json:"new_data,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
