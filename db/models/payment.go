package models

import (
	"time"
)

// Payment : Payment Model. Immutable once recorded, the only side effect of
// recording a payment is the invoice's paid-amount/balance/status.
type Payment struct {
	ID            int64     `json:"id" bun:",pk,autoincrement"`
	PaymentNumber string    `json:"payment_number" bun:",unique,notnull"`
	ExternalID    string    `json:"external_id" bun:",nullzero"`
	InvoiceID     int64     `json:"invoice_id" bun:",notnull"`
	Invoice       *Invoice  `json:"-" bun:"rel:belongs-to,join:invoice_id=id"`
	CustomerID    int64     `json:"customer_id" bun:",notnull"`
	Amount        int64     `json:"amount" bun:",notnull"`
	Method        string    `json:"method" bun:",notnull"`
	Reference     string    `json:"reference" bun:",nullzero"`
	Notes         string    `json:"notes" bun:",nullzero"`
	PaidAt        time.Time `json:"paid_at" bun:",notnull"`
	CreatedAt     time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
