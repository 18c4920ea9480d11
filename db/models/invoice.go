package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Invoice : Invoice Model
//
// Total, TaxTotal and the lines are frozen once the invoice is issued, only
// AmountPaid, Balance and Status mutate afterwards. All amounts are in minor
// currency units (cents).
type Invoice struct {
	ID            int64          `json:"id" bun:",pk,autoincrement"`
	InvoiceNumber string         `json:"invoice_number" bun:",unique,notnull"`
	JobID         int64          `json:"job_id" bun:",notnull"`
	Job           *Job           `json:"-" bun:"rel:belongs-to,join:job_id=id"`
	CustomerID    int64          `json:"customer_id" bun:",notnull"`
	CustomerName  string         `json:"customer_name" bun:",notnull"`
	Currency      string         `json:"currency" bun:",notnull,default:'USD'"`
	Total         int64          `json:"total" bun:",notnull"`
	TaxTotal      int64          `json:"tax_total" bun:",notnull,default:0"`
	AmountPaid    int64          `json:"amount_paid" bun:",notnull,default:0"`
	Balance       int64          `json:"balance" bun:",notnull"`
	Status        string         `json:"status" bun:",notnull,default:'draft'"`
	Lines         []*InvoiceLine `json:"lines" bun:"rel:has-many,join:id=invoice_id"`
	IssueDate     time.Time      `json:"issue_date" bun:",notnull"`
	DueDate       time.Time      `json:"due_date" bun:",notnull"`
	// Placeholder for an external accounting system reference, not used by the
	// billing engine itself.
	ExternalAccountingID string       `json:"external_accounting_id,omitempty" bun:",nullzero"`
	SentAt               bun.NullTime `json:"sent_at"`
	VoidedAt             bun.NullTime `json:"voided_at"`
	LastReminderAt       bun.NullTime `json:"-"`
	CreatedAt            time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt            bun.NullTime `json:"updated_at"`
}

func (i *Invoice) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		i.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// InvoiceLine : derived 1:1 from a JobCharge at generation time.
type InvoiceLine struct {
	ID          int64    `json:"id" bun:",pk,autoincrement"`
	InvoiceID   int64    `json:"invoice_id" bun:",notnull"`
	Invoice     *Invoice `json:"-" bun:"rel:belongs-to,join:invoice_id=id"`
	ChargeID    int64    `json:"charge_id" bun:",nullzero"`
	Description string   `json:"description" bun:",notnull"`
	Quantity    int64    `json:"quantity" bun:",notnull,default:1"`
	UnitPrice   int64    `json:"unit_price" bun:",notnull"`
	// TaxRate is derived from the originating charge (taxAmount/amount*100),
	// the line total is carried over verbatim so the two never drift apart
	// through rounding.
	TaxRate   float64 `json:"tax_rate" bun:",notnull,default:0"`
	LineTotal int64   `json:"line_total" bun:",notnull"`
}

// TaxAmount reconstructs the tax portion of the line.
func (l *InvoiceLine) TaxAmount() int64 {
	return l.LineTotal - l.UnitPrice*l.Quantity
}

var _ bun.BeforeAppendModelHook = (*Invoice)(nil)
