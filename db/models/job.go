package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Job : Freight-clearing job model. The billing engine reads jobs and their
// charges and only writes back the status rollup.
type Job struct {
	ID         int64        `json:"id" bun:",pk,autoincrement"`
	CustomerID int64        `json:"customer_id" bun:",notnull"`
	Customer   *Customer    `json:"-" bun:"rel:belongs-to,join:customer_id=id"`
	Reference  string       `json:"reference" bun:",nullzero"`
	Status     string       `json:"status" bun:",notnull,default:'open'"`
	Charges    []*JobCharge `json:"charges" bun:"rel:has-many,join:id=job_id"`
	CreatedAt  time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt  bun.NullTime `json:"updated_at"`
}

func (j *Job) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		j.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// JobCharge : A single billable fee attached to a job. Immutable once the job
// has been invoiced.
type JobCharge struct {
	ID          int64  `json:"id" bun:",pk,autoincrement"`
	JobID       int64  `json:"job_id" bun:",notnull"`
	Job         *Job   `json:"-" bun:"rel:belongs-to,join:job_id=id"`
	FeeID       int64  `json:"fee_id" bun:",nullzero"`
	FeeName     string `json:"fee_name" bun:",notnull"`
	Description string `json:"description" bun:",nullzero"`
	// Amounts are in minor currency units (cents).
	Amount    int64     `json:"amount" bun:",notnull"`
	TaxAmount int64     `json:"tax_amount" bun:",notnull,default:0"`
	Total     int64     `json:"total" bun:",notnull"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

// DisplayName returns the description override when one is set, the fee name
// otherwise.
func (c *JobCharge) DisplayName() string {
	if c.Description != "" {
		return c.Description
	}
	return c.FeeName
}

var _ bun.BeforeAppendModelHook = (*Job)(nil)
