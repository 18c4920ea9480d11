package service

import (
	"context"
	"fmt"

	"github.com/clearway/freightbill/common"
	"github.com/clearway/freightbill/db/models"
	"github.com/uptrace/bun"
)

// maxSequenceValue bounds the identifier space so numbers keep a fixed width.
const maxSequenceValue = 999999999

// numberFromSequence formats a sequence value into a human-readable
// identifier. The sequence value alone guarantees uniqueness, the prefix is
// cosmetic.
func numberFromSequence(prefix, kind string, value int64) (string, error) {
	if value > maxSequenceValue {
		return "", &AllocationExhaustedError{Kind: kind, Value: value}
	}
	return fmt.Sprintf("%s-%09d", prefix, value), nil
}

// AllocateNumber hands out the next identifier for the given kind. The
// increment runs as a single UPDATE ... RETURNING on the sequence row, which
// postgres serializes, so concurrent callers always observe distinct values.
// It must run on the transaction that persists the allocated number, so an
// aborted operation burns the value but never reuses it.
func (svc *BillingService) AllocateNumber(ctx context.Context, db bun.IDB, kind string) (string, error) {
	prefix := svc.Config.InvoicePrefix
	if kind == common.SequenceKindPayment {
		prefix = svc.Config.PaymentPrefix
	}

	var seq models.Sequence
	err := db.NewUpdate().Model(&seq).
		Set("next_value = next_value + 1").
		Where("kind = ?", kind).
		Returning("*").
		Scan(ctx)
	if err != nil {
		return "", err
	}

	return numberFromSequence(prefix, kind, seq.NextValue)
}
