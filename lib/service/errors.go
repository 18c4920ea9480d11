package service

import (
	"errors"
	"fmt"
)

// Domain errors carry enough context for a precise caller-facing message.
// None of them leave partial writes behind.

type NoBillableChargesError struct {
	JobID int64
}

func (e *NoBillableChargesError) Error() string {
	return fmt.Sprintf("job %d has no billable charges", e.JobID)
}

type OverpaymentError struct {
	InvoiceID int64
	Attempted int64
	Balance   int64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %d exceeds remaining balance %d on invoice %d", e.Attempted, e.Balance, e.InvoiceID)
}

type InvoiceVoidError struct {
	InvoiceID int64
}

func (e *InvoiceVoidError) Error() string {
	return fmt.Sprintf("invoice %d is void and does not accept payments", e.InvoiceID)
}

// ConflictError signals a concurrent modification, the caller should retry
// the whole operation.
type ConflictError struct {
	InvoiceID int64
	Cause     error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent modification of invoice %d: %v", e.InvoiceID, e.Cause)
}

func (e *ConflictError) Unwrap() error { return e.Cause }

type AllocationExhaustedError struct {
	Kind  string
	Value int64
}

func (e *AllocationExhaustedError) Error() string {
	return fmt.Sprintf("%s identifier space exhausted at %d", e.Kind, e.Value)
}

// errConcurrentUpdate marks a guarded update whose status condition matched
// no rows, meaning another writer got there first.
var errConcurrentUpdate = errors.New("conditional update matched no rows")

func errStatus(status string) error {
	return fmt.Errorf("unexpected invoice status %q", status)
}
