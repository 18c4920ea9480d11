package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/clearway/freightbill/common"
	"github.com/clearway/freightbill/db/models"
	"github.com/clearway/freightbill/lib/events"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var ErrNonPositiveAmount = errors.New("payment amount must be positive")

// PaymentRequest is what a caller submits to record a payment against an
// invoice.
type PaymentRequest struct {
	Amount    int64     `json:"amount" validate:"required,gt=0"`
	Method    string    `json:"method" validate:"required,oneof=bank_transfer check card cash"`
	Reference string    `json:"reference"`
	Notes     string    `json:"notes"`
	PaidAt    time.Time `json:"paid_at"`
}

// settle applies a payment amount to the invoice's paid amount, balance and
// status. Pure with respect to storage: it only mutates the passed invoice
// and reports the domain error when the payment must be rejected.
func (svc *BillingService) settle(invoice *models.Invoice, amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	if !CanAcceptPayment(invoice.Status) {
		return &InvoiceVoidError{InvoiceID: invoice.ID}
	}

	newPaid := invoice.AmountPaid + amount
	if newPaid > invoice.Total && !svc.Config.AllowOverpayment {
		return &OverpaymentError{
			InvoiceID: invoice.ID,
			Attempted: amount,
			Balance:   invoice.Balance,
		}
	}

	invoice.AmountPaid = newPaid
	// negative balance means an authorized overpayment credit
	invoice.Balance = invoice.Total - newPaid
	invoice.Status = NextStatus(invoice.Status, invoice.Total, invoice.AmountPaid)
	return nil
}

// RecordPayment records a payment against one invoice and drives the
// balance/status bookkeeping.
//
// The invoice row is locked with SELECT ... FOR UPDATE for the duration of
// the transaction, which serializes concurrent payments against the same
// invoice. The lock wait is bounded by the database timeout, hitting it
// surfaces as a retryable ConflictError. All writes commit or none do.
func (svc *BillingService) RecordPayment(ctx context.Context, invoiceId int64, req *PaymentRequest) (*models.Invoice, *models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(svc.Config.DatabaseTimeout)*time.Second)
	defer cancel()

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	invoice := &models.Invoice{}
	payment := &models.Payment{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(invoice).
			Where("invoice.id = ?", invoiceId).
			For("UPDATE").
			Limit(1).Scan(ctx)
		if err != nil {
			return err
		}

		if err := svc.settle(invoice, req.Amount); err != nil {
			return err
		}

		number, err := svc.AllocateNumber(ctx, tx, common.SequenceKindPayment)
		if err != nil {
			return err
		}

		*payment = models.Payment{
			PaymentNumber: number,
			ExternalID:    uuid.NewString(),
			InvoiceID:     invoice.ID,
			CustomerID:    invoice.CustomerID,
			Amount:        req.Amount,
			Method:        req.Method,
			Reference:     req.Reference,
			Notes:         req.Notes,
			PaidAt:        paidAt,
		}
		if _, err := tx.NewInsert().Model(payment).Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewUpdate().Model(invoice).
			Column("amount_paid", "balance", "status", "updated_at").
			WherePK().Exec(ctx); err != nil {
			return err
		}

		// keep the job rollup in step with the invoice
		if _, err := tx.NewUpdate().Model((*models.Job)(nil)).
			Set("status = ?", jobStatusFor(invoice.Status)).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", invoice.JobID).
			Where("status <> ?", common.JobStatusCancelled).
			Exec(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, translateConflict(invoiceId, err)
	}

	svc.notifyPaymentRecorded(ctx, invoice, payment)

	svc.Logger.Infof("Recorded payment %s invoice:%s amount:%d balance:%d status:%s",
		payment.PaymentNumber, invoice.InvoiceNumber, payment.Amount, invoice.Balance, invoice.Status)
	return invoice, payment, nil
}

func (svc *BillingService) notifyPaymentRecorded(ctx context.Context, invoice *models.Invoice, payment *models.Payment) {
	svc.emitAudit(ctx, events.AuditEvent{
		Action:     common.AuditActionPaymentRecorded,
		EntityType: common.EntityTypePayment,
		EntityID:   payment.ID,
		NewData:    payment,
	})

	// the payment_received mail is only worth sending once the invoice is
	// settled in full, partial payments stay silent
	if invoice.Status != common.InvoiceStatusPaid {
		return
	}
	customer, err := svc.FindCustomer(ctx, invoice.CustomerID)
	if err != nil {
		svc.Logger.Errorf("Could not load customer for payment notification invoice_id:%d: %v", invoice.ID, err)
		return
	}
	paymentDate := payment.PaidAt
	svc.emitNotification(ctx, events.NotificationEvent{
		Type:           common.NotificationPaymentReceived,
		RecipientEmail: customer.Email,
		RecipientName:  customer.Name,
		InvoiceNumber:  invoice.InvoiceNumber,
		Amount:         payment.Amount,
		Currency:       invoice.Currency,
		PaymentMethod:  payment.Method,
		PaymentDate:    &paymentDate,
		CompanyName:    svc.Config.CompanyName,
	})
}

// translateConflict maps lock waits and serialization failures onto the
// retryable ConflictError. Everything else passes through untouched.
func translateConflict(invoiceId int64, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ConflictError{InvoiceID: invoiceId, Cause: err}
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') {
		case "40001", "40P01", "55P03", "57014": // serialization failure, deadlock, lock not available, query canceled
			return &ConflictError{InvoiceID: invoiceId, Cause: err}
		}
	}
	return err
}
