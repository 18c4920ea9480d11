package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/clearway/freightbill/common"
	"github.com/clearway/freightbill/db/models"
	"github.com/clearway/freightbill/lib/events"
	"github.com/uptrace/bun"
)

// lineFromCharge derives an invoice line from a single job charge. The line
// total is carried over verbatim from the charge so charge and line can never
// drift apart through rounding. The tax rate is derived for display only.
func lineFromCharge(charge *models.JobCharge) *models.InvoiceLine {
	taxRate := float64(0)
	if charge.Amount > 0 {
		taxRate = float64(charge.TaxAmount) / float64(charge.Amount) * 100
	}
	return &models.InvoiceLine{
		ChargeID:    charge.ID,
		Description: charge.DisplayName(),
		Quantity:    1,
		UnitPrice:   charge.Amount,
		TaxRate:     taxRate,
		LineTotal:   charge.Total,
	}
}

// BuildInvoice assembles a draft invoice from the billable charges of a job.
// No side effects, persistence and number allocation are the caller's
// responsibility.
func (svc *BillingService) BuildInvoice(job *models.Job, customer *models.Customer, charges []*models.JobCharge, number string, now time.Time) *models.Invoice {
	invoice := &models.Invoice{
		InvoiceNumber: number,
		JobID:         job.ID,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Currency:      svc.Config.Currency,
		Status:        common.InvoiceStatusDraft,
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, svc.Config.PaymentTermsDays),
	}

	for _, charge := range charges {
		line := lineFromCharge(charge)
		invoice.Lines = append(invoice.Lines, line)
		invoice.Total += line.LineTotal
		invoice.TaxTotal += charge.TaxAmount
	}
	invoice.AmountPaid = 0
	invoice.Balance = invoice.Total

	return invoice
}

// GenerateInvoice turns a job's billable charges into a persisted draft
// invoice and rolls the job status forward. The invoice, its lines, the
// number allocation and the job update commit atomically.
func (svc *BillingService) GenerateInvoice(ctx context.Context, jobId int64) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(svc.Config.DatabaseTimeout)*time.Second)
	defer cancel()

	job, err := svc.FindJob(ctx, jobId)
	if err != nil {
		return nil, err
	}

	charges, err := BillableCharges(job)
	if err != nil {
		return nil, err
	}

	var invoice *models.Invoice
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		number, err := svc.AllocateNumber(ctx, tx, common.SequenceKindInvoice)
		if err != nil {
			return err
		}

		invoice = svc.BuildInvoice(job, job.Customer, charges, number, time.Now())
		if _, err := tx.NewInsert().Model(invoice).Exec(ctx); err != nil {
			return err
		}
		for _, line := range invoice.Lines {
			line.InvoiceID = invoice.ID
		}
		if _, err := tx.NewInsert().Model(&invoice.Lines).Exec(ctx); err != nil {
			return err
		}

		job.Status = common.JobStatusInvoiced
		if _, err := tx.NewUpdate().Model(job).Column("status", "updated_at").WherePK().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	svc.emitAudit(ctx, events.AuditEvent{
		Action:     common.AuditActionInvoiceGenerated,
		EntityType: common.EntityTypeInvoice,
		EntityID:   invoice.ID,
		NewData:    invoice,
	})

	svc.Logger.Infof("Generated invoice %s for job %d total:%d tax:%d", invoice.InvoiceNumber, job.ID, invoice.Total, invoice.TaxTotal)
	return invoice, nil
}

// SendInvoice marks a draft invoice as sent and emits the invoice_created
// notification for the customer. Sending is the only way out of draft.
func (svc *BillingService) SendInvoice(ctx context.Context, invoiceId int64) (*models.Invoice, error) {
	invoice, err := svc.FindInvoice(ctx, invoiceId)
	if err != nil {
		return nil, err
	}
	if !CanSend(invoice.Status) {
		return nil, &ConflictError{InvoiceID: invoice.ID, Cause: errStatus(invoice.Status)}
	}

	invoice.Status = common.InvoiceStatusSent
	invoice.SentAt = bun.NullTime{Time: time.Now()}
	res, err := svc.DB.NewUpdate().Model(invoice).
		Column("status", "sent_at", "updated_at").
		WherePK().
		Where("status = ?", common.InvoiceStatusDraft).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	// a concurrent writer moved the invoice out of draft between our read
	// and the guarded update
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, &ConflictError{InvoiceID: invoice.ID, Cause: errConcurrentUpdate}
	}

	svc.notifyInvoiceSent(ctx, invoice)
	svc.emitAudit(ctx, events.AuditEvent{
		Action:     common.AuditActionInvoiceSent,
		EntityType: common.EntityTypeInvoice,
		EntityID:   invoice.ID,
		NewData:    invoice,
	})

	return invoice, nil
}

func (svc *BillingService) notifyInvoiceSent(ctx context.Context, invoice *models.Invoice) {
	customer, err := svc.FindCustomer(ctx, invoice.CustomerID)
	if err != nil {
		svc.Logger.Errorf("Could not load customer for send notification invoice_id:%d: %v", invoice.ID, err)
		return
	}
	dueDate := invoice.DueDate
	svc.emitNotification(ctx, events.NotificationEvent{
		Type:           common.NotificationInvoiceCreated,
		RecipientEmail: customer.Email,
		RecipientName:  customer.Name,
		InvoiceNumber:  invoice.InvoiceNumber,
		Amount:         invoice.Total,
		Currency:       invoice.Currency,
		DueDate:        &dueDate,
		CompanyName:    svc.Config.CompanyName,
	})
}

// VoidInvoice is the administrative escape hatch. The balance stays frozen at
// whatever it was, no further payments are accepted.
func (svc *BillingService) VoidInvoice(ctx context.Context, invoiceId int64) (*models.Invoice, error) {
	invoice, err := svc.FindInvoice(ctx, invoiceId)
	if err != nil {
		return nil, err
	}
	if !CanVoid(invoice.Status) {
		return nil, &ConflictError{InvoiceID: invoice.ID, Cause: errStatus(invoice.Status)}
	}

	oldStatus := invoice.Status
	invoice.Status = common.InvoiceStatusVoid
	invoice.VoidedAt = bun.NullTime{Time: time.Now()}
	res, err := svc.DB.NewUpdate().Model(invoice).
		Column("status", "voided_at", "updated_at").
		WherePK().
		Where("status = ?", oldStatus).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	// a payment moved the invoice to another status while we were voiding it
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, &ConflictError{InvoiceID: invoice.ID, Cause: errConcurrentUpdate}
	}

	svc.emitAudit(ctx, events.AuditEvent{
		Action:     common.AuditActionInvoiceVoided,
		EntityType: common.EntityTypeInvoice,
		EntityID:   invoice.ID,
		OldData:    map[string]interface{}{"status": oldStatus},
		NewData:    map[string]interface{}{"status": invoice.Status},
	})

	return invoice, nil
}
