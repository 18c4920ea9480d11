package service

import (
	"context"
	"time"

	"github.com/clearway/freightbill/common"
	"github.com/clearway/freightbill/db/models"
	"github.com/clearway/freightbill/lib/events"
	"github.com/uptrace/bun"
)

// StartOverdueRoutine periodically sweeps open invoices and emits reminder
// notifications for everything past its due date. The sweep only emits
// events, it never mutates invoice money fields.
func (svc *BillingService) StartOverdueRoutine(ctx context.Context) error {
	interval := time.Duration(svc.Config.OverdueCheckInterval) * time.Second
	if interval == 0 {
		svc.Logger.Info("Overdue sweep disabled")
		return nil
	}

	svc.Logger.Infof("Starting overdue sweep every %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := svc.sweepOverdueInvoices(ctx); err != nil {
				svc.Logger.Errorf("Overdue sweep failed: %v", err)
			}
		}
	}
}

func (svc *BillingService) sweepOverdueInvoices(ctx context.Context) error {
	cooldown := time.Duration(svc.Config.ReminderCooldown) * time.Second
	cutoff := time.Now().Add(-cooldown)

	var invoices []models.Invoice
	err := svc.DB.NewSelect().Model(&invoices).
		Where("status IN (?)", bun.In([]string{common.InvoiceStatusSent, common.InvoiceStatusPartiallyPaid})).
		Where("due_date < ?", time.Now()).
		Where("last_reminder_at IS NULL OR last_reminder_at < ?", cutoff).
		Scan(ctx)
	if err != nil {
		return err
	}

	for _, invoice := range invoices {
		if err := svc.remindOverdue(ctx, invoice); err != nil {
			svc.Logger.Errorf("Could not remind invoice %s: %v", invoice.InvoiceNumber, err)
		}
	}
	return nil
}

func (svc *BillingService) remindOverdue(ctx context.Context, invoice models.Invoice) error {
	customer, err := svc.FindCustomer(ctx, invoice.CustomerID)
	if err != nil {
		return err
	}

	// escalate to an overdue notice after a full payment term past due
	eventType := common.NotificationPaymentReminder
	graceDays := svc.Config.PaymentTermsDays
	if time.Since(invoice.DueDate) > time.Duration(graceDays)*24*time.Hour {
		eventType = common.NotificationOverdueNotice
	}

	dueDate := invoice.DueDate
	svc.emitNotification(ctx, events.NotificationEvent{
		Type:           eventType,
		RecipientEmail: customer.Email,
		RecipientName:  customer.Name,
		InvoiceNumber:  invoice.InvoiceNumber,
		Amount:         invoice.Balance,
		Currency:       invoice.Currency,
		DueDate:        &dueDate,
		CompanyName:    svc.Config.CompanyName,
	})

	invoice.LastReminderAt = bun.NullTime{Time: time.Now()}
	_, err = svc.DB.NewUpdate().Model(&invoice).
		Column("last_reminder_at", "updated_at").
		WherePK().Exec(ctx)
	return err
}
