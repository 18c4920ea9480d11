package service

import (
	"context"
	"time"

	"github.com/clearway/freightbill/lib/events"
)

// Notification and audit delivery is best effort. A failed publish is logged
// and swallowed, it never fails or rolls back the financial operation that
// produced the event.

func (svc *BillingService) emitNotification(ctx context.Context, event events.NotificationEvent) {
	if svc.RabbitMQClient == nil {
		return
	}
	if err := svc.RabbitMQClient.PublishNotification(ctx, event); err != nil {
		svc.Logger.Errorf("Could not publish %s notification invoice:%s: %v", event.Type, event.InvoiceNumber, err)
	}
}

func (svc *BillingService) emitAudit(ctx context.Context, event events.AuditEvent) {
	if svc.RabbitMQClient == nil {
		return
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if err := svc.RabbitMQClient.PublishAudit(ctx, event); err != nil {
		svc.Logger.Errorf("Could not publish %s audit event entity_id:%d: %v", event.Action, event.EntityID, err)
	}
}
