package service

import (
	"context"

	"github.com/clearway/freightbill/db/models"
	"github.com/clearway/freightbill/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type BillingService struct {
	Config         *Config
	DB             *bun.DB
	Logger         *lecho.Logger
	RabbitMQClient rabbitmq.Client
}

func (svc *BillingService) FindCustomer(ctx context.Context, customerId int64) (*models.Customer, error) {
	var customer models.Customer

	err := svc.DB.NewSelect().Model(&customer).Where("id = ?", customerId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (svc *BillingService) FindJob(ctx context.Context, jobId int64) (*models.Job, error) {
	var job models.Job

	err := svc.DB.NewSelect().Model(&job).
		Relation("Charges").
		Relation("Customer").
		Where("job.id = ?", jobId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (svc *BillingService) FindInvoice(ctx context.Context, invoiceId int64) (*models.Invoice, error) {
	var invoice models.Invoice

	err := svc.DB.NewSelect().Model(&invoice).
		Relation("Lines").
		Where("invoice.id = ?", invoiceId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (svc *BillingService) FindInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	var invoice models.Invoice

	err := svc.DB.NewSelect().Model(&invoice).
		Relation("Lines").
		Where("invoice.invoice_number = ?", number).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (svc *BillingService) InvoicesFor(ctx context.Context, customerId int64, status string) ([]models.Invoice, error) {
	var invoices []models.Invoice

	query := svc.DB.NewSelect().Model(&invoices)
	if customerId != 0 {
		query.Where("customer_id = ?", customerId)
	}
	if status != "" {
		query.Where("status = ?", status)
	}
	query.OrderExpr("id DESC").Limit(100)
	err := query.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (svc *BillingService) PaymentsFor(ctx context.Context, invoiceId int64) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := svc.DB.NewSelect().Model(&payments).Where("invoice_id = ?", invoiceId).OrderExpr("id ASC").Scan(ctx)
	return payments, err
}
