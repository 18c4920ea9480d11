package integration_tests

import (
	"context"
	"fmt"
	"os"

	"github.com/clearway/freightbill/db"
	"github.com/clearway/freightbill/db/migrations"
	"github.com/clearway/freightbill/db/models"
	"github.com/clearway/freightbill/lib"
	"github.com/clearway/freightbill/lib/service"
	"github.com/uptrace/bun/migrate"
)

// databaseAvailable reports whether the suite can reach a postgres instance.
// The suites skip themselves when DATABASE_URI is not set so the unit tests
// stay runnable without infrastructure.
func databaseAvailable() bool {
	_, ok := os.LookupEnv("DATABASE_URI")
	return ok
}

func billingTestServiceInit() (*service.BillingService, error) {
	c := &service.Config{
		DatabaseUri:             os.Getenv("DATABASE_URI"),
		DatabaseMaxConns:        4,
		DatabaseMaxIdleConns:    2,
		DatabaseConnMaxLifetime: 10,
		DatabaseTimeout:         60,
		JWTSecret:               []byte("SECRET"),
		Currency:                "USD",
		PaymentTermsDays:        30,
		InvoicePrefix:           "INV",
		PaymentPrefix:           "PMT",
		CompanyName:             "Clearway Freight Services",
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := lib.Logger(c.LogFilePath)
	return &service.BillingService{
		Config: c,
		DB:     dbConn,
		Logger: logger,
	}, nil
}

func clearTable(svc *service.BillingService, tableName string) error {
	_, err := svc.DB.Exec(fmt.Sprintf("DELETE FROM %s", tableName))
	return err
}

func createTestCustomer(svc *service.BillingService) (*models.Customer, error) {
	customer := &models.Customer{
		Name:  "Acme Shipping",
		Email: "billing@acme.test",
	}
	_, err := svc.DB.NewInsert().Model(customer).Exec(context.Background())
	return customer, err
}

// createTestJob seeds an open job with one charge per amount/taxAmount pair.
func createTestJob(svc *service.BillingService, customerId int64, charges ...[2]int64) (*models.Job, error) {
	ctx := context.Background()
	job := &models.Job{
		CustomerID: customerId,
		Reference:  "MSKU-123",
	}
	if _, err := svc.DB.NewInsert().Model(job).Exec(ctx); err != nil {
		return nil, err
	}
	for i, pair := range charges {
		charge := &models.JobCharge{
			JobID:     job.ID,
			FeeName:   fmt.Sprintf("Fee %d", i+1),
			Amount:    pair[0],
			TaxAmount: pair[1],
			Total:     pair[0] + pair[1],
		}
		if _, err := svc.DB.NewInsert().Model(charge).Exec(ctx); err != nil {
			return nil, err
		}
	}
	return job, nil
}
