package integration_tests

import (
	"context"
	"log"
	"testing"

	"github.com/clearway/freightbill/common"
	"github.com/clearway/freightbill/db/models"
	"github.com/clearway/freightbill/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InvoiceLifecycleTestSuite struct {
	suite.Suite
	svc      *service.BillingService
	customer *models.Customer
}

func (suite *InvoiceLifecycleTestSuite) SetupSuite() {
	svc, err := billingTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.svc = svc
}

func (suite *InvoiceLifecycleTestSuite) SetupTest() {
	customer, err := createTestCustomer(suite.svc)
	suite.Require().NoError(err)
	suite.customer = customer
}

func (suite *InvoiceLifecycleTestSuite) TearDownTest() {
	for _, table := range []string{"payments", "invoice_lines", "invoices", "job_charges", "jobs", "customers"} {
		err := clearTable(suite.svc, table)
		assert.NoError(suite.T(), err)
	}
}

func (suite *InvoiceLifecycleTestSuite) draftInvoice() *models.Invoice {
	ctx := context.Background()
	job, err := createTestJob(suite.svc, suite.customer.ID, [2]int64{10000, 500})
	suite.Require().NoError(err)

	invoice, err := suite.svc.GenerateInvoice(ctx, job.ID)
	suite.Require().NoError(err)
	return invoice
}

func (suite *InvoiceLifecycleTestSuite) TestGenerateSendAndLookupByNumber() {
	ctx := context.Background()
	invoice := suite.draftInvoice()

	assert.Equal(suite.T(), common.InvoiceStatusDraft, invoice.Status)
	assert.Equal(suite.T(), int64(10500), invoice.Total)

	sent, err := suite.svc.SendInvoice(ctx, invoice.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), common.InvoiceStatusSent, sent.Status)
	assert.False(suite.T(), sent.SentAt.IsZero())

	byNumber, err := suite.svc.FindInvoiceByNumber(ctx, invoice.InvoiceNumber)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), invoice.ID, byNumber.ID)
	assert.Equal(suite.T(), common.InvoiceStatusSent, byNumber.Status)
}

// Sending an already-sent invoice is a conflict, and the database keeps the
// first send's state.
func (suite *InvoiceLifecycleTestSuite) TestSendTwiceReturnsConflict() {
	ctx := context.Background()
	invoice := suite.draftInvoice()

	_, err := suite.svc.SendInvoice(ctx, invoice.ID)
	suite.Require().NoError(err)

	_, err = suite.svc.SendInvoice(ctx, invoice.ID)
	var conflict *service.ConflictError
	assert.ErrorAs(suite.T(), err, &conflict)
	assert.Equal(suite.T(), invoice.ID, conflict.InvoiceID)
}

// A send whose status update committed must report success even when the
// notification path fails afterwards.
func (suite *InvoiceLifecycleTestSuite) TestSendSucceedsWhenCustomerLookupFails() {
	ctx := context.Background()
	invoice := suite.draftInvoice()

	// drop the customer so the notification lookup has nothing to find
	_, err := suite.svc.DB.NewDelete().Model((*models.Customer)(nil)).
		Where("id = ?", suite.customer.ID).Exec(ctx)
	suite.Require().NoError(err)

	sent, err := suite.svc.SendInvoice(ctx, invoice.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), common.InvoiceStatusSent, sent.Status)

	reloaded, err := suite.svc.FindInvoice(ctx, invoice.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), common.InvoiceStatusSent, reloaded.Status)
}

func (suite *InvoiceLifecycleTestSuite) TestVoidPaidInvoiceRejected() {
	ctx := context.Background()
	invoice := suite.draftInvoice()

	_, err := suite.svc.SendInvoice(ctx, invoice.ID)
	suite.Require().NoError(err)
	_, _, err = suite.svc.RecordPayment(ctx, invoice.ID, paymentRequest(10500))
	suite.Require().NoError(err)

	_, err = suite.svc.VoidInvoice(ctx, invoice.ID)
	var conflict *service.ConflictError
	assert.ErrorAs(suite.T(), err, &conflict)
}

func TestInvoiceLifecycleSuite(t *testing.T) {
	if !databaseAvailable() {
		t.Skip("set DATABASE_URI to run database integration tests")
	}
	suite.Run(t, new(InvoiceLifecycleTestSuite))
}
