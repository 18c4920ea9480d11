package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clearway/freightbill/db/models"
	"github.com/clearway/freightbill/lib/responses"
	"github.com/clearway/freightbill/lib/service"
	"github.com/labstack/echo/v4"
)

// PaymentController : payment recording endpoints
type PaymentController struct {
	svc *service.BillingService
}

func NewPaymentController(svc *service.BillingService) *PaymentController {
	return &PaymentController{svc: svc}
}

type Payment struct {
	ID            int64     `json:"id"`
	PaymentNumber string    `json:"payment_number"`
	ExternalID    string    `json:"external_id"`
	InvoiceID     int64     `json:"invoice_id"`
	CustomerID    int64     `json:"customer_id"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	Reference     string    `json:"reference,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	PaidAt        time.Time `json:"paid_at"`
}

func newPaymentResponse(payment *models.Payment) Payment {
	return Payment{
		ID:            payment.ID,
		PaymentNumber: payment.PaymentNumber,
		ExternalID:    payment.ExternalID,
		InvoiceID:     payment.InvoiceID,
		CustomerID:    payment.CustomerID,
		Amount:        payment.Amount,
		Method:        payment.Method,
		Reference:     payment.Reference,
		Notes:         payment.Notes,
		PaidAt:        payment.PaidAt,
	}
}

type RecordPaymentResponseBody struct {
	Invoice Invoice `json:"invoice"`
	Payment Payment `json:"payment"`
}

// RecordPayment applies a payment against an invoice.
func (controller *PaymentController) RecordPayment(c echo.Context) error {
	invoiceId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	var body service.PaymentRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	invoice, payment, err := controller.svc.RecordPayment(c.Request().Context(), invoiceId, &body)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, &RecordPaymentResponseBody{
		Invoice: *newInvoiceResponse(invoice),
		Payment: newPaymentResponse(payment),
	})
}

type GetPaymentsResponseBody struct {
	Payments []Payment `json:"payments"`
}

// GetPayments lists the payments recorded against an invoice.
func (controller *PaymentController) GetPayments(c echo.Context) error {
	invoiceId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	payments, err := controller.svc.PaymentsFor(c.Request().Context(), invoiceId)
	if err != nil {
		return err
	}

	response := make([]Payment, len(payments))
	for i, payment := range payments {
		payment := payment
		response[i] = newPaymentResponse(&payment)
	}
	return c.JSON(http.StatusOK, &GetPaymentsResponseBody{Payments: response})
}
