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

// InvoiceController : invoice generation and lifecycle endpoints
type InvoiceController struct {
	svc *service.BillingService
}

func NewInvoiceController(svc *service.BillingService) *InvoiceController {
	return &InvoiceController{svc: svc}
}

type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   int64   `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
	LineTotal   int64   `json:"line_total"`
}

type Invoice struct {
	ID            int64         `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	JobID         int64         `json:"job_id"`
	CustomerID    int64         `json:"customer_id"`
	CustomerName  string        `json:"customer_name"`
	Currency      string        `json:"currency"`
	Total         int64         `json:"total"`
	TaxTotal      int64         `json:"tax_total"`
	AmountPaid    int64         `json:"amount_paid"`
	Balance       int64         `json:"balance"`
	Status        string        `json:"status"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       time.Time     `json:"due_date"`
	SentAt        time.Time     `json:"sent_at,omitempty"`
	VoidedAt      time.Time     `json:"voided_at,omitempty"`
	Lines         []InvoiceLine `json:"lines,omitempty"`
}

func newInvoiceResponse(invoice *models.Invoice) *Invoice {
	response := &Invoice{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		JobID:         invoice.JobID,
		CustomerID:    invoice.CustomerID,
		CustomerName:  invoice.CustomerName,
		Currency:      invoice.Currency,
		Total:         invoice.Total,
		TaxTotal:      invoice.TaxTotal,
		AmountPaid:    invoice.AmountPaid,
		Balance:       invoice.Balance,
		Status:        invoice.Status,
		IssueDate:     invoice.IssueDate,
		DueDate:       invoice.DueDate,
		SentAt:        invoice.SentAt.Time,
		VoidedAt:      invoice.VoidedAt.Time,
	}
	for _, line := range invoice.Lines {
		response.Lines = append(response.Lines, InvoiceLine{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TaxRate:     line.TaxRate,
			LineTotal:   line.LineTotal,
		})
	}
	return response
}

// GenerateInvoice turns a job's billable charges into a draft invoice.
func (controller *InvoiceController) GenerateInvoice(c echo.Context) error {
	jobId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	invoice, err := controller.svc.GenerateInvoice(c.Request().Context(), jobId)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newInvoiceResponse(invoice))
}

type GetInvoicesResponseBody struct {
	Invoices []Invoice `json:"invoices"`
}

// GetInvoices returns the most recent invoices, optionally filtered by
// customer and status, or looks a single invoice up by its number.
func (controller *InvoiceController) GetInvoices(c echo.Context) error {
	if number := c.QueryParam("number"); number != "" {
		invoice, err := controller.svc.FindInvoiceByNumber(c.Request().Context(), number)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, &GetInvoicesResponseBody{Invoices: []Invoice{*newInvoiceResponse(invoice)}})
	}

	var customerId int64
	if raw := c.QueryParam("customer_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
		}
		customerId = parsed
	}

	invoices, err := controller.svc.InvoicesFor(c.Request().Context(), customerId, c.QueryParam("status"))
	if err != nil {
		return err
	}

	response := make([]Invoice, len(invoices))
	for i, invoice := range invoices {
		invoice := invoice
		response[i] = *newInvoiceResponse(&invoice)
	}
	return c.JSON(http.StatusOK, &GetInvoicesResponseBody{Invoices: response})
}

// GetInvoice returns a single invoice with its lines.
func (controller *InvoiceController) GetInvoice(c echo.Context) error {
	invoiceId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	invoice, err := controller.svc.FindInvoice(c.Request().Context(), invoiceId)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newInvoiceResponse(invoice))
}

// SendInvoice moves a draft invoice to sent and notifies the customer.
func (controller *InvoiceController) SendInvoice(c echo.Context) error {
	invoiceId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	invoice, err := controller.svc.SendInvoice(c.Request().Context(), invoiceId)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newInvoiceResponse(invoice))
}

// VoidInvoice is the administrative void action.
func (controller *InvoiceController) VoidInvoice(c echo.Context) error {
	invoiceId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	invoice, err := controller.svc.VoidInvoice(c.Request().Context(), invoiceId)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newInvoiceResponse(invoice))
}
