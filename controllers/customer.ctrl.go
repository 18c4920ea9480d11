package controllers

import (
	"net/http"
	"strconv"

	"github.com/clearway/freightbill/lib/responses"
	"github.com/clearway/freightbill/lib/service"
	"github.com/labstack/echo/v4"
)

// CustomerController : customer-scoped read surface
type CustomerController struct {
	svc *service.BillingService
}

func NewCustomerController(svc *service.BillingService) *CustomerController {
	return &CustomerController{svc: svc}
}

// GetCustomerInvoices lists a customer's invoices.
func (controller *CustomerController) GetCustomerInvoices(c echo.Context) error {
	customerId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
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
