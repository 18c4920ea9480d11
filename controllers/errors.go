package controllers

import (
	"database/sql"
	"errors"

	"github.com/clearway/freightbill/lib/responses"
	"github.com/clearway/freightbill/lib/service"
	"github.com/labstack/echo/v4"
)

// writeError maps domain errors onto their HTTP responses. Unknown errors
// bubble up to the echo error handler.
func writeError(c echo.Context, err error) error {
	var (
		noCharges   *service.NoBillableChargesError
		overpayment *service.OverpaymentError
		voidInvoice *service.InvoiceVoidError
		conflict    *service.ConflictError
		exhausted   *service.AllocationExhaustedError
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(responses.NotFoundError.HttpStatusCode, responses.NotFoundError)
	case errors.Is(err, service.ErrNonPositiveAmount):
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	case errors.As(err, &noCharges):
		return c.JSON(responses.NoBillableChargesError.HttpStatusCode, responses.NoBillableChargesError)
	case errors.As(err, &overpayment):
		resp := responses.OverpaymentError
		resp.Message = overpayment.Error()
		return c.JSON(resp.HttpStatusCode, resp)
	case errors.As(err, &voidInvoice):
		return c.JSON(responses.InvoiceVoidError.HttpStatusCode, responses.InvoiceVoidError)
	case errors.As(err, &conflict):
		return c.JSON(responses.ConflictError.HttpStatusCode, responses.ConflictError)
	case errors.As(err, &exhausted):
		return c.JSON(responses.AllocationExhaustedError.HttpStatusCode, responses.AllocationExhaustedError)
	default:
		return err
	}
}
