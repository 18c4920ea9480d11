package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "not found",
	HttpStatusCode: 404,
}

var NoBillableChargesError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "job has no billable charges. add charges before generating an invoice",
	HttpStatusCode: 400,
}

var OverpaymentError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "payment exceeds the remaining balance. reduce the amount or enable overpayment",
	HttpStatusCode: 400,
}

var InvoiceVoidError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invoice is void and does not accept payments",
	HttpStatusCode: 400,
}

var ConflictError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "the invoice was modified concurrently. please retry the operation",
	HttpStatusCode: 409,
}

var AllocationExhaustedError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "identifier space exhausted. please contact the operator",
	HttpStatusCode: 500,
}

func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	m, ok := he.Message.(echo.Map)
	if !ok {
		return true
	}
	// auth failures are noise, not errors worth tracking
	return m["code"] != 1
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}
