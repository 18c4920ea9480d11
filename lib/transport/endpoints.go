package transport

import (
	"github.com/clearway/freightbill/controllers"
	"github.com/clearway/freightbill/lib/service"
	"github.com/clearway/freightbill/lib/tokens"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.BillingService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	invoiceCtrl := controllers.NewInvoiceController(svc)
	paymentCtrl := controllers.NewPaymentController(svc)
	jobCtrl := controllers.NewJobController(svc)
	customerCtrl := controllers.NewCustomerController(svc)

	billingMw := tokens.BillingPermissionMiddleware()

	secured.GET("/v2/jobs/:id", jobCtrl.GetJob)
	secured.GET("/v2/invoices", invoiceCtrl.GetInvoices)
	secured.GET("/v2/invoices/:id", invoiceCtrl.GetInvoice)
	secured.GET("/v2/invoices/:id/payments", paymentCtrl.GetPayments)
	secured.GET("/v2/customers/:id/invoices", customerCtrl.GetCustomerInvoices)

	// money-mutating endpoints sit behind the billing permission and the
	// strict rate limit
	securedWithStrictRateLimit.POST("/v2/jobs/:id/invoice", invoiceCtrl.GenerateInvoice, billingMw)
	securedWithStrictRateLimit.POST("/v2/invoices/:id/send", invoiceCtrl.SendInvoice, billingMw)
	securedWithStrictRateLimit.POST("/v2/invoices/:id/payments", paymentCtrl.RecordPayment, billingMw)

	// administrative void requires the admin token
	e.POST("/v2/admin/invoices/:id/void", invoiceCtrl.VoidInvoice, adminMw, logMw)
}
