package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clearway/freightbill/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteErrorNoBillableCharges(t *testing.T) {
	c, rec := testContext()

	err := writeError(c, &service.NoBillableChargesError{JobID: 7})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteErrorOverpaymentIncludesContext(t *testing.T) {
	c, rec := testContext()

	err := writeError(c, &service.OverpaymentError{InvoiceID: 42, Attempted: 200, Balance: 100})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invoice 42")
}

func TestWriteErrorVoidInvoice(t *testing.T) {
	c, rec := testContext()

	err := writeError(c, &service.InvoiceVoidError{InvoiceID: 42})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteErrorConflictIsRetryable(t *testing.T) {
	c, rec := testContext()

	err := writeError(c, &service.ConflictError{InvoiceID: 42})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestWriteErrorNotFound(t *testing.T) {
	c, rec := testContext()

	err := writeError(c, sql.ErrNoRows)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteErrorUnknownErrorsBubbleUp(t *testing.T) {
	c, _ := testContext()

	cause := errors.New("connection refused")
	err := writeError(c, cause)
	assert.Equal(t, cause, err)
}
