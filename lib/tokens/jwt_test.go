package tokens

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("SECRET")

func signedToken(t *testing.T, claims *Claims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	assert.NoError(t, err)
	return token
}

func runRequest(token string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, fmt.Sprintf("Bearer %s", token))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Middleware(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	handler(c)
	return rec, c
}

func TestMiddlewareSetsIdentity(t *testing.T) {
	token := signedToken(t, &Claims{ID: 7, CanManageBilling: true})

	rec, c := runRequest(token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get("UserID"))
	assert.Equal(t, true, c.Get("CanManageBilling"))
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	rec, _ := runRequest("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{ID: 7}).SignedString([]byte("WRONG"))
	assert.NoError(t, err)

	rec, _ := runRequest(token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBillingPermissionMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("CanManageBilling", false)

	handler := BillingPermissionMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	handler(c)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
