package tokens

import (
	"net/http"
	"strings"

	"github.com/clearway/freightbill/lib/responses"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// Claims are minted by the external identity provider. The billing engine
// never authenticates anyone itself, it only needs the caller identity and
// the billing permission.
type Claims struct {
	ID               int64 `json:"id"`
	CanManageBilling bool  `json:"can_manage_billing"`

	jwt.StandardClaims
}

// Middleware extracts the caller identity from a bearer token and stores it
// on the echo context as UserID / CanManageBilling.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
			}
			tokenString := strings.TrimPrefix(auth, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
			}

			c.Set("UserID", claims.ID)
			c.Set("CanManageBilling", claims.CanManageBilling)
			return next(c)
		}
	}
}

// BillingPermissionMiddleware rejects callers whose token lacks the
// may-record-payments / may-generate-invoices permission.
func BillingPermissionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, ok := c.Get("CanManageBilling").(bool)
			if !ok || !allowed {
				return c.JSON(http.StatusForbidden, responses.BadAuthError)
			}
			return next(c)
		}
	}
}
