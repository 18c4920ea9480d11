package transport

import (
	"fmt"
	"strconv"

	"github.com/clearway/freightbill/lib"
	"github.com/clearway/freightbill/lib/responses"
	"github.com/clearway/freightbill/lib/service"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/ziflex/lecho/v3"
	"golang.org/x/time/rate"
)

func InitEcho(c *service.Config, logger *lecho.Logger) (e *echo.Echo) {

	// New Echo app
	e = echo.New()
	e.HideBanner = true

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("250K"))
	// set the default rate limit defining the overall max requests/second
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(c.DefaultRateLimit))))

	e.Logger = logger
	e.Use(middleware.RequestID())

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{}))
	}
	return e
}

func CreateLoggingMiddleware(logger *lecho.Logger) echo.MiddlewareFunc {
	return lecho.Middleware(lecho.Config{
		Logger: logger,
		Enricher: func(c echo.Context, logger zerolog.Context) zerolog.Context {
			return logger.Interface("UserID", c.Get("UserID"))
		},
	})
}

func CreateRateLimitMiddleware(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(requestsPerSecond), Burst: burst},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			userId := ctx.Get("UserID")
			id := ctx.RealIP()
			if userId != nil {
				userIdAsInt64 := ctx.Get("UserID").(int64)
				id = strconv.FormatInt(userIdAsInt64, 10)
			}

			return id, nil
		},
	}

	return middleware.RateLimiterWithConfig(config)
}

func StartPrometheusEcho(logger *lecho.Logger, c *service.Config, e *echo.Echo) {
	// Create Prometheus server and Middleware
	echoPrometheus := echo.New()
	echoPrometheus.HideBanner = true
	prom := prometheus.NewPrometheus("echo", nil)
	// Scrape metrics from Main Server
	e.Use(prom.HandlerFunc)
	// Setup metrics endpoint at another server
	prom.SetMetricsPath(echoPrometheus)
	echoPrometheus.Logger = logger
	echoPrometheus.Logger.Infof("Starting prometheus on port %d", c.PrometheusPort)
	echoPrometheus.Logger.Fatal(echoPrometheus.Start(fmt.Sprintf(":%d", c.PrometheusPort)))
}
