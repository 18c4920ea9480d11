package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/clearway/freightbill/db"
	"github.com/clearway/freightbill/db/migrations"
	"github.com/clearway/freightbill/lib"
	"github.com/clearway/freightbill/lib/service"
	"github.com/clearway/freightbill/lib/tokens"
	"github.com/clearway/freightbill/lib/transport"
	"github.com/clearway/freightbill/rabbitmq"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/uptrace/bun/migrate"
)

func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := lib.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	// If no RABBITMQ_URI was provided we will not attempt to create a client.
	// Notification and audit events are silently dropped in this case.
	var rabbitmqClient rabbitmq.Client
	if c.RabbitMQUri != "" {
		amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, rabbitmq.WithAmqpLogger(logger))
		if err != nil {
			logger.Fatal(err)
		}

		rabbitmqClient, err = rabbitmq.NewClient(amqpClient,
			rabbitmq.WithLogger(logger),
			rabbitmq.WithNotificationExchange(c.RabbitMQNotificationExchange),
			rabbitmq.WithAuditExchange(c.RabbitMQAuditExchange),
		)
		if err != nil {
			logger.Fatal(err)
		}

		// close the connection gently at the end of the runtime
		defer rabbitmqClient.Close()
	}

	svc := &service.BillingService{
		Config:         c,
		DB:             dbConn,
		Logger:         logger,
		RabbitMQClient: rabbitmqClient,
	}

	//init echo server
	e := transport.InitEcho(c, logger)
	//if Datadog is configured, add datadog middleware
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("freightbill")))
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for money-mutating requests
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	secured := e.Group("", tokens.Middleware(c.JWTSecret), logMw)
	securedWithStrictRateLimit := e.Group("", tokens.Middleware(c.JWTSecret), strictRateLimitMiddleware, logMw)

	transport.RegisterEndpoints(svc, e, secured, securedWithStrictRateLimit, tokens.AdminTokenMiddleware(c.AdminToken), logMw)

	var backgroundWg sync.WaitGroup
	backGroundCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)

	// Sweep for overdue invoices in the background
	backgroundWg.Add(1)
	go func() {
		err = svc.StartOverdueRoutine(backGroundCtx)
		if err != nil && err != context.Canceled {
			sentry.CaptureException(err)
			svc.Logger.Error(err)
		}
		svc.Logger.Info("Overdue routine done")
		backgroundWg.Done()
	}()

	// Start Prometheus server if enabled
	if c.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, c, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server", err)
		}
	}()

	<-backGroundCtx.Done()
	// start graceful shutdown with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	backgroundWg.Wait()
	svc.Logger.Info("Server exiting")
}
