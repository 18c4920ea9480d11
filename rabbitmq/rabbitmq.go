package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/clearway/freightbill/lib/events"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of
// heap memory. Instead of allocating new memory everytime we encode an event
// we reuse buffers from this pool.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

// Client publishes the billing engine's structured events. Both streams are
// best effort from the engine's point of view, the caller decides whether a
// publish failure is worth more than a log line.
type Client interface {
	PublishNotification(ctx context.Context, event events.NotificationEvent) error
	PublishAudit(ctx context.Context, event events.AuditEvent) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	notificationExchange string
	auditExchange        string
}

type ClientOption = func(client *DefaultClient)

func WithNotificationExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.notificationExchange = exchange
	}
}

func WithAuditExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.auditExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

// NewClient wraps an AMQP connection and declares the exchanges the
// notification and audit collaborators bind their queues to.
func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		notificationExchange: "freightbill_notification",
		auditExchange:        "freightbill_audit",
	}

	for _, opt := range options {
		opt(client)
	}

	for _, exchange := range []string{client.notificationExchange, client.auditExchange} {
		err := client.amqpClient.ExchangeDeclare(
			exchange,
			// topic exchanges let consumers bind per event type
			"topic",
			// Durable and Non-Auto-Deleted exchanges will survive server
			// restarts and remain declared when there are no remaining bindings.
			true,
			false,
			// Non-Internal exchanges accept direct publishing
			false,
			// Nowait: wait for a server response to check whether the exchange
			// was created succesfully
			false,
			nil,
		)
		if err != nil {
			return nil, err
		}
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

func (client *DefaultClient) PublishNotification(ctx context.Context, event events.NotificationEvent) error {
	key := fmt.Sprintf("notification.%s", event.Type)
	err := client.publish(ctx, client.notificationExchange, key, event)
	if err != nil {
		captureErr(client.logger, err)
		return err
	}

	client.logger.Debugf("Successfully published %s notification for invoice %s", event.Type, event.InvoiceNumber)
	return nil
}

func (client *DefaultClient) PublishAudit(ctx context.Context, event events.AuditEvent) error {
	key := fmt.Sprintf("audit.%s.%s", event.EntityType, event.Action)
	err := client.publish(ctx, client.auditExchange, key, event)
	if err != nil {
		captureErr(client.logger, err)
		return err
	}

	client.logger.Debugf("Successfully published audit event %s entity_id:%d", event.Action, event.EntityID)
	return nil
}

func (client *DefaultClient) publish(ctx context.Context, exchange, key string, payload interface{}) error {
	buf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(buf)
	buf.Reset()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return err
	}
	// the channel may hold on to the body after we return the buffer
	body := make([]byte, buf.Len())
	copy(body, buf.Bytes())

	return client.amqpClient.PublishWithContext(ctx,
		exchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        body,
		},
	)
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
