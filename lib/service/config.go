package service

type Config struct {
	DatabaseUri             string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseTimeout         int     `envconfig:"DATABASE_TIMEOUT" default:"60"`             // 60 seconds
	SentryDSN               string  `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	DatadogAgentUrl         string  `envconfig:"DATADOG_AGENT_URL"`
	LogFilePath             string  `envconfig:"LOG_FILE_PATH"`
	JWTSecret               []byte  `envconfig:"JWT_SECRET" required:"true"`
	AdminToken              string  `envconfig:"ADMIN_TOKEN"`
	Host                    string  `envconfig:"HOST" default:"localhost:3000"`
	Port                    int     `envconfig:"PORT" default:"3000"`
	DefaultRateLimit        int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit         int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit          int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus        bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int     `envconfig:"PROMETHEUS_PORT" default:"9092"`

	// billing engine behavior
	Currency         string `envconfig:"CURRENCY" default:"USD"`
	PaymentTermsDays int    `envconfig:"PAYMENT_TERMS_DAYS" default:"30"`
	AllowOverpayment bool   `envconfig:"ALLOW_OVERPAYMENT" default:"false"`
	InvoicePrefix    string `envconfig:"INVOICE_PREFIX" default:"INV"`
	PaymentPrefix    string `envconfig:"PAYMENT_PREFIX" default:"PMT"`
	CompanyName      string `envconfig:"COMPANY_NAME" default:"Clearway Freight Services"`
	// 0 disables the overdue sweep
	OverdueCheckInterval int `envconfig:"OVERDUE_CHECK_INTERVAL" default:"0"` // in seconds
	// minimum time between reminder notifications per invoice
	ReminderCooldown int `envconfig:"REMINDER_COOLDOWN" default:"86400"` // in seconds, default 1 day

	RabbitMQUri                  string `envconfig:"RABBITMQ_URI"`
	RabbitMQNotificationExchange string `envconfig:"RABBITMQ_NOTIFICATION_EXCHANGE" default:"freightbill_notification"`
	RabbitMQAuditExchange        string `envconfig:"RABBITMQ_AUDIT_EXCHANGE" default:"freightbill_audit"`
}
