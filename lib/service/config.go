package service

type Config struct {
	DatabaseUri             string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseTimeout         int     `envconfig:"DATABASE_TIMEOUT" default:"60"`             // 60 seconds
	LockTimeout             int     `envconfig:"LOCK_TIMEOUT" default:"5"`                  // seconds to wait for account row locks
	SentryDSN               string  `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath             string  `envconfig:"LOG_FILE_PATH"`
	JWTSecret               []byte  `envconfig:"JWT_SECRET" required:"true"`
	AdminToken              string  `envconfig:"ADMIN_TOKEN"`
	JWTRefreshTokenExpiry   int     `envconfig:"JWT_REFRESH_EXPIRY" default:"604800"` // in seconds, default 7 days
	JWTAccessTokenExpiry    int     `envconfig:"JWT_ACCESS_EXPIRY" default:"172800"`  // in seconds, default 2 days
	CustomName              string  `envconfig:"CUSTOM_NAME"`
	Host                    string  `envconfig:"HOST" default:"localhost:3000"`
	Port                    int     `envconfig:"PORT" default:"3000"`
	DefaultRateLimit        int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit         int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit          int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus        bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	WebhookUrl              string  `envconfig:"WEBHOOK_URL"`
	PriorityWebhookMinDelay int     `envconfig:"PRIORITY_WEBHOOK_MIN_DELAY" default:"300"` // in seconds
	PriorityWebhookMaxDelay int     `envconfig:"PRIORITY_WEBHOOK_MAX_DELAY" default:"600"` // in seconds
	AllowAccountCreation    bool    `envconfig:"ALLOW_ACCOUNT_CREATION" default:"true"`
	MinPasswordEntropy      int     `envconfig:"MIN_PASSWORD_ENTROPY" default:"0"`
	MaxTransferAmount       int64   `envconfig:"MAX_TRANSFER_AMOUNT" default:"0"` // in whole dollars, 0 disables the check
	DepositCurrency         string  `envconfig:"DEPOSIT_CURRENCY" default:"USD"`
	EnableInterestRoutine   bool    `envconfig:"ENABLE_INTEREST_ROUTINE" default:"false"`
	EnableMaintenanceFee    bool    `envconfig:"ENABLE_MAINTENANCE_FEE" default:"false"`
	RabbitMQUri             string  `envconfig:"RABBITMQ_URI"`
	RabbitMQLedgerExchange  string  `envconfig:"RABBITMQ_LEDGER_EXCHANGE" default:"ledgerhub_transaction"`
}
