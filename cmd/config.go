package cmd

import (
	"errors"
	"os"
	"strings"
	"time"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	EngineLocal    = "local"
	EngineTemporal = "temporal"
)

type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost      string `env:"DB_HOST"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBSslMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	OrdersTable string `env:"ORDERS_TABLE" envDefault:"orders"`

	WorkflowEngine         string        `env:"WORKFLOW_ENGINE" envDefault:"local"`
	WorkflowMaxConcurrency int64         `env:"WORKFLOW_MAX_CONCURRENCY" envDefault:"64"`
	ChargeMaxRetries       int           `env:"CHARGE_MAX_RETRIES" envDefault:"3"`
	ChargeRetryInterval    time.Duration `env:"CHARGE_RETRY_INTERVAL" envDefault:"5s"`
	TemporalHost           string        `env:"TEMPORAL_HOST" envDefault:"localhost:7233"`
	TemporalNamespace      string        `env:"TEMPORAL_NAMESPACE" envDefault:"default"`
	TemporalTaskQueue      string        `env:"TEMPORAL_TASK_QUEUE" envDefault:"order-fulfillment"`

	KafkaHost               string `env:"KAFKA_HOST"`
	KafkaNotificationsTopic string `env:"KAFKA_NOTIFICATIONS_TOPIC" envDefault:"order-notifications"`
	KafkaConsumerGroup      string `env:"KAFKA_CONSUMER_GROUP" envDefault:"orders-notifier"`

	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`
	AuthJWTIssuer string `env:"AUTH_JWT_ISSUER"`

	PaymentDeclineAbove decimal.Decimal `env:"PAYMENT_DECLINE_ABOVE" envDefault:"0"`
	PaymentFailureRate  float64         `env:"PAYMENT_FAILURE_RATE" envDefault:"0"`

	ReconcileSchedule   string        `env:"RECONCILE_SCHEDULE"`
	ReconcileStaleAfter time.Duration `env:"RECONCILE_STALE_AFTER" envDefault:"5m"`

	OtelExporterURL string `env:"OTEL_EXPORTER_URL"`
	AppEnv          string `env:"APP_ENV" envDefault:"development"`
	AppServiceName  string `env:"APP_SERVICE_NAME" envDefault:"orders"`
}

// LoadConfig reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set in the environment win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errs.NewValueIsInvalidErrorWithCause(".env", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("environment", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every missing or out-of-range setting at once.
func (c Config) Validate() error {
	var problems []error

	required := []struct{ key, value string }{
		{"DB_HOST", c.DBHost},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"KAFKA_HOST", c.KafkaHost},
		{"AUTH_JWT_SECRET", c.AuthJWTSecret},
	}
	for _, r := range required {
		if r.value == "" {
			problems = append(problems, errs.NewValueIsRequiredError(r.key))
		}
	}

	if err := orderrepo.ValidateTableName(c.OrdersTable); err != nil {
		problems = append(problems, err)
	}

	switch c.WorkflowEngine {
	case EngineLocal:
		if c.WorkflowMaxConcurrency < 1 {
			problems = append(problems, errs.NewValueIsOutOfRangeError("WORKFLOW_MAX_CONCURRENCY", c.WorkflowMaxConcurrency, 1, "unbounded"))
		}
	case EngineTemporal:
		if c.TemporalHost == "" {
			problems = append(problems, errs.NewValueIsRequiredError("TEMPORAL_HOST"))
		}
		if c.TemporalTaskQueue == "" {
			problems = append(problems, errs.NewValueIsRequiredError("TEMPORAL_TASK_QUEUE"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidError("WORKFLOW_ENGINE"))
	}

	if err := c.ChargeRetryPolicy().Validate(); err != nil {
		problems = append(problems, err)
	}

	if c.PaymentDeclineAbove.IsNegative() {
		problems = append(problems, errs.NewValueIsOutOfRangeError("PAYMENT_DECLINE_ABOVE", c.PaymentDeclineAbove, 0, "unbounded"))
	}
	if c.PaymentFailureRate < 0 || c.PaymentFailureRate > 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("PAYMENT_FAILURE_RATE", c.PaymentFailureRate, 0, 1))
	}

	if c.ReconcileSchedule != "" && c.ReconcileStaleAfter <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("RECONCILE_STALE_AFTER", c.ReconcileStaleAfter, "1s", "unbounded"))
	}

	return errors.Join(problems...)
}

// ChargeRetryPolicy is the payment retry budget configured for the workflow engines.
func (c Config) ChargeRetryPolicy() fulfillment.RetryPolicy {
	return fulfillment.RetryPolicy{MaxRetries: c.ChargeMaxRetries, Interval: c.ChargeRetryInterval}
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
