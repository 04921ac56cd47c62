package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, timeouts, retry budgets)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Store    StoreConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Payment  PaymentConfig
	Redirect RedirectConfig
	Redis    RedisConfig
	Finalize FinalizeConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER"`
	Password    string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"seatly"`
	SSLMode     string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone    string `envconfig:"DB_TIMEZONE" default:"America/Mexico_City"`
	MaxConns    int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// Driver "memory" keeps every document in process and is meant for local runs and tests.
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
	// SeedFile is an optional JSON catalogue of bars, matches and promotions loaded at start.
	SeedFile string `envconfig:"STORE_SEED_FILE"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:8081,http://localhost:19006"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Mexico_City"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-21600"` // -6*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type PaymentConfig struct {
	VerifyBaseURL    string        `envconfig:"PAYMENT_VERIFY_BASE_URL" default:"https://admin.seatlyapp.com"`
	Timeout          time.Duration `envconfig:"PAYMENT_VERIFY_TIMEOUT" default:"8s"`
	BreakerThreshold int64         `envconfig:"PAYMENT_BREAKER_THRESHOLD" default:"5"`
	RatePerSecond    float64       `envconfig:"PAYMENT_VERIFY_RPS" default:"20"`
	Burst            int           `envconfig:"PAYMENT_VERIFY_BURST" default:"40"`
}

type RedirectConfig struct {
	AppScheme     string `envconfig:"REDIRECT_APP_SCHEME" default:"seatly"`
	PublicBaseURL string `envconfig:"REDIRECT_PUBLIC_BASE_URL" default:"https://seatlyapp.com"`
	InboxBuffer   int64  `envconfig:"REDIRECT_INBOX_BUFFER" default:"64"`
}

type RedisConfig struct {
	Enabled         bool          `envconfig:"REDIS_ENABLED" default:"false"`
	Addr            string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password        string        `envconfig:"REDIS_PASSWORD"`
	DB              int           `envconfig:"REDIS_DB" default:"0"`
	VerificationTTL time.Duration `envconfig:"REDIS_VERIFICATION_TTL" default:"24h"`
	LockExpiry      time.Duration `envconfig:"REDIS_LOCK_EXPIRY" default:"30s"`
}

type FinalizeConfig struct {
	MaxRetries  int           `envconfig:"FINALIZE_MAX_RETRIES" default:"5"`
	BaseBackoff time.Duration `envconfig:"FINALIZE_BASE_BACKOFF" default:"50ms"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "seatly_test",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 4,
		},
		Store: StoreConfig{Driver: "memory"},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{Secret: "test-secret", Duration: "1h"},
		Payment: PaymentConfig{
			VerifyBaseURL:    "http://127.0.0.1:0",
			Timeout:          2 * time.Second,
			BreakerThreshold: 5,
			RatePerSecond:    100,
			Burst:            100,
		},
		Redirect: RedirectConfig{
			AppScheme:     "seatly",
			PublicBaseURL: "https://seatly.test",
			InboxBuffer:   16,
		},
		Finalize: FinalizeConfig{MaxRetries: 5, BaseBackoff: time.Millisecond},
	}
}
