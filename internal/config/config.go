// Package config loads the service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the complete service configuration.
type Config struct {
	// Environment is development or production.
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL" env-default:"" yaml:"logLevel"`

	HTTP struct {
		Addr              string        `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout bounds the handling of a single request.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		MaxHeaderBytes int           `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		MetricsPath    string        `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`

		// RateLimit applies to the check and score endpoints, per client IP.
		RateLimit struct {
			Disabled bool          `env:"HTTP_RATE_LIMIT_DISABLED" env-default:"false" yaml:"disabled"`
			Requests int           `env:"HTTP_RATE_LIMIT_REQUESTS" env-default:"60" yaml:"requests"`
			Window   time.Duration `env:"HTTP_RATE_LIMIT_WINDOW" env-default:"1m" yaml:"window"`
		} `yaml:"rateLimit"`
	} `yaml:"http"`

	// Artifacts locates the fitted model, encoders and scaler. Empty file
	// paths default to the standard file names inside Dir.
	Artifacts struct {
		Dir      string `env:"ARTIFACTS_DIR" env-default:"artifacts" yaml:"dir"`
		Model    string `env:"ARTIFACTS_MODEL" env-default:"" yaml:"model"`
		Encoders string `env:"ARTIFACTS_ENCODERS" env-default:"" yaml:"encoders"`
		Scaler   string `env:"ARTIFACTS_SCALER" env-default:"" yaml:"scaler"`
	} `yaml:"artifacts"`

	Checker struct {
		// Threshold is the default approval probability filter of batch previews.
		Threshold float64 `env:"CHECKER_THRESHOLD" env-default:"0.5" yaml:"threshold"`
		// PreviewLimit is the default number of batch rows shown in a preview.
		PreviewLimit int `env:"CHECKER_PREVIEW_LIMIT" env-default:"10" yaml:"previewLimit"`
		// MaxUploadBytes caps the size of a batch upload.
		MaxUploadBytes int64 `env:"CHECKER_MAX_UPLOAD_BYTES" env-default:"10485760" yaml:"maxUploadBytes"`
	} `yaml:"checker"`

	Cache struct {
		Enabled  bool          `env:"CACHE_ENABLED" env-default:"false" yaml:"enabled"`
		Addr     string        `env:"CACHE_ADDR" env-default:"localhost:6379" yaml:"addr"`
		Password string        `env:"CACHE_PASSWORD" env-default:"" yaml:"password"`
		DB       int           `env:"CACHE_DB" env-default:"0" yaml:"db"`
		TTL      time.Duration `env:"CACHE_TTL" env-default:"1h" yaml:"ttl"`
	} `yaml:"cache"`

	Database struct {
		// Enabled selects postgres feedback storage; otherwise feedback is kept in memory.
		Enabled            bool          `env:"DATABASE_ENABLED" env-default:"false" yaml:"enabled"`
		Username           string        `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		Password           string        `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		Host               string        `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		Port               int           `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		SslMode            string        `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		DatabaseName       string        `env:"DATABASE_NAME" env-default:"loanchecker" yaml:"name"`
		MaxOpenConnections int           `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		MaxIdleConnections int           `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		ConnMaxLifetime    time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		ConnMaxIdleTime    time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// JWT keys are PEM encoded RSA keys. The public key verifies bearer tokens
	// for the feedback listing, the private key is only needed by the jwt command.
	JWT struct {
		PublicKey  string `env:"JWT_PUBLIC_KEY" env-default:"" yaml:"publicKey"`
		PrivateKey string `env:"JWT_PRIVATE_KEY" env-default:"" yaml:"privateKey"`
	} `yaml:"jwt"`

	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads the YAML config file at configPath, then applies environment
// overrides. An empty path reads the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config

	var err error
	if configPath == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that defaults cannot guarantee.
func (c *Config) Validate() error {
	switch {
	case c.Checker.Threshold < 0 || c.Checker.Threshold > 1:
		return fmt.Errorf("checker threshold %v outside [0, 1]", c.Checker.Threshold)
	case c.Checker.PreviewLimit < 0:
		return fmt.Errorf("checker preview limit %d is negative", c.Checker.PreviewLimit)
	case c.Checker.MaxUploadBytes <= 0:
		return fmt.Errorf("checker max upload bytes must be positive")
	case !c.HTTP.RateLimit.Disabled && (c.HTTP.RateLimit.Requests <= 0 || c.HTTP.RateLimit.Window <= 0):
		return fmt.Errorf("rate limit needs positive requests and window")
	}

	return nil
}
