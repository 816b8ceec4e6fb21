package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	MySQL     MySQLConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Geo       GeoConfig
	S3        S3Config
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name     string `env:"APP_NAME" env-default:"gamecatalog"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Port            string        `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	SwaggerHost     string        `env:"SWAGGER_HOST" env-default:""`
	CORSOrigins     []string      `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
	// TrustedProxies lists the CIDRs whose X-Forwarded-For is believed. Empty
	// means the peer address is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" env-separator:","`
}

type MySQLConfig struct {
	DSN string `env:"MYSQL_DSN" env-default:"user:password@tcp(localhost:3306)/catalog?charset=utf8mb4&parseTime=True&loc=UTC"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// AuthConfig drives token signing and the session cookie.
type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	CookieName   string        `env:"SESSION_COOKIE" env-default:"token"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" env-default:"false"`
	BcryptCost   int           `env:"BCRYPT_COST" env-default:"10"`
	LoginHistory int           `env:"LOGIN_HISTORY_SIZE" env-default:"5"`
}

// GeoConfig holds the suspicious-login distance threshold.
type GeoConfig struct {
	SuspiciousDistanceKm float64 `env:"SUSPICIOUS_LOGIN_KM" env-default:"500"`
}

type S3Config struct {
	Endpoint      string        `env:"S3_ENDPOINT" env-default:"http://127.0.0.1:9000/"`
	Region        string        `env:"S3_REGION" env-default:"us-east-1"`
	Bucket        string        `env:"S3_BUCKET" env-default:"pictures"`
	AccessKey     string        `env:"S3_ACCESS_KEY" env-default:"admin"`
	SecretKey     string        `env:"S3_SECRET_KEY" env-default:"secretpassword"`
	PublicBaseURL string        `env:"S3_PUBLIC_BASE_URL" env-default:"http://127.0.0.1:9000/pictures"`
	PresignTTL    time.Duration `env:"S3_PRESIGN_TTL" env-default:"15m"`
}

// RateLimitConfig limits register/login attempts per client IP.
type RateLimitConfig struct {
	AuthRequests int           `env:"AUTH_RATE_LIMIT" env-default:"20"`
	AuthWindow   time.Duration `env:"AUTH_RATE_WINDOW" env-default:"1m"`
}

// minSecretLen is the shortest accepted HMAC signing secret.
const minSecretLen = 16

var placeholderSecrets = map[string]bool{
	"change-me": true,
	"changeme":  true,
	"secret":    true,
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if placeholderSecrets[strings.ToLower(c.Auth.JWTSecret)] {
		return fmt.Errorf("JWT_SECRET must not be a placeholder")
	}
	if len(c.Auth.JWTSecret) < minSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLen)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.Auth.LoginHistory < 1 {
		return fmt.Errorf("LOGIN_HISTORY_SIZE must be at least 1")
	}
	for _, cidr := range c.HTTP.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
	}
	if c.Geo.SuspiciousDistanceKm <= 0 {
		return fmt.Errorf("SUSPICIOUS_LOGIN_KM must be positive")
	}
	return nil
}
