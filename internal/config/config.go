package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	Session  SessionConfig  `env:",prefix=SESSION_"`
	Line     LineConfig     `env:",prefix=LINE_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Frontend FrontendConfig `env:",prefix=FRONTEND_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type PostgresConfig struct {
	Host          string `env:"HOST,default=localhost"`
	Port          string `env:"PORT,default=5432"`
	User          string `env:"USER,default=village_shop"`
	Password      string `env:"PASSWORD,default=village_shop_password"`
	DBName        string `env:"DB,default=village_shop_db"`
	SSLMode       string `env:"SSLMODE,default=disable"`
	MigrationsDir string `env:"MIGRATIONS_DIR,default=migrations"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

// SessionConfig controls the signed session token carried in the
// auth-token cookie.
type SessionConfig struct {
	Secret      string   `env:"SECRET,required"`
	TokenExpiry Duration `env:"TOKEN_EXPIRY,default=7d"`
	CookieName  string   `env:"COOKIE_NAME,default=auth-token"`
}

// LineConfig holds LINE Login channel credentials. The endpoint URLs
// are overridable so tests can point the client at a stub server.
type LineConfig struct {
	ChannelID     string `env:"CHANNEL_ID"`
	ChannelSecret string `env:"CHANNEL_SECRET"`
	RedirectURL   string `env:"REDIRECT_URL"`
	AuthorizeURL  string `env:"AUTHORIZE_URL,default=https://access.line.me/oauth2/v2.1/authorize"`
	TokenURL      string `env:"TOKEN_URL,default=https://api.line.me/oauth2/v2.1/token"`
	ProfileURL    string `env:"PROFILE_URL,default=https://api.line.me/v2/profile"`
}

type SecurityConfig struct {
	BCryptCost        int      `env:"BCRYPT_COST,default=12"`
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// FrontendConfig is where browser-facing flows (the LINE callback)
// redirect to.
type FrontendConfig struct {
	BaseURL string `env:"BASE_URL,default=http://localhost:3000"`
}

// Configured reports whether LINE login can be used at all.
func (l LineConfig) Configured() bool {
	return l.ChannelID != "" && l.ChannelSecret != "" && l.RedirectURL != ""
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(config.Session.Secret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	return &config, nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
