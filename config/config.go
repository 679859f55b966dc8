package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultSeedSymbols is the symbol universe fetched on first start.
var DefaultSeedSymbols = []string{
	"AAPL", "MSFT", "GOOG", "TSLA", "AMZN", "META", "NVDA", "NFLX", "BRK-B", "JPM",
	"UNH", "V", "MA", "PEP", "KO", "DIS", "CSCO", "INTC", "ADBE", "ORCL",
}

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Finnhub  FinnhubConfig  `mapstructure:"finnhub"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"` // development, production

	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"` // sqlite file path or postgres DSN
}

type FinnhubConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	MaxRPM  int           `mapstructure:"max_rpm"`
	Burst   int           `mapstructure:"burst"`
}

type RefreshConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	LogRetention int           `mapstructure:"log_retention"`
	Enabled      bool          `mapstructure:"enabled"`
	SeedSymbols  []string      `mapstructure:"seed_symbols"`
	SeedEvery    time.Duration `mapstructure:"seed_every"`
}

type AuthConfig struct {
	JWTSecret   string   `mapstructure:"jwt_secret"`
	AdminEmails []string `mapstructure:"admin_emails"`
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LoadConfig reads configuration from .env file, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	setDefaults(v)

	// app.port -> APP_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v, "app.port", "app.env", "app.cors_origins")
	bindEnv(v, "database.driver", "database.url")
	bindEnv(v, "finnhub.api_key", "finnhub.base_url", "finnhub.timeout", "finnhub.max_rpm", "finnhub.burst")
	bindEnv(v, "refresh.interval", "refresh.log_retention", "refresh.enabled", "refresh.seed_symbols", "refresh.seed_every")
	bindEnv(v, "auth.jwt_secret", "auth.admin_emails")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.cors_origins", []string{"http://localhost:5173"})

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "data/marketmuse.db")

	v.SetDefault("finnhub.api_key", "")
	v.SetDefault("finnhub.base_url", "https://finnhub.io/api/v1")
	v.SetDefault("finnhub.timeout", 10*time.Second)
	v.SetDefault("finnhub.max_rpm", 60)
	v.SetDefault("finnhub.burst", 1)

	v.SetDefault("refresh.interval", 60*time.Second)
	v.SetDefault("refresh.log_retention", 10)
	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.seed_symbols", DefaultSeedSymbols)
	v.SetDefault("refresh.seed_every", 24*time.Hour)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.admin_emails", []string{})
}

// normalize cleans up list values that arrive as a single comma separated env var
func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.App.CORSOrigins = splitList(c.App.CORSOrigins, func(s string) string { return strings.TrimSuffix(s, "/") })
	c.Refresh.SeedSymbols = splitList(c.Refresh.SeedSymbols, strings.ToUpper)
	c.Auth.AdminEmails = splitList(c.Auth.AdminEmails, strings.ToLower)
}

func splitList(in []string, norm func(string) string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.FieldsFunc(item, func(r rune) bool { return r == ',' || r == ' ' }) {
			out = append(out, norm(part))
		}
	}
	return out
}

// Validate checks the values the refresh loop and database layer depend on
func (c *Config) Validate() error {
	var errs []error
	if c.Refresh.LogRetention < 1 {
		errs = append(errs, fmt.Errorf("refresh.log_retention must be >= 1, got %d", c.Refresh.LogRetention))
	}
	if c.Refresh.Interval <= 0 {
		errs = append(errs, fmt.Errorf("refresh.interval must be positive, got %s", c.Refresh.Interval))
	}
	if c.Refresh.SeedEvery <= 0 {
		errs = append(errs, fmt.Errorf("refresh.seed_every must be positive, got %s", c.Refresh.SeedEvery))
	}
	if c.Finnhub.MaxRPM < 1 {
		errs = append(errs, fmt.Errorf("finnhub.max_rpm must be >= 1, got %d", c.Finnhub.MaxRPM))
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url cannot be empty"))
	}
	return errors.Join(errs...)
}

// InitDB initializes database connection
func InitDB(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.IsProduction() {
		logLevel = logger.Error
	} else {
		logLevel = logger.Warn
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case DriverPostgres:
		log.Info("Connecting to database", zap.String("driver", DriverPostgres), zap.String("host", maskHost(cfg.Database.URL)))
		db, err = gorm.Open(postgres.Open(cfg.Database.URL), gormCfg)
	default:
		log.Info("Connecting to database", zap.String("driver", DriverSQLite), zap.String("path", cfg.Database.URL))
		if dir := filepath.Dir(cfg.Database.URL); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err = OpenSQLite(cfg.Database.URL, gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection with ping
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Info("Database connection verified successfully")
	return db, nil
}

// OpenSQLite opens a sqlite file with a single connection, so writers never
// race each other for the file lock.
func OpenSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	}
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on"), gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// CloseDB releases the underlying connection pool
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// maskHost masks the DSN host for logging, preserving domain structure
func maskHost(dsn string) string {
	host := dsn
	if i := strings.Index(host, "@"); i >= 0 {
		host = host[i+1:]
	}
	if i := strings.IndexAny(host, ":/?"); i >= 0 {
		host = host[:i]
	}
	if len(host) <= 3 {
		return "***"
	}
	if len(host) <= 15 {
		return host[:3] + "***"
	}
	return host[:8] + "***" + host[len(host)-10:]
}

// bindEnv is a helper to bind multiple keys at once
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}
