package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// validIdentifier matches plain SQL identifiers (no quoting, no schema prefix)
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type Config struct {
	Database Database `json:"database" mapstructure:"database"`
	Seed     Seed     `json:"seed" mapstructure:"seed"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Name     string `json:"name" mapstructure:"name"`
	User     string `json:"user" mapstructure:"user"`
	Password string `json:"password" mapstructure:"password"`
}

type Seed struct {
	Table       string `json:"table" mapstructure:"table"`
	Total       int    `json:"total" mapstructure:"total"`
	BatchSize   int    `json:"batch_size" mapstructure:"batch_size"`
	Workers     int    `json:"workers" mapstructure:"workers"`
	MaxAttempts int    `json:"max_attempts" mapstructure:"max_attempts"`
	Literal     bool   `json:"literal" mapstructure:"literal"` // render values as SQL literals instead of bind parameters
	Truncate    bool   `json:"truncate" mapstructure:"truncate"`
	RandSeed    int64  `json:"rand_seed" mapstructure:"rand_seed"` // 0 = seeded from the clock
}

// envBindings maps config keys to the environment variables that may set them.
// The first non-empty variable wins.
var envBindings = map[string][]string{
	"database.provider": {"DB_PROVIDER"},
	"database.host":     {"POSTGRES_HOST", "DB_HOST"},
	"database.port":     {"POSTGRES_PORT", "DB_PORT"},
	"database.name":     {"POSTGRES_DB", "DB_NAME"},
	"database.user":     {"POSTGRES_USER", "DB_USER"},
	"database.password": {"POSTGRES_PASSWORD", "DB_PASSWORD"},
	"seed.table":        {"SEED_TABLE"},
	"seed.total":        {"SEED_TOTAL"},
	"seed.batch_size":   {"SEED_BATCH_SIZE"},
	"seed.workers":      {"SEED_WORKERS"},
	"seed.max_attempts": {"SEED_MAX_ATTEMPTS"},
	"seed.literal":      {"SEED_LITERAL"},
	"seed.truncate":     {"SEED_TRUNCATE"},
	"seed.rand_seed":    {"SEED_RAND_SEED"},
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.provider", "postgresql")
	v.SetDefault("database.url_env", "DATABASE_URL")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "")
	v.SetDefault("database.name", "ecommerce_db")
	v.SetDefault("database.user", "admin")
	v.SetDefault("database.password", "admin_password")

	v.SetDefault("seed.table", "customers")
	v.SetDefault("seed.total", 1000000)
	v.SetDefault("seed.batch_size", 10000)
	v.SetDefault("seed.workers", 1)
	v.SetDefault("seed.max_attempts", 100)
	v.SetDefault("seed.literal", true)
	v.SetDefault("seed.truncate", false)
	v.SetDefault("seed.rand_seed", 0)

	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals v into a Config and fills in values that depend on
// other settings.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Database.Provider = strings.ToLower(strings.TrimSpace(cfg.Database.Provider))
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = defaultPort(cfg.Engine())
	}

	return &cfg, nil
}

func defaultPort(engine string) string {
	switch engine {
	case "mysql":
		return "3306"
	case "sqlserver":
		return "1433"
	case "sqlite":
		return ""
	default:
		return "5432"
	}
}

// Engine returns the canonical provider name, or "" if the provider is unknown.
func (c *Config) Engine() string {
	switch c.Database.Provider {
	case "postgresql", "postgres":
		return "postgresql"
	case "mysql":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	case "sqlserver", "mssql":
		return "sqlserver"
	default:
		return ""
	}
}

func (c *Config) Validate() error {
	if c.Engine() == "" {
		supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3", "sqlserver", "mssql"}
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if !validIdentifier.MatchString(c.Seed.Table) {
		return fmt.Errorf("invalid table name: %q", c.Seed.Table)
	}
	if c.Seed.Total <= 0 {
		return fmt.Errorf("total must be positive, got %d", c.Seed.Total)
	}
	if c.Seed.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.Seed.BatchSize)
	}
	if c.Seed.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Seed.Workers)
	}
	if c.Seed.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be positive, got %d", c.Seed.MaxAttempts)
	}

	return nil
}

// GetDatabaseURL returns the connection string. The variable named by
// Database.URLEnv wins; otherwise the DSN is assembled from the discrete parts.
func (c *Config) GetDatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}

	d := c.Database
	switch c.Engine() {
	case "postgresql":
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.User, d.Password),
			Host:   net.JoinHostPort(d.Host, d.Port),
			Path:   "/" + d.Name,
		}
		return u.String(), nil
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, d.Port)
		mc.DBName = d.Name
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	case "sqlite":
		if d.Name == "" {
			return "", fmt.Errorf("database name is required for sqlite")
		}
		if strings.ContainsAny(d.Name, ".:/") {
			return d.Name, nil
		}
		return d.Name + ".db", nil
	case "sqlserver":
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(d.User, d.Password),
			Host:     net.JoinHostPort(d.Host, d.Port),
			RawQuery: url.Values{"database": {d.Name}}.Encode(),
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
}

// Target describes where the run writes, without credentials.
func (c *Config) Target() string {
	if c.Engine() == "sqlite" {
		return fmt.Sprintf("%s (%s)", c.Database.Name, c.Seed.Table)
	}
	return fmt.Sprintf("%s@%s/%s (%s)", c.Database.User, net.JoinHostPort(c.Database.Host, c.Database.Port), c.Database.Name, c.Seed.Table)
}
