// Package config provides configuration loading for the testgen service.
package config

import "time"

// Default configuration values.
const (
	defaultServiceName     = "testgen"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8075
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBName          = "testgen"
	defaultDBSSLMode       = "disable"
	defaultDBMaxConns      = 25
	defaultDBMaxIdleConns  = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultCatalogCacheTTL = 30 * time.Second
	defaultLogLevel        = "info"
	defaultGenModel        = "claude-sonnet-4-20250514"
	defaultGenMaxTokens    = 8192
)

// Config holds all configuration for the testgen service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Database  DatabaseConfig  `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
	Generator GeneratorConfig `yaml:"generator"`
	Catalog   CatalogConfig   `yaml:"catalog"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"TESTGEN_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"    yaml:"debug"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL" yaml:"level"`
	Development bool   `yaml:"development"`
}

// GeneratorConfig holds code-generation provider configuration.
type GeneratorConfig struct {
	APIKey    string `env:"ANTHROPIC_API_KEY" yaml:"api_key"`
	Model     string `env:"TESTGEN_GEN_MODEL" yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// CatalogConfig holds catalog snapshot cache configuration.
type CatalogConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// SetDefaults applies default values to the config if not set.
func (c *Config) SetDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
	if c.Service.Port == 0 {
		c.Service.Port = defaultServicePort
	}
	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Database == "" {
		c.Database.Database = defaultDBName
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = defaultDBSSLMode
	}
	if c.Database.MaxConnections == 0 {
		c.Database.MaxConnections = defaultDBMaxConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaultDBMaxIdleConns
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = defaultConnMaxLifetime
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Generator.Model == "" {
		c.Generator.Model = defaultGenModel
	}
	if c.Generator.MaxTokens == 0 {
		c.Generator.MaxTokens = defaultGenMaxTokens
	}
	if c.Catalog.CacheTTL == 0 {
		c.Catalog.CacheTTL = defaultCatalogCacheTTL
	}
}
