package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion        string `yaml:"region"`
	ProductsTable    string `yaml:"products_table"`
	TaxonomyTable    string `yaml:"taxonomy_table"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint"`

	// Storage
	StorageBackend string `yaml:"storage_backend"`
	TaxonomySeed   string `yaml:"taxonomy_seed"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Behaviour
	RefreshUpdatedAt bool `yaml:"refresh_updated_at"`

	// Feature flags
	EnableMetrics    bool   `yaml:"enable_metrics"`
	EnableTracing    bool   `yaml:"enable_tracing"`
	MetricsNamespace string `yaml:"metrics_namespace"`
}

func defaults() *Config {
	return &Config{
		ServerAddress:  ":8080",
		Environment:    "development",
		AWSRegion:      "ap-south-1",
		ProductsTable:  "Products",
		TaxonomyTable:  "ProductTaxonomyAttributes",
		StorageBackend: StorageDynamoDB,
		LogLevel:       "info",
	}
}

// LoadConfig loads configuration from an optional YAML file named by
// CONFIG_FILE and then from environment variables. Environment wins.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.AWSRegion = getEnv("REGION", getEnv("AWS_REGION", cfg.AWSRegion))
	cfg.ProductsTable = getEnv("PRODUCTS_TABLE", cfg.ProductsTable)
	cfg.TaxonomyTable = getEnv("TAXONOMY_TABLE", cfg.TaxonomyTable)
	cfg.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", cfg.DynamoDBEndpoint)
	cfg.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", cfg.StorageBackend))
	cfg.TaxonomySeed = getEnv("TAXONOMY_SEED", cfg.TaxonomySeed)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.RefreshUpdatedAt = getEnvBool("REFRESH_UPDATED_AT", cfg.RefreshUpdatedAt)
	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableTracing = getEnvBool("ENABLE_TRACING", cfg.EnableTracing)
	cfg.MetricsNamespace = getEnv("METRICS_NAMESPACE", cfg.MetricsNamespace)

	if cfg.MetricsNamespace == "" {
		cfg.MetricsNamespace = "ProductCatalog/" + cfg.Environment
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.ProductsTable == "" {
		return fmt.Errorf("PRODUCTS_TABLE is required")
	}
	if c.TaxonomyTable == "" {
		return fmt.Errorf("TAXONOMY_TABLE is required")
	}
	switch c.StorageBackend {
	case StorageDynamoDB, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

// TaxonomySeedIDs returns the non-empty ids of the TAXONOMY_SEED list
func (c *Config) TaxonomySeedIDs() []string {
	var ids []string
	for _, id := range strings.Split(c.TaxonomySeed, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}
