package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "SERVER_ADDRESS", "ENVIRONMENT", "REGION", "AWS_REGION",
	"PRODUCTS_TABLE", "TAXONOMY_TABLE", "DYNAMODB_ENDPOINT", "STORAGE_BACKEND",
	"TAXONOMY_SEED", "LOG_LEVEL", "REFRESH_UPDATED_AT", "ENABLE_METRICS",
	"ENABLE_TRACING", "METRICS_NAMESPACE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "ap-south-1", cfg.AWSRegion)
	assert.Equal(t, "Products", cfg.ProductsTable)
	assert.Equal(t, "ProductTaxonomyAttributes", cfg.TaxonomyTable)
	assert.Equal(t, StorageDynamoDB, cfg.StorageBackend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "ProductCatalog/development", cfg.MetricsNamespace)
	assert.False(t, cfg.RefreshUpdatedAt)
	assert.False(t, cfg.EnableMetrics)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_RegionFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)

	t.Setenv("REGION", "us-east-2")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "us-east-2", cfg.AWSRegion)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRODUCTS_TABLE", "products-test")
	t.Setenv("STORAGE_BACKEND", "MEMORY")
	t.Setenv("TAXONOMY_SEED", "cat-1, tag-1,,tag-2 ")
	t.Setenv("REFRESH_UPDATED_AT", "true")
	t.Setenv("ENABLE_METRICS", "1")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "products-test", cfg.ProductsTable)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, []string{"cat-1", "tag-1", "tag-2"}, cfg.TaxonomySeedIDs())
	assert.True(t, cfg.RefreshUpdatedAt)
	assert.True(t, cfg.EnableMetrics)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "ProductCatalog/production", cfg.MetricsNamespace)
}

func TestLoadConfig_FileOverlay(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products_table: file-products
taxonomy_table: file-taxonomy
log_level: debug
storage_backend: memory
taxonomy_seed: cat-1
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "file-products", cfg.ProductsTable)
	assert.Equal(t, "file-taxonomy", cfg.TaxonomyTable)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, []string{"cat-1"}, cfg.TaxonomySeedIDs())
	// environment wins over the file
	assert.Equal(t, "warn", cfg.LogLevel)
	// untouched keys keep their defaults
	assert.Equal(t, "ap-south-1", cfg.AWSRegion)
}

func TestLoadConfig_FileErrors(t *testing.T) {
	clearEnv(t)

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products_table: [unclosed"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"memory backend", func(c *Config) { c.StorageBackend = StorageMemory }, false},
		{"empty products table", func(c *Config) { c.ProductsTable = "" }, true},
		{"empty taxonomy table", func(c *Config) { c.TaxonomyTable = "" }, true},
		{"unknown backend", func(c *Config) { c.StorageBackend = "postgres" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_TaxonomySeedIDsEmpty(t *testing.T) {
	cfg := defaults()
	assert.Empty(t, cfg.TaxonomySeedIDs())
}
