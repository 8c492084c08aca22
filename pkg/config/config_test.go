package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, "yarotec_cart_v1", cfg.Storage.Namespace)
	assert.Equal(t, RelayDriverLog, cfg.Relay.Driver)
	assert.Equal(t, 10*time.Second, cfg.Catalog.FetchTimeout)
	assert.Equal(t, DefaultPromotionLimit, cfg.Catalog.PromotionLimit)
	assert.Equal(t, "es-CO", cfg.Locale.Tag)
	assert.False(t, cfg.Catalog.IsRemote())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvStorageDriver, "Redis")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvCatalogSource, "https://cdn.example.com/products.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProd())
	assert.Equal(t, StorageDriverRedis, cfg.Storage.Driver)
	assert.True(t, cfg.Catalog.IsRemote())
}

func TestLoad_StorageDriverRequirements(t *testing.T) {
	t.Setenv(EnvStorageDriver, "sqlite")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDBDSN)

	t.Setenv(EnvDBDSN, "file::memory:?cache=shared")
	_, err = Load()
	require.NoError(t, err)

	t.Setenv(EnvStorageDriver, "floppy")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_RelayRequirements(t *testing.T) {
	t.Setenv(EnvRelayDriver, "emailjs")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvEmailJSServiceID)

	t.Setenv(EnvEmailJSServiceID, "service")
	t.Setenv(EnvEmailJSOwnerTemplate, "template")
	t.Setenv(EnvEmailJSPublicKey, "public")
	t.Setenv(EnvRelayOwnerEmail, "owner@example.com")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, RelayDriverEmailJS, cfg.Relay.Driver)
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
