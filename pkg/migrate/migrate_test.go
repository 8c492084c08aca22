package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarotec/storefront/pkg/config"
	"github.com/yarotec/storefront/pkg/db"
)

const kvEntriesVersion int64 = 20251016120000

func openSQLite(t *testing.T, name string) *db.Client {
	t.Helper()
	client, err := db.New(context.Background(), config.StorageDriverSQLite, config.DBConfig{
		DSN: "file:" + name + "?mode=memory&cache=shared",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestAutoRunCreatesKVTable(t *testing.T) {
	ctx := context.Background()
	client := openSQLite(t, "migrate_autorun")

	require.NoError(t, AutoRun(ctx, client, config.StorageDriverSQLite, nil))
	assert.True(t, client.DB().Migrator().HasTable("kv_entries"))

	sqlDB, err := client.DB().DB()
	require.NoError(t, err)
	version, err := Version(sqlDB, config.StorageDriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, kvEntriesVersion, version)

	// Applying again is a no-op.
	require.NoError(t, AutoRun(ctx, client, config.StorageDriverSQLite, nil))
}

func TestRunDownDropsKVTable(t *testing.T) {
	ctx := context.Background()
	client := openSQLite(t, "migrate_down")
	sqlDB, err := client.DB().DB()
	require.NoError(t, err)

	require.NoError(t, Run(ctx, sqlDB, config.StorageDriverSQLite, "up"))
	require.NoError(t, Run(ctx, sqlDB, config.StorageDriverSQLite, "down"))
	assert.False(t, client.DB().Migrator().HasTable("kv_entries"))

	require.NoError(t, MigrateToVersion(ctx, sqlDB, config.StorageDriverSQLite, "20251016120000"))
	assert.True(t, client.DB().Migrator().HasTable("kv_entries"))

	assert.Error(t, MigrateToVersion(ctx, sqlDB, config.StorageDriverSQLite, "yesterday"))
}

func TestDialect(t *testing.T) {
	got, err := Dialect("SQLite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", got)

	got, err = Dialect(config.StorageDriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "postgres", got)

	_, err = Dialect(config.StorageDriverRedis)
	assert.Error(t, err)
	assert.Error(t, Run(context.Background(), nil, config.StorageDriverSQLite, "up"))
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, Validate())

	data, err := migrations.ReadFile(Dir + "/20251016120000_create_kv_entries.sql")
	require.NoError(t, err)
	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS kv_entries",
		"entry_key VARCHAR(255) PRIMARY KEY",
		"DROP TABLE IF EXISTS kv_entries",
	} {
		assert.Contains(t, string(data), sub)
	}
}

func TestValidateFSRejectsBadMigrations(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"bad name": {
			"m/create_table.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		},
		"duplicate version": {
			"m/20250101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
			"m/20250101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		},
		"missing down": {
			"m/20250101000000_a.sql": {Data: []byte("-- +goose Up\n")},
		},
	}
	for name, fsys := range cases {
		assert.Error(t, ValidateFS(fsys, "m"), name)
	}

	ok := fstest.MapFS{"m/20250101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")}, "m/README.md": {}}
	assert.NoError(t, ValidateFS(ok, "m"))
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 11, 2, 8, 30, 0, 0, time.UTC)

	path, err := CreateSQLMigration(dir, "Add Cart Index!", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20251102083000_add_cart_index.sql"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "-- +goose Up"))
	assert.NoError(t, ValidateFS(os.DirFS(dir), "."))

	_, err = CreateSQLMigration(dir, "Add Cart Index!", now)
	assert.Error(t, err)
	_, err = CreateSQLMigration(dir, "!!!", now)
	assert.Error(t, err)
}
