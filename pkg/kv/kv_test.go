package kv

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yarotec/storefront/pkg/config"
	"github.com/yarotec/storefront/pkg/db"
	"github.com/yarotec/storefront/pkg/migrate"
	"github.com/yarotec/storefront/pkg/redis"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "yarotec_cart_v1:missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "yarotec_cart_v1:s1", []byte(`[{"id":"1","qty":2}]`)))
	got, err := store.Get(ctx, "yarotec_cart_v1:s1")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"1","qty":2}]`, string(got))

	require.NoError(t, store.Put(ctx, "yarotec_cart_v1:s1", []byte(`[]`)))
	got, err = store.Get(ctx, "yarotec_cart_v1:s1")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(got))

	require.NoError(t, store.Delete(ctx, "yarotec_cart_v1:s1"))
	_, err = store.Get(ctx, "yarotec_cart_v1:s1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, "yarotec_cart_v1:never"))
	require.NoError(t, store.Ping(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, store.Put(context.Background(), "k", value))
	value[0] = 'z'
	got, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, store)
}

func TestFileStoreRequiresDir(t *testing.T) {
	_, err := NewFileStore("")
	require.Error(t, err)
}

func TestGormStore(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:kv_test?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, migrate.Run(context.Background(), sqlDB, config.StorageDriverSQLite, "up"))

	exerciseStore(t, NewGormStore(db.NewFromConn(conn)))
}

func TestRedisStore(t *testing.T) {
	store := NewRedisStore(redis.NewWithCmdable(newMockCmdable()))
	exerciseStore(t, store)
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return goredis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *goredis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return goredis.NewIntResult(int64(len(keys)), nil)
}
