package kv

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yarotec/storefront/pkg/db"
)

// Entry is the row backing GormStore. The table is created by the goose
// migrations in pkg/migrate.
type Entry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:255"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Entry) TableName() string { return "kv_entries" }

// GormStore keeps documents in a sqlite or postgres table.
type GormStore struct {
	client *db.Client
}

func NewGormStore(client *db.Client) *GormStore {
	return &GormStore{client: client}
}

func (g *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := g.client.DB().WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

func (g *GormStore) Put(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: string(value)}
	return g.client.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (g *GormStore) Delete(ctx context.Context, key string) error {
	return g.client.DB().WithContext(ctx).Where("entry_key = ?", key).Delete(&Entry{}).Error
}

func (g *GormStore) Ping(ctx context.Context) error {
	return g.client.Ping(ctx)
}
