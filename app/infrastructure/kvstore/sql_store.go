package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
	"menlo.ai/learning-client/app/utils/functional"
)

// KVEntry is the row backing SQLStore.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:512"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// SQLStore is a durable store on a PostgreSQL table.
type SQLStore struct {
	db     *gorm.DB
	prefix string
}

// NewSQLStore opens the DSN in opts.URL and migrates the kv_entry table.
func NewSQLStore(opts Options) (*SQLStore, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("%w: empty postgres dsn", ErrUnavailable)
	}
	db, err := gorm.Open(postgres.Open(opts.URL), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return NewSQLStoreWithDB(db, opts.Prefix)
}

// NewSQLStoreWithDB uses an already opened database.
func NewSQLStoreWithDB(db *gorm.DB, prefix string) (*SQLStore, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate kv_entry: %w", err)
	}
	return &SQLStore{db: db, prefix: prefix}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", s.prefix+key).Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get value: %w", err)
	}
	return entry.Value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value string) error {
	entry := KVEntry{Key: s.prefix + key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", s.prefix+key).Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&KVEntry{}).
		Where("key LIKE ?", s.prefix+"%").
		Order("key").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	// LIKE treats '_' in the prefix as a wildcard
	keys = functional.Filter(keys, func(k string) bool {
		return strings.HasPrefix(k, s.prefix)
	})
	return functional.Map(keys, func(k string) string {
		return strings.TrimPrefix(k, s.prefix)
	}), nil
}

func (s *SQLStore) Len(ctx context.Context) (int, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
