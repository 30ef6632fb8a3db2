package catalog

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore keeps the catalog in a SQLite file through GORM.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database at path and migrates
// the games table.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// One writer at a time; also keeps ":memory:" databases on a single connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Product{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate games: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
}

func (s *SQLiteStore) Seed(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return ErrEmptySeed
	}

	rows := make([]Product, len(products))
	for i, p := range products {
		p.ID = 0
		rows[i] = p
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Product{}).Error; err != nil {
			return fmt.Errorf("clear games: %w", err)
		}
		// Restart ids at 1 when the table uses AUTOINCREMENT; a missing
		// sqlite_sequence table just means there is nothing to reset.
		_ = tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", Product{}.TableName()).Error

		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return fmt.Errorf("insert %q: %w", rows[i].Title, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Search(ctx context.Context, term string) ([]Product, error) {
	out := make([]Product, 0, 16)

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	})
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	return filterByTitle(out, term), nil
}

func (s *SQLiteStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
