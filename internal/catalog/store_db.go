package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	seedTimeout  = 10 * time.Second
)

const createGamesTable = `
	CREATE TABLE IF NOT EXISTS games (
		id               BIGSERIAL PRIMARY KEY,
		title            TEXT NOT NULL,
		platform         TEXT NOT NULL DEFAULT '',
		region           TEXT NOT NULL DEFAULT '',
		price            NUMERIC(10,2) NOT NULL DEFAULT 0,
		original_price   NUMERIC(10,2) NOT NULL DEFAULT 0,
		discount_percent INTEGER NOT NULL DEFAULT 0,
		cashback         NUMERIC(10,2) NOT NULL DEFAULT 0,
		likes            BIGINT NOT NULL DEFAULT 0,
		image_url        TEXT NOT NULL DEFAULT ''
	)`

const selectGames = `
	SELECT id, title, platform, region, price, original_price,
	       discount_percent, cashback, likes, image_url
	FROM games`

type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and makes sure the games table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := pool.Exec(ctx, createGamesTable)
		return err
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create games table: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.pool.Ping(ctx)
	})
}

func (s *PostgresStore) Seed(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return ErrEmptySeed
	}

	return withTimeout(ctx, seedTimeout, func(ctx context.Context) error {
		return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, `TRUNCATE games RESTART IDENTITY`); err != nil {
				return fmt.Errorf("truncate games: %w", err)
			}

			batch := &pgx.Batch{}
			for _, p := range products {
				batch.Queue(`
					INSERT INTO games (title, platform, region, price, original_price,
					                   discount_percent, cashback, likes, image_url)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				`, p.Title, p.Platform, p.Region, p.Price, p.OriginalPrice,
					p.DiscountPercent, p.Cashback, p.Likes, p.ImageURL)
			}
			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("insert games: %w", err)
			}
			return nil
		})
	})
}

func (s *PostgresStore) Search(ctx context.Context, term string) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.pool.Query(ctx, selectGames+` ORDER BY id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := rows.Scan(&p.ID, &p.Title, &p.Platform, &p.Region, &p.Price, &p.OriginalPrice,
				&p.DiscountPercent, &p.Cashback, &p.Likes, &p.ImageURL); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	return filterByTitle(out, term), nil
}

func (s *PostgresStore) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
