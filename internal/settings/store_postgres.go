// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/dexview/internal/platform/database/schema"
	"github.com/taibuivan/dexview/internal/platform/dberr"
)

// PostgresRepository implements Repository on the settings.visitorsetting table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Get retrieves one setting row.

Parameters:
  - context: context.Context
  - visitorID: string
  - key: string

Returns:
  - string: Stored value
  - error: ErrNotFound or database errors
*/
func (repository *PostgresRepository) Get(context context.Context, visitorID, key string) (string, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		schema.VisitorSetting.Value,
		schema.VisitorSetting.Table,
		schema.VisitorSetting.VisitorID,
		schema.VisitorSetting.Key,
	)

	var value string
	err := repository.pool.QueryRow(context, query, visitorID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", dberr.Wrap(err, "get_visitor_setting")
	}

	return value, nil
}

/*
Set upserts one setting row.

Parameters:
  - context: context.Context
  - visitorID: string
  - key: string
  - value: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Set(context context.Context, visitorID, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = NOW()`,
		schema.VisitorSetting.Table,
		schema.VisitorSetting.VisitorID,
		schema.VisitorSetting.Key,
		schema.VisitorSetting.Value,
		schema.VisitorSetting.UpdatedAt,
		schema.VisitorSetting.VisitorID,
		schema.VisitorSetting.Key,
		schema.VisitorSetting.Value,
		schema.VisitorSetting.Value,
		schema.VisitorSetting.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query, visitorID, key, value)
	return dberr.Wrap(err, "set_visitor_setting")
}
