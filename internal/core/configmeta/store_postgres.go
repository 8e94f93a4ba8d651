// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package configmeta

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/learnpath/internal/platform/apperr"
	"github.com/taibuivan/learnpath/internal/platform/database/schema"
	"github.com/taibuivan/learnpath/internal/platform/dberr"
)

// PostgresRepository keeps settings in core.configmeta.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var cm = schema.CoreConfigMeta

var configColumns = fmt.Sprintf("%s, %s, %s, %s", cm.Key, cm.Value, cm.UpdatedAt, cm.UpdatedBy)

// Get returns one stored setting.
func (repository *PostgresRepository) Get(context context.Context, key Key) (*ConfigMeta, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, configColumns, cm.Table, cm.Key)

	meta := &ConfigMeta{}
	err := repository.db.QueryRow(context, query, key).
		Scan(&meta.Key, &meta.Value, &meta.UpdatedAt, &meta.UpdatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("Config key '%s'", key)).WithField("key")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_configmeta")
	}
	return meta, nil
}

// List returns every stored setting ordered by key.
func (repository *PostgresRepository) List(context context.Context) ([]*ConfigMeta, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`, configColumns, cm.Table, cm.Key)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_configmeta")
	}
	defer rows.Close()

	var metas []*ConfigMeta
	for rows.Next() {
		meta := &ConfigMeta{}
		if err := rows.Scan(&meta.Key, &meta.Value, &meta.UpdatedAt, &meta.UpdatedBy); err != nil {
			return nil, dberr.Wrap(err, "scan_configmeta")
		}
		metas = append(metas, meta)
	}
	return metas, dberr.Wrap(rows.Err(), "iterate_configmeta")
}

// Save upserts the setting keyed by meta.Key.
func (repository *PostgresRepository) Save(context context.Context, meta *ConfigMeta) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		cm.Table, configColumns,
		cm.Key,
		cm.Value, cm.Value,
		cm.UpdatedAt, cm.UpdatedAt,
		cm.UpdatedBy, cm.UpdatedBy,
	)

	_, err := repository.db.Exec(context, query, meta.Key, meta.Value, meta.UpdatedAt, meta.UpdatedBy)
	return dberr.Wrap(err, "save_configmeta")
}
