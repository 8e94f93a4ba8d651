// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

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

// PostgresRepository reads the language catalogue from core.language.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var languageColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
	schema.CoreLanguage.ID,
	schema.CoreLanguage.Code,
	schema.CoreLanguage.Name,
	schema.CoreLanguage.NativeName,
	schema.CoreLanguage.CreatedAt,
)

// ListLanguages returns the whole catalogue ordered by code.
func (repository *PostgresRepository) ListLanguages(context context.Context) ([]*Language, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		languageColumns,
		schema.CoreLanguage.Table,
		schema.CoreLanguage.Code,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_languages")
	}
	defer rows.Close()

	langs := make([]*Language, 0, 16)
	for rows.Next() {
		lang := &Language{}
		if err := rows.Scan(&lang.ID, &lang.Code, &lang.Name, &lang.NativeName, &lang.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_language")
		}
		langs = append(langs, lang)
	}

	return langs, dberr.Wrap(rows.Err(), "iterate_languages")
}

// GetLanguageByCode returns one catalogue entry, matched case-insensitively.
func (repository *PostgresRepository) GetLanguageByCode(context context.Context, code string) (*Language, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`,
		languageColumns,
		schema.CoreLanguage.Table,
		schema.CoreLanguage.Code,
	)

	lang := &Language{}
	err := repository.db.QueryRow(context, query, code).
		Scan(&lang.ID, &lang.Code, &lang.Name, &lang.NativeName, &lang.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Language")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_language")
	}

	return lang, nil
}
