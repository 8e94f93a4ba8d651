// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/platform/apperr"
	"github.com/taibuivan/learnpath/internal/platform/database/schema"
	"github.com/taibuivan/learnpath/internal/platform/dberr"
	"github.com/taibuivan/learnpath/internal/platform/postgres"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] using pgx.
//
// Language-tagged fields, the copyright and the message are JSONB columns.
// Steps live in their own table and are synchronised inside the path transaction.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed learning path store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

var (
	lp = schema.CoreLearningPath
	ls = schema.CoreLearningStep
	lr = schema.CoreLearningPathRevision

	pathColumns = strings.Join(lp.Columns(), ", ")
	stepColumns = strings.Join(ls.Columns(), ", ")
)

// # Reads

/*
FindByID loads the aggregate for id.

Returns:
  - *LearningPath: The path with steps ordered by seqNo
  - error: NOT_FOUND or database errors
*/
func (repository *postgresRepository) FindByID(context context.Context, id int64) (*LearningPath, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, pathColumns, lp.Table, lp.ID)

	path, err := scanPath(repository.pool.QueryRow(context, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Learning path").WithEntity(id)
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_learningpath")
	}

	steps, err := repository.findSteps(context, repository.pool, id)
	if err != nil {
		return nil, err
	}
	path.LearningSteps = steps

	return path, nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (repository *postgresRepository) findSteps(context context.Context, db querier, pathID int64) ([]LearningStep, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		stepColumns, ls.Table, ls.LearningPathID, ls.SeqNo)

	rows, err := db.Query(context, query, pathID)
	if err != nil {
		return nil, dberr.Wrap(err, "find_learningsteps")
	}
	defer rows.Close()

	steps := make([]LearningStep, 0, 8)
	for rows.Next() {
		var step LearningStep
		var owner int64
		if err := rows.Scan(
			&step.ID, &owner, &step.Revision, &step.SeqNo, &step.Titles, &step.Descriptions,
			&step.EmbedURLs, &step.ShowTitle, &step.Type, &step.License, &step.Status,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_learningstep")
		}
		steps = append(steps, step)
	}

	return steps, dberr.Wrap(rows.Err(), "iterate_learningsteps")
}

/*
Search lists published paths matching filter.

Description: Uses COUNT(*) OVER() to return the total alongside the page. Titles and
tags are matched through jsonb_array_elements so no extra index table is needed.

Returns:
  - []*LearningPath: Paths without steps
  - int: Total number of matches
  - error: Database errors
*/
func (repository *postgresRepository) Search(context context.Context, filter SearchFilter) ([]*LearningPath, int, error) {
	var queryBuilder strings.Builder
	args := []any{StatusPublished}
	argID := 2

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s p WHERE p.%s = $1`,
		pathColumns, lp.Table, lp.Status))

	// Free-text query on titles and tags
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND (
			EXISTS (SELECT 1 FROM jsonb_array_elements(p.%s) t WHERE t->>'title' ILIKE $%d)
			OR EXISTS (SELECT 1 FROM jsonb_array_elements(p.%s) tg, jsonb_array_elements_text(tg->'tags') x WHERE x ILIKE $%d)
		)`, lp.Titles, argID, lp.Tags, argID))
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		argID++
	}

	// Language filtering
	if filter.Language != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND $%d = ANY(p.%s)`, argID, lp.SupportedLanguages))
		args = append(args, filter.Language)
		argID++
	}

	// Exact tag filtering
	if filter.Tag != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			` AND EXISTS (SELECT 1 FROM jsonb_array_elements(p.%s) tg, jsonb_array_elements_text(tg->'tags') x WHERE lower(x) = lower($%d))`,
			lp.Tags, argID))
		args = append(args, filter.Tag)
		argID++
	}

	// Id filtering
	if len(filter.IDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(` AND p.%s = ANY($%d)`, lp.ID, argID))
		args = append(args, filter.IDs)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY " + sortClause(filter.Sort))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, filter.Limit, filter.Offset)

	return repository.listPaths(context, queryBuilder.String(), args...)
}

// ListByOwner lists the paths owned by ownerID, newest first.
func (repository *postgresRepository) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*LearningPath, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2 OFFSET $3`,
		pathColumns, lp.Table, lp.OwnerID, lp.LastUpdated)

	return repository.listPaths(context, query, ownerID, limit, offset)
}

func (repository *postgresRepository) listPaths(context context.Context, query string, args ...any) ([]*LearningPath, int, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_learningpaths")
	}
	defer rows.Close()

	total := 0
	paths := make([]*LearningPath, 0, 16)
	for rows.Next() {
		path := &LearningPath{}
		if err := rows.Scan(append(pathTargets(path), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_learningpath")
		}
		paths = append(paths, path)
	}

	return paths, total, dberr.Wrap(rows.Err(), "iterate_learningpaths")
}

/*
ListTags returns every tag of published paths grouped by language.

Description: Tags are unnested in SQL and de-duplicated per language by slug.
*/
func (repository *postgresRepository) ListTags(context context.Context) ([]language.Tags, error) {
	query := fmt.Sprintf(`
		SELECT tg->>'language', x
		FROM %s p, jsonb_array_elements(p.%s) tg, jsonb_array_elements_text(tg->'tags') x
		WHERE p.%s = $1
		ORDER BY 1, 2`,
		lp.Table, lp.Tags, lp.Status)

	rows, err := repository.pool.Query(context, query, StatusPublished)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	grouped := make(map[string][]string)
	order := make([]string, 0, 4)
	for rows.Next() {
		var lang, tag string
		if err := rows.Scan(&lang, &tag); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		if _, ok := grouped[lang]; !ok {
			order = append(order, lang)
		}
		grouped[lang] = append(grouped[lang], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_tags")
	}

	result := make([]language.Tags, 0, len(order))
	for _, lang := range order {
		result = append(result, language.Tags{Tags: language.DedupeTags(grouped[lang]), Language: lang})
	}
	return result, nil
}

// # Writes

/*
Create persists a new aggregate and its first revision snapshot.

Description: Runs in one transaction. The database assigns the path id, the step ids
and lastUpdated; they are written back into path.
*/
func (repository *postgresRepository) Create(context context.Context, path *LearningPath) error {
	return postgres.WithTx(context, repository.pool, "create_learningpath", func(transaction pgx.Tx) error {
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING %s, %s`,
			lp.Table,
			lp.Revision, lp.IsBasedOn, lp.Titles, lp.Descriptions, lp.Introductions, lp.Tags,
			lp.CoverPhotoURL, lp.Duration, lp.Status, lp.VerificationStatus, lp.Copyright,
			lp.SupportedLanguages, lp.OwnerID, lp.Message,
			lp.ID, lp.LastUpdated,
		)

		err := transaction.QueryRow(context, query,
			path.Revision, path.IsBasedOn, nonNil(path.Titles), nonNil(path.Descriptions), nonNil(path.Introductions), nonNil(path.Tags),
			path.CoverPhotoURL, path.Duration, path.Status, path.VerificationStatus, path.Copyright,
			path.SupportedLanguages, path.OwnerID, path.Message,
		).Scan(&path.ID, &path.LastUpdated)
		if err != nil {
			return dberr.Wrap(err, "create_learningpath")
		}

		for i := range path.LearningSteps {
			if err := insertStep(context, transaction, path.ID, &path.LearningSteps[i]); err != nil {
				return err
			}
		}

		return insertRevision(context, transaction, path)
	})
}

/*
Update replaces the stored aggregate when its revision still equals priorRevision.

Description: The conditional UPDATE serialises writers per id. When it matches no row
the current revision is read back to tell NOT_FOUND from STALE_REVISION. Steps that
disappeared are deleted, the rest are updated or inserted; the seqNo uniqueness
constraint is deferred so siblings can swap positions.
*/
func (repository *postgresRepository) Update(context context.Context, path *LearningPath, priorRevision int) error {
	return postgres.WithTx(context, repository.pool, "update_learningpath", func(transaction pgx.Tx) error {
		query := fmt.Sprintf(`
			UPDATE %s SET
				%s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9,
				%s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = $15, %s = now()
			WHERE %s = $1 AND %s = $2
			RETURNING %s`,
			lp.Table,
			lp.Revision, lp.IsBasedOn, lp.Titles, lp.Descriptions, lp.Introductions, lp.Tags, lp.CoverPhotoURL,
			lp.Duration, lp.Status, lp.VerificationStatus, lp.Copyright, lp.SupportedLanguages, lp.Message, lp.LastUpdated,
			lp.ID, lp.Revision,
			lp.LastUpdated,
		)

		err := transaction.QueryRow(context, query,
			path.ID, priorRevision,
			path.Revision, path.IsBasedOn, nonNil(path.Titles), nonNil(path.Descriptions), nonNil(path.Introductions), nonNil(path.Tags), path.CoverPhotoURL,
			path.Duration, path.Status, path.VerificationStatus, path.Copyright, path.SupportedLanguages, path.Message,
		).Scan(&path.LastUpdated)
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.revisionConflict(context, path.ID, path.Revision)
		}
		if err != nil {
			return dberr.Wrap(err, "update_learningpath")
		}

		// Remove steps that are no longer part of the aggregate
		kept := make([]int64, 0, len(path.LearningSteps))
		for _, step := range path.LearningSteps {
			if step.ID != 0 {
				kept = append(kept, step.ID)
			}
		}
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND NOT (%s = ANY($2))`, ls.Table, ls.LearningPathID, ls.ID)
		if _, err := transaction.Exec(context, deleteQuery, path.ID, kept); err != nil {
			return dberr.Wrap(err, "delete_learningsteps")
		}

		for i := range path.LearningSteps {
			step := &path.LearningSteps[i]
			if step.ID == 0 {
				err = insertStep(context, transaction, path.ID, step)
			} else {
				err = updateStep(context, transaction, path.ID, step)
			}
			if err != nil {
				return err
			}
		}

		return insertRevision(context, transaction, path)
	})
}

// Delete removes the path row. Steps and revision snapshots cascade.
func (repository *postgresRepository) Delete(context context.Context, id int64, priorRevision int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, lp.Table, lp.ID, lp.Revision)

	tag, err := repository.pool.Exec(context, query, id, priorRevision)
	if err != nil {
		return dberr.Wrap(err, "delete_learningpath")
	}
	if tag.RowsAffected() == 0 {
		return repository.revisionConflict(context, id, priorRevision+1)
	}
	return nil
}

// # Helpers

// revisionConflict explains why a conditional write matched no row.
func (repository *postgresRepository) revisionConflict(context context.Context, id int64, submitted int) error {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, lp.Revision, lp.Table, lp.ID)

	var current int
	err := repository.pool.QueryRow(context, query, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Learning path").WithEntity(id)
	}
	if err != nil {
		return dberr.Wrap(err, "read_learningpath_revision")
	}

	return apperr.StaleRevision(submitted, current+1).WithEntity(id)
}

func insertStep(context context.Context, transaction pgx.Tx, pathID int64, step *LearningStep) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`,
		ls.Table,
		ls.LearningPathID, ls.Revision, ls.SeqNo, ls.Titles, ls.Descriptions, ls.EmbedURLs,
		ls.ShowTitle, ls.Type, ls.License, ls.Status,
		ls.ID,
	)

	err := transaction.QueryRow(context, query,
		pathID, step.Revision, step.SeqNo, nonNil(step.Titles), nonNil(step.Descriptions), nonNil(step.EmbedURLs),
		step.ShowTitle, step.Type, step.License, step.Status,
	).Scan(&step.ID)
	return dberr.Wrap(err, "insert_learningstep")
}

func updateStep(context context.Context, transaction pgx.Tx, pathID int64, step *LearningStep) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = $11
		WHERE %s = $1 AND %s = $2`,
		ls.Table,
		ls.Revision, ls.SeqNo, ls.Titles, ls.Descriptions, ls.EmbedURLs, ls.ShowTitle, ls.Type, ls.License, ls.Status,
		ls.ID, ls.LearningPathID,
	)

	tag, err := transaction.Exec(context, query,
		step.ID, pathID,
		step.Revision, step.SeqNo, nonNil(step.Titles), nonNil(step.Descriptions), nonNil(step.EmbedURLs),
		step.ShowTitle, step.Type, step.License, step.Status,
	)
	if err != nil {
		return dberr.Wrap(err, "update_learningstep")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Learning step").WithEntity(step.ID)
	}
	return nil
}

// insertRevision stores the full aggregate as the snapshot of its revision.
func insertRevision(context context.Context, transaction pgx.Tx, path *LearningPath) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		lr.Table, lr.LearningPathID, lr.Revision, lr.Document)

	_, err := transaction.Exec(context, query, path.ID, path.Revision, path)
	return dberr.Wrap(err, "insert_learningpath_revision")
}

func pathTargets(path *LearningPath) []any {
	return []any{
		&path.ID, &path.Revision, &path.IsBasedOn, &path.Titles, &path.Descriptions, &path.Introductions,
		&path.Tags, &path.CoverPhotoURL, &path.Duration, &path.Status, &path.VerificationStatus,
		&path.Copyright, &path.SupportedLanguages, &path.OwnerID, &path.Message, &path.LastUpdated,
	}
}

func scanPath(row pgx.Row) (*LearningPath, error) {
	path := &LearningPath{}
	if err := row.Scan(pathTargets(path)...); err != nil {
		return nil, err
	}
	return path, nil
}

func sortClause(order SortOrder) string {
	switch order {
	case SortLastUpdatedAsc:
		return lp.LastUpdated + " ASC, " + lp.ID + " ASC"
	case SortIDAsc:
		return lp.ID + " ASC"
	case SortIDDesc:
		return lp.ID + " DESC"
	case SortDurationAsc:
		return lp.Duration + " ASC NULLS LAST, " + lp.ID + " ASC"
	case SortDurationDesc:
		return lp.Duration + " DESC NULLS LAST, " + lp.ID + " ASC"
	default:
		return lp.LastUpdated + " DESC, " + lp.ID + " DESC"
	}
}

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(input string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(input)
}

// nonNil keeps NOT NULL JSONB columns at '[]' rather than 'null'.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
