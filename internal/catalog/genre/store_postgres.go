// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/database/schema"
	"github.com/taibuivan/hyoka/internal/platform/dberr"
	"github.com/taibuivan/hyoka/pkg/pagination"
)

// PostgresRepository implements Repository backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL-backed genre repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns a page of genres ordered by name.
func (repository *PostgresRepository) List(ctx context.Context, search string, params pagination.Params) ([]*Genre, int, error) {
	t := schema.Genre

	countQuery := fmt.Sprintf(
		`SELECT count(*) FROM %s WHERE ($1 = '' OR %s ILIKE '%%' || $1 || '%%')`,
		t.Table, t.Name,
	)
	var total int
	if err := repository.db.QueryRow(ctx, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count genres")
	}

	listQuery := fmt.Sprintf(
		`SELECT %s, %s, %s FROM %s
		 WHERE ($1 = '' OR %s ILIKE '%%' || $1 || '%%')
		 ORDER BY %s
		 LIMIT $2 OFFSET $3`,
		t.ID, t.Name, t.Slug, t.Table, t.Name, t.Name,
	)
	rows, err := repository.db.Query(ctx, listQuery, search, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0, params.Limit)
	for rows.Next() {
		var genre Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan genre")
		}
		genres = append(genres, &genre)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list genres")
	}
	return genres, total, nil
}

// FindBySlug retrieves a single genre by its slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Genre, error) {
	t := schema.Genre
	query := fmt.Sprintf(
		`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		t.ID, t.Name, t.Slug, t.Table, t.Slug,
	)

	var genre Genre
	err := repository.db.QueryRow(ctx, query, slug).Scan(&genre.ID, &genre.Name, &genre.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "find genre")
	}
	return &genre, nil
}

// Create persists a new genre; duplicate names or slugs are conflicts.
func (repository *PostgresRepository) Create(ctx context.Context, genre *Genre) error {
	t := schema.Genre
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		t.Table, t.Name, t.Slug, t.ID,
	)

	err := repository.db.QueryRow(ctx, query, genre.Name, genre.Slug).Scan(&genre.ID)
	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return apperr.Conflict("Genre already exists")
		}
		return dberr.Wrap(err, "create genre")
	}
	return nil
}

// DeleteBySlug removes a genre, reporting NotFound when no row matches.
func (repository *PostgresRepository) DeleteBySlug(ctx context.Context, slug string) error {
	t := schema.Genre
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.Slug)

	tag, err := repository.db.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete genre")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}
	return nil
}
