// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

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

// NewPostgresRepository creates the PostgreSQL-backed category repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns a page of categories ordered by name.
func (repository *PostgresRepository) List(ctx context.Context, search string, params pagination.Params) ([]*Category, int, error) {
	t := schema.Category

	countQuery := fmt.Sprintf(
		`SELECT count(*) FROM %s WHERE ($1 = '' OR %s ILIKE '%%' || $1 || '%%')`,
		t.Table, t.Name,
	)
	var total int
	if err := repository.db.QueryRow(ctx, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count categories")
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
		return nil, 0, dberr.Wrap(err, "list categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0, params.Limit)
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan category")
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list categories")
	}
	return categories, total, nil
}

// FindBySlug retrieves a single category by its slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	t := schema.Category
	query := fmt.Sprintf(
		`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		t.ID, t.Name, t.Slug, t.Table, t.Slug,
	)

	var category Category
	err := repository.db.QueryRow(ctx, query, slug).Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "find category")
	}
	return &category, nil
}

// Create persists a new category; duplicate names or slugs are conflicts.
func (repository *PostgresRepository) Create(ctx context.Context, category *Category) error {
	t := schema.Category
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		t.Table, t.Name, t.Slug, t.ID,
	)

	err := repository.db.QueryRow(ctx, query, category.Name, category.Slug).Scan(&category.ID)
	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return apperr.Conflict("Category already exists")
		}
		return dberr.Wrap(err, "create category")
	}
	return nil
}

// DeleteBySlug removes a category, reporting NotFound when no row matches.
func (repository *PostgresRepository) DeleteBySlug(ctx context.Context, slug string) error {
	t := schema.Category
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.Slug)

	tag, err := repository.db.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}
