// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/dberr"
	"github.com/taibuivan/hyoka/pkg/pagination"
	"github.com/taibuivan/hyoka/pkg/slice"
)

// # SQL Queries

// Titles are always read through this join: category comes along for the
// ride and rating is the live mean of review scores (null when unreviewed).
const queryTitleSelect = `
	SELECT t.id, t.name, t.year, t.description,
	       avg_r.rating,
	       c.name, c.slug
	FROM catalog.title t
	LEFT JOIN catalog.category c ON c.id = t.category_id
	LEFT JOIN LATERAL (
		SELECT avg(r.score)::float8 AS rating
		FROM ratings.review r
		WHERE r.title_id = t.id
	) avg_r ON true`

const queryTitleGenres = `
	SELECT tg.title_id, g.name, g.slug
	FROM catalog.title_genre tg
	JOIN catalog.genre g ON g.id = tg.genre_id
	WHERE tg.title_id = ANY($1)
	ORDER BY g.name`

const queryTitleExists = `
	SELECT EXISTS (SELECT 1 FROM catalog.title WHERE id = $1)`

// # Repository Implementation

// PostgresRepository implements Repository backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL-backed title repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List returns a page of titles matching the filter, newest first, plus the
total count under the same filter.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, params pagination.Params) ([]*Title, int, error) {
	where, args := buildFilter(filter)

	countQuery := fmt.Sprintf(`
		SELECT count(*)
		FROM catalog.title t
		LEFT JOIN catalog.category c ON c.id = t.category_id
		%s`, where)
	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count titles")
	}

	listQuery := fmt.Sprintf(`%s
		%s
		ORDER BY t.year DESC, t.name
		LIMIT $%d OFFSET $%d`,
		queryTitleSelect, where, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset)

	rows, err := repository.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0, params.Limit)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, err
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list titles")
	}

	if err := repository.attachGenres(ctx, titles); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

// FindByID retrieves a single hydrated title.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Title, error) {
	row := repository.db.QueryRow(ctx, queryTitleSelect+` WHERE t.id = $1`, id)
	title, err := scanTitle(row)
	if err != nil {
		return nil, err
	}
	if err := repository.attachGenres(ctx, []*Title{title}); err != nil {
		return nil, err
	}
	return title, nil
}

// ExistsByID reports whether a title exists.
func (repository *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := repository.db.QueryRow(ctx, queryTitleExists, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check title")
	}
	return exists, nil
}

/*
Create inserts the title row and its genre links in one transaction,
resolving category and genre slugs along the way. The returned title is
fully hydrated; its rating is necessarily null.
*/
func (repository *PostgresRepository) Create(ctx context.Context, title *Title, categorySlug string, genreSlugs []string) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin create title")
	}
	defer tx.Rollback(ctx)

	categoryID, categoryRef, err := resolveCategory(ctx, tx, categorySlug)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO catalog.title (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		title.Name, title.Year, title.Description, categoryID,
	).Scan(&title.ID)
	if err != nil {
		return dberr.Wrap(err, "create title")
	}

	genreRefs, err := linkGenres(ctx, tx, title.ID, genreSlugs)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit create title")
	}

	title.Category = categoryRef
	title.Genres = genreRefs
	return nil
}

/*
Update rewrites the title row and, when requested, its associations.
A nil categorySlug/genreSlugs leaves the association as it was.
*/
func (repository *PostgresRepository) Update(ctx context.Context, title *Title, categorySlug *string, genreSlugs []string) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin update title")
	}
	defer tx.Rollback(ctx)

	if categorySlug != nil {
		categoryID, categoryRef, err := resolveCategory(ctx, tx, *categorySlug)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE catalog.title SET category_id = $2 WHERE id = $1`,
			title.ID, categoryID); err != nil {
			return dberr.Wrap(err, "update title category")
		}
		title.Category = categoryRef
	}

	if _, err := tx.Exec(ctx, `
		UPDATE catalog.title
		SET name = $2, year = $3, description = $4
		WHERE id = $1`,
		title.ID, title.Name, title.Year, title.Description); err != nil {
		return dberr.Wrap(err, "update title")
	}

	if genreSlugs != nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM catalog.title_genre WHERE title_id = $1`, title.ID); err != nil {
			return dberr.Wrap(err, "clear title genres")
		}
		genreRefs, err := linkGenres(ctx, tx, title.ID, genreSlugs)
		if err != nil {
			return err
		}
		title.Genres = genreRefs
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit update title")
	}
	return nil
}

// DeleteByID removes a title; reviews and genre links go with it.
func (repository *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM catalog.title WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}

// # Internals

func scanTitle(row pgx.Row) (*Title, error) {
	var (
		title        Title
		categoryName *string
		categorySlug *string
	)
	err := row.Scan(
		&title.ID, &title.Name, &title.Year, &title.Description,
		&title.Rating,
		&categoryName, &categorySlug,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan title")
	}
	if categoryName != nil && categorySlug != nil {
		title.Category = &CategoryRef{Name: *categoryName, Slug: *categorySlug}
	}
	return &title, nil
}

// attachGenres loads the genre refs for a batch of titles in one round trip.
func (repository *PostgresRepository) attachGenres(ctx context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := slice.Map(titles, func(title *Title) int64 { return title.ID })
	byID := make(map[int64]*Title, len(titles))
	for _, title := range titles {
		byID[title.ID] = title
		title.Genres = []GenreRef{}
	}

	rows, err := repository.db.Query(ctx, queryTitleGenres, ids)
	if err != nil {
		return dberr.Wrap(err, "load title genres")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			titleID int64
			ref     GenreRef
		)
		if err := rows.Scan(&titleID, &ref.Name, &ref.Slug); err != nil {
			return dberr.Wrap(err, "scan title genre")
		}
		byID[titleID].Genres = append(byID[titleID].Genres, ref)
	}
	return dberr.Wrap(rows.Err(), "load title genres")
}

// resolveCategory maps a category slug to its ID and ref. An empty slug
// means "no category" and yields nils.
func resolveCategory(ctx context.Context, tx pgx.Tx, slug string) (*int64, *CategoryRef, error) {
	if slug == "" {
		return nil, nil, nil
	}

	var (
		id  int64
		ref CategoryRef
	)
	err := tx.QueryRow(ctx,
		`SELECT id, name, slug FROM catalog.category WHERE slug = $1`, slug,
	).Scan(&id, &ref.Name, &ref.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperr.ValidationError("Unknown category", apperr.FieldError{
				Field: FieldCategory, Message: fmt.Sprintf("Category %q does not exist", slug),
			})
		}
		return nil, nil, dberr.Wrap(err, "resolve category")
	}
	return &id, &ref, nil
}

// linkGenres resolves genre slugs and writes the join rows. Every slug must
// resolve; unknown ones become a single validation error naming them all.
func linkGenres(ctx context.Context, tx pgx.Tx, titleID int64, slugs []string) ([]GenreRef, error) {
	refs := []GenreRef{}
	if len(slugs) == 0 {
		return refs, nil
	}

	rows, err := tx.Query(ctx,
		`SELECT id, name, slug FROM catalog.genre WHERE slug = ANY($1) ORDER BY name`, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "resolve genres")
	}
	defer rows.Close()

	ids := make([]int64, 0, len(slugs))
	found := make(map[string]bool, len(slugs))
	for rows.Next() {
		var (
			id  int64
			ref GenreRef
		)
		if err := rows.Scan(&id, &ref.Name, &ref.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan genre")
		}
		ids = append(ids, id)
		refs = append(refs, ref)
		found[ref.Slug] = true
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "resolve genres")
	}
	rows.Close()

	missing := slice.Filter(slugs, func(slug string) bool { return !found[slug] })
	if len(missing) > 0 {
		return nil, apperr.ValidationError("Unknown genre", apperr.FieldError{
			Field: FieldGenre, Message: fmt.Sprintf("Genres do not exist: %s", strings.Join(missing, ", ")),
		})
	}

	for _, genreID := range ids {
		if _, err := tx.Exec(ctx,
			`INSERT INTO catalog.title_genre (title_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			titleID, genreID); err != nil {
			return nil, dberr.Wrap(err, "link genre")
		}
	}
	return refs, nil
}

// buildFilter renders the WHERE clause for List. Placeholders start at $1;
// the caller appends its own after these.
func buildFilter(filter Filter) (string, []any) {
	conditions := []string{}
	args := []any{}

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if len(filter.GenreSlugs) > 0 {
		args = append(args, filter.GenreSlugs)
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM catalog.title_genre tg
			JOIN catalog.genre g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = ANY($%d))`, len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("t.year = $%d", len(args)))
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		conditions = append(conditions, fmt.Sprintf("t.name ILIKE '%%' || $%d || '%%'", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
