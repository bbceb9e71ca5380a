// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/database/schema"
	"github.com/taibuivan/hyoka/internal/platform/dberr"
	"github.com/taibuivan/hyoka/pkg/pagination"
)

// # SQL Queries

// Reviews are read joined to their author's account for the username.
const (
	queryReviewSelect = `
		SELECT r.id, r.title_id, r.author_id, a.username, r.text, r.score, r.pub_date
		FROM ratings.review r
		JOIN users.account a ON a.id = r.author_id`

	queryListReviews = queryReviewSelect + `
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC
		LIMIT $2 OFFSET $3`

	queryCountReviews = `
		SELECT count(*) FROM ratings.review WHERE title_id = $1`

	queryFindReview = queryReviewSelect + `
		WHERE r.title_id = $1 AND r.id = $2`

	queryInsertReview = `
		INSERT INTO ratings.review (title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date`

	queryUpdateReview = `
		UPDATE ratings.review
		SET text = $2, score = $3
		WHERE id = $1`

	queryDeleteReview = `
		DELETE FROM ratings.review WHERE id = $1`

	queryReviewExists = `
		SELECT EXISTS (SELECT 1 FROM ratings.review WHERE id = $1)`
)

// PostgresRepository implements Repository backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL-backed review repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByTitle returns a page of a title's reviews, newest first.
func (repository *PostgresRepository) ListByTitle(ctx context.Context, titleID int64, params pagination.Params) ([]*Review, int, error) {
	var total int
	if err := repository.db.QueryRow(ctx, queryCountReviews, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count reviews")
	}

	rows, err := repository.db.Query(ctx, queryListReviews, titleID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0, params.Limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list reviews")
	}
	return reviews, total, nil
}

// FindByID retrieves a review scoped to its title.
func (repository *PostgresRepository) FindByID(ctx context.Context, titleID, reviewID int64) (*Review, error) {
	row := repository.db.QueryRow(ctx, queryFindReview, titleID, reviewID)
	review, err := scanReview(row)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Review")
		}
		return nil, err
	}
	return review, nil
}

// ExistsByID reports whether a review exists.
func (repository *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := repository.db.QueryRow(ctx, queryReviewExists, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check review")
	}
	return exists, nil
}

/*
Create persists a new review. The unique (title, author) constraint decides
duplicates, so two concurrent first reviews cannot both land.
*/
func (repository *PostgresRepository) Create(ctx context.Context, review *Review) error {
	err := repository.db.QueryRow(ctx, queryInsertReview,
		review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.ID, &review.PubDate)
	if err != nil {
		if dberr.IsUniqueViolation(err, schema.Review.UniqueAuthorTitle) {
			return apperr.Conflict("You have already reviewed this title")
		}
		return dberr.Wrap(err, "create review")
	}
	return nil
}

// Update persists changes to a review's text and score.
func (repository *PostgresRepository) Update(ctx context.Context, review *Review) error {
	if _, err := repository.db.Exec(ctx, queryUpdateReview,
		review.ID, review.Text, review.Score); err != nil {
		return dberr.Wrap(err, "update review")
	}
	return nil
}

// Delete removes a review; its comments go with it.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := repository.db.Exec(ctx, queryDeleteReview, id)
	if err != nil {
		return dberr.Wrap(err, "delete review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func scanReview(row pgx.Row) (*Review, error) {
	var review Review
	err := row.Scan(
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan review")
	}
	return &review, nil
}
