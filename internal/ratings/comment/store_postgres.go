// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/dberr"
	"github.com/taibuivan/hyoka/pkg/pagination"
)

// # SQL Queries

const (
	queryCommentSelect = `
		SELECT c.id, c.review_id, c.author_id, a.username, c.text, c.pub_date
		FROM ratings.comment c
		JOIN users.account a ON a.id = c.author_id`

	queryListComments = queryCommentSelect + `
		WHERE c.review_id = $1
		ORDER BY c.pub_date
		LIMIT $2 OFFSET $3`

	queryCountComments = `
		SELECT count(*) FROM ratings.comment WHERE review_id = $1`

	queryFindComment = queryCommentSelect + `
		WHERE c.review_id = $1 AND c.id = $2`

	queryInsertComment = `
		INSERT INTO ratings.comment (review_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, pub_date`

	queryUpdateComment = `
		UPDATE ratings.comment SET text = $2 WHERE id = $1`

	queryDeleteComment = `
		DELETE FROM ratings.comment WHERE id = $1`
)

// PostgresRepository implements Repository backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL-backed comment repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByReview returns a page of a review's comments, oldest first.
func (repository *PostgresRepository) ListByReview(ctx context.Context, reviewID int64, params pagination.Params) ([]*Comment, int, error) {
	var total int
	if err := repository.db.QueryRow(ctx, queryCountComments, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count comments")
	}

	rows, err := repository.db.Query(ctx, queryListComments, reviewID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, params.Limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list comments")
	}
	return comments, total, nil
}

// FindByID retrieves a comment scoped to its review.
func (repository *PostgresRepository) FindByID(ctx context.Context, reviewID, commentID int64) (*Comment, error) {
	row := repository.db.QueryRow(ctx, queryFindComment, reviewID, commentID)
	comment, err := scanComment(row)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, err
	}
	return comment, nil
}

// Create persists a new comment.
func (repository *PostgresRepository) Create(ctx context.Context, comment *Comment) error {
	err := repository.db.QueryRow(ctx, queryInsertComment,
		comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.ID, &comment.PubDate)
	if err != nil {
		return dberr.Wrap(err, "create comment")
	}
	return nil
}

// Update persists changes to a comment's text.
func (repository *PostgresRepository) Update(ctx context.Context, comment *Comment) error {
	if _, err := repository.db.Exec(ctx, queryUpdateComment, comment.ID, comment.Text); err != nil {
		return dberr.Wrap(err, "update comment")
	}
	return nil
}

// Delete removes a comment, reporting NotFound when no row matches.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := repository.db.Exec(ctx, queryDeleteComment, id)
	if err != nil {
		return dberr.Wrap(err, "delete comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func scanComment(row pgx.Row) (*Comment, error) {
	var comment Comment
	err := row.Scan(
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan comment")
	}
	return &comment, nil
}
