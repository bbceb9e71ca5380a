// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/dberr"
	"github.com/taibuivan/hyoka/internal/platform/database/schema"
	"github.com/taibuivan/hyoka/pkg/pagination"
)

// # SQL Queries

const (
	queryUserColumns = `id, username, email, first_name, last_name, bio, role, is_superuser, is_staff, created_at, updated_at`

	queryFindUserByID = `
		SELECT ` + queryUserColumns + `
		FROM users.account
		WHERE id = $1`

	queryFindUserByUsername = `
		SELECT ` + queryUserColumns + `
		FROM users.account
		WHERE username = $1`

	queryFindUserByEmail = `
		SELECT ` + queryUserColumns + `
		FROM users.account
		WHERE email = $1`

	queryListUsers = `
		SELECT ` + queryUserColumns + `
		FROM users.account
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%')
		ORDER BY username
		LIMIT $2 OFFSET $3`

	queryCountUsers = `
		SELECT count(*)
		FROM users.account
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%')`

	queryInsertUser = `
		INSERT INTO users.account (id, username, email, first_name, last_name, bio, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	queryUpdateUser = `
		UPDATE users.account
		SET email = $2, first_name = $3, last_name = $4, bio = $5, role = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	queryDeleteUserByUsername = `
		DELETE FROM users.account
		WHERE username = $1`
)

// # Repository Implementation

// PostgresUserRepository implements UserRepository backed by PostgreSQL.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository creates the PostgreSQL-backed user repository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

/*
FindByID retrieves a user by primary key.

Returns:
  - (*User, nil): found
  - (nil, error): not found or query failure
*/
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	row := repository.db.QueryRow(ctx, queryFindUserByID, id)
	return scanUser(row)
}

// FindByUsername retrieves a user by their unique username.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	row := repository.db.QueryRow(ctx, queryFindUserByUsername, username)
	return scanUser(row)
}

// FindByEmail retrieves a user by their unique email address.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := repository.db.QueryRow(ctx, queryFindUserByEmail, email)
	return scanUser(row)
}

/*
List returns a page of users ordered by username, plus the total count
matching the same search filter.
*/
func (repository *PostgresUserRepository) List(ctx context.Context, search string, params pagination.Params) ([]*User, int, error) {
	var total int
	if err := repository.db.QueryRow(ctx, queryCountUsers, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count users")
	}

	rows, err := repository.db.Query(ctx, queryListUsers, search, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list users")
	}
	defer rows.Close()

	users := make([]*User, 0, params.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list users")
	}
	return users, total, nil
}

/*
Create persists a new user.

A collision on the username or email unique constraint is translated to a
field-scoped Conflict, so callers can tell the client exactly which
identifier is taken.
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	err := repository.db.QueryRow(ctx, queryInsertUser,
		user.ID, user.Username, user.Email,
		user.FirstName, user.LastName, user.Bio, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return wrapUserConstraint(err, "create user")
	}
	return nil
}

// Update persists changes to an existing user's profile fields and role.
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	err := repository.db.QueryRow(ctx, queryUpdateUser,
		user.ID, user.Email,
		user.FirstName, user.LastName, user.Bio, user.Role,
	).Scan(&user.UpdatedAt)
	if err != nil {
		return wrapUserConstraint(err, "update user")
	}
	return nil
}

// DeleteByUsername removes a user account, reporting NotFound when no
// account matches.
func (repository *PostgresUserRepository) DeleteByUsername(ctx context.Context, username string) error {
	tag, err := repository.db.Exec(ctx, queryDeleteUserByUsername, username)
	if err != nil {
		return dberr.Wrap(err, "delete user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// # Helpers

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email,
		&user.FirstName, &user.LastName, &user.Bio, &user.Role,
		&user.IsSuperuser, &user.IsStaff,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan user")
	}
	return &user, nil
}

// wrapUserConstraint maps the named unique constraints of users.account to
// the conflict messages the API promises.
func wrapUserConstraint(err error, action string) error {
	switch {
	case dberr.IsUniqueViolation(err, schema.UserAccount.UniqueUsername):
		return apperr.Conflict("Username is already taken", apperr.FieldError{
			Field: FieldUsername, Message: "Username is already taken",
		})
	case dberr.IsUniqueViolation(err, schema.UserAccount.UniqueEmail):
		return apperr.Conflict("Email is already registered", apperr.FieldError{
			Field: FieldEmail, Message: "Email is already registered",
		})
	}
	return dberr.Wrap(err, fmt.Sprintf("%s constraint", action))
}
