package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// NOTE: This repository assumes the following tables exist:
// - users (email UNIQUE)
// - roles (name UNIQUE)
// - user_roles (user_id, role_id PRIMARY KEY)

func findUserByEmail(ctx context.Context, db *sql.DB, email string) (User, error) {
	const q = `
SELECT id, email, name, password_hash, created_at
FROM users
WHERE email = $1
`
	var u User
	if err := db.QueryRowContext(ctx, q, email).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func findUserByID(ctx context.Context, db *sql.DB, id int64) (User, error) {
	const q = `
SELECT id, email, name, password_hash, created_at
FROM users
WHERE id = $1
`
	var u User
	if err := db.QueryRowContext(ctx, q, id).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func emailExists(ctx context.Context, tx *sql.Tx, email string) (bool, error) {
	const q = `SELECT COUNT(*) FROM users WHERE email = $1`
	var n int64
	if err := tx.QueryRowContext(ctx, q, email).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func insertUser(ctx context.Context, tx *sql.Tx, email, name, passwordHash string, now time.Time) (int64, error) {
	const q = `
INSERT INTO users (email, name, password_hash, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	var id int64
	if err := tx.QueryRowContext(ctx, q, email, name, passwordHash, now).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func countUsers(ctx context.Context, tx *sql.Tx) (int64, error) {
	const q = `SELECT COUNT(*) FROM users`
	var n int64
	if err := tx.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func ensureRole(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	const insert = `
INSERT INTO roles (name) VALUES ($1)
ON CONFLICT (name) DO NOTHING
`
	if _, err := tx.ExecContext(ctx, insert, name); err != nil {
		return 0, err
	}

	const lookup = `SELECT id FROM roles WHERE name = $1`
	var id int64
	if err := tx.QueryRowContext(ctx, lookup, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func assignRole(ctx context.Context, tx *sql.Tx, userID, roleID int64) error {
	const q = `
INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING
`
	_, err := tx.ExecContext(ctx, q, userID, roleID)
	return err
}

func rolesForUser(ctx context.Context, db *sql.DB, userID int64) ([]string, error) {
	const q = `
SELECT r.name
FROM user_roles ur
JOIN roles r ON r.id = ur.role_id
WHERE ur.user_id = $1
`
	rows, err := db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func assignRenter(ctx context.Context, db *sql.DB, userID, apartmentID int64) error {
	// Re-inviting a former renter reactivates the old tenancy row.
	const q = `
INSERT INTO apartment_renters (user_id, apartment_id, is_active)
VALUES ($1, $2, TRUE)
ON CONFLICT (user_id, apartment_id) DO UPDATE SET is_active = TRUE
`
	_, err := db.ExecContext(ctx, q, userID, apartmentID)
	return err
}

func updateUserName(ctx context.Context, db *sql.DB, id int64, name string) error {
	const q = `UPDATE users SET name = $2 WHERE id = $1`
	res, err := db.ExecContext(ctx, q, id, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
