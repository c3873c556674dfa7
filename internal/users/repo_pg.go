package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, name, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO NOTHING`
	res, err := r.DB.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.CreatedAt)
	if err != nil {
		return err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return ErrEmailTaken
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, name, created_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

var _ Repo = (*PGRepo)(nil)
