package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

func (s *Store) CreateUser(ctx context.Context, u *scheduling.User) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, specialization)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING created_at, updated_at
	`, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.Specialization).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return scheduling.ErrDuplicateEmail
	}
	return err
}

const userColumns = `id, name, email, password_hash, role, COALESCE(specialization, ''), created_at, updated_at`

func (s *Store) UserByEmail(ctx context.Context, email string) (*scheduling.User, error) {
	return s.scanUser(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE lower(email) = lower($1)`, userColumns), email)
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*scheduling.User, error) {
	return s.scanUser(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns), id)
}

func (s *Store) scanUser(ctx context.Context, query string, arg any) (*scheduling.User, error) {
	var u scheduling.User
	var role string
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Specialization,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if notFound(err) {
		return nil, scheduling.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = scheduling.Role(role)
	return &u, nil
}
