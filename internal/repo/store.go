package repo

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

// Store is the Postgres implementation of scheduling.Store. Row-level reads
// and writes go through the pgx pool; the admin aggregates and listings run
// raw SQL through the GORM handle.
type Store struct {
	pool *pgxpool.Pool
	db   *gorm.DB
}

var _ scheduling.Store = (*Store)(nil)

func New(pool *pgxpool.Pool, db *gorm.DB) *Store {
	return &Store{pool: pool, db: db}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func notFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
