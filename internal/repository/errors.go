package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// storeErr translates a pgx error into the domain taxonomy. what names the
// entity for the message, e.g. "booking".
func storeErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s not found", domain.ErrNotFound, what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s already exists", domain.ErrConflict, what)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrTransientStore, what, err)
}
