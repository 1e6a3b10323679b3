package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStoreErr(t *testing.T) {
	assert.NoError(t, storeErr(nil, "booking"))

	err := storeErr(pgx.ErrNoRows, "booking")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "not found: booking not found")

	wrapped := fmt.Errorf("scan: %w", pgx.ErrNoRows)
	assert.ErrorIs(t, storeErr(wrapped, "chat"), domain.ErrNotFound)

	dup := &pgconn.PgError{Code: uniqueViolation, Message: "duplicate key"}
	assert.ErrorIs(t, storeErr(dup, "user"), domain.ErrConflict)

	down := errors.New("connection refused")
	err = storeErr(down, "listing")
	assert.ErrorIs(t, err, domain.ErrTransientStore)
	assert.ErrorIs(t, err, down)
}
