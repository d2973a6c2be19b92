package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/dishly/backend/internal/database"
)

var (
	// ErrNotOwner is returned when a mutation matched a resource but the
	// acting user is not its owner/author; the write affected zero rows.
	ErrNotOwner = errors.New("you do not have permission to perform this action")

	// ErrEmptyContent is returned when a comment has no content after trimming.
	ErrEmptyContent = errors.New("comment content is required")

	// ErrInvalidInput wraps client-side validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// UserMessage converts a storage error into the string shown to users.
// Known Postgres error codes get specific messages; everything else falls
// back to the raw message.
func UserMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "Not found"
	case errors.Is(err, ErrNotOwner):
		return ErrNotOwner.Error()
	case errors.Is(err, ErrEmptyContent):
		return ErrEmptyContent.Error()
	case errors.Is(err, database.ErrAllVariationsFailed):
		return "The requested data is currently unavailable"
	}

	// GORM surfaces pgx errors; the migration tooling uses lib/pq.
	var code string
	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		code = pgxErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	}

	switch code {
	case "23505": // unique constraint violation
		return "This item already exists"
	case "23503": // foreign key constraint violation
		return "Cannot delete this item as it is referenced by other data"
	case "42501": // insufficient privilege
		return "You do not have permission to perform this action"
	}

	return err.Error()
}
