package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"go-bloglist-api/internal/model"
)

// PostgreSQL SQLSTATE codes the stores translate into model error kinds.
const (
	pgUniqueViolation           = "23505"
	pgCheckViolation            = "23514"
	pgInvalidTextRepresentation = "22P02"
)

// classify maps a driver failure onto the store's error kinds. Anything it
// does not recognise is wrapped with the operation name and left unclassified.
func classify(op string, document string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return &model.ConflictError{Field: uniqueField(pgErr.TableName, pgErr.ConstraintName)}
	case pgInvalidTextRepresentation:
		return fmt.Errorf("%s: %w", op, model.ErrMalformedID)
	case pgCheckViolation:
		path := pgErr.ColumnName
		if path == "" {
			path = pgErr.ConstraintName
		}
		return &model.ValidationError{Document: document, Path: path, Message: pgErr.Message}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// uniqueField recovers the column from a "<table>_<column>_key" constraint name.
func uniqueField(table string, constraint string) string {
	field := strings.TrimSuffix(constraint, "_key")
	if table != "" {
		field = strings.TrimPrefix(field, table+"_")
	}
	if field == "" {
		return "value"
	}
	return field
}

// checkID rejects identifiers the store could never have issued.
func checkID(id string) error {
	_, err := canonicalID(id)
	return err
}

// canonicalID returns the lower-case hyphenated form of a uuid so textual
// variants of one identifier resolve to the same document.
func canonicalID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", model.ErrMalformedID
	}
	return parsed.String(), nil
}
