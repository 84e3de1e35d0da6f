package postgresql

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Constraint names from schema.sql that callers map to domain errors.
const (
	ConstraintOneOpenAttendance    = "attendances_one_open_per_user"
	ConstraintOneOpenVisit         = "outlet_visits_one_open_per_user_outlet"
	ConstraintUsersEmail           = "users_email_key"
	ConstraintUsersPhone           = "users_phone_key"
	ConstraintDivisionAbbreviation = "divisions_abbreviation_key"
)

// IsUniqueViolation reports whether err is a unique violation. When constraint is
// non-empty the violated constraint must match it.
func IsUniqueViolation(err error, constraint string) bool {
	return isPgError(err, codeUniqueViolation, constraint)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return isPgError(err, codeForeignKeyViolation, "")
}

func isPgError(err error, code string, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}
