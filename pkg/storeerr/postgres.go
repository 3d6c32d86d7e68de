package storeerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgNotNullViolation     = "23502"
	pgCheckViolation       = "23514"
	pgStringDataRightTrunc = "22001"
	pgSerializationFailure = "40001"
	pgUndefinedColumn      = "42703"
	pgSyntaxError          = "42601"
	pgDataExceptionClass   = "22"
)

var knownPgCodes = map[string]string{
	pgUniqueViolation:      CodeDuplicateKey,
	pgForeignKeyViolation:  CodeForeignKeyViolation,
	pgStringDataRightTrunc: CodeValueTooLong,
	pgNotNullViolation:     CodeNotNullViolation,
	pgCheckViolation:       CodeCheckViolation,
	pgSerializationFailure: CodeSerializationFailure,
}

// FromPg converts a pgx error into a KnownRequestError or ValidationError.
// Errors it does not recognise are returned untouched.
func FromPg(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return NewKnownRequestError(CodeRecordNotFound, "record not found", err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if code, ok := knownPgCodes[pgErr.Code]; ok {
		known := NewKnownRequestError(code, pgErr.Message, err)
		if pgErr.TableName != "" {
			known = known.WithMeta("table", pgErr.TableName)
		}
		if pgErr.ColumnName != "" {
			known = known.WithMeta("column", pgErr.ColumnName)
		}
		if pgErr.ConstraintName != "" {
			known = known.WithMeta("constraint", pgErr.ConstraintName)
		}

		return known
	}

	if strings.HasPrefix(pgErr.Code, pgDataExceptionClass) ||
		pgErr.Code == pgUndefinedColumn ||
		pgErr.Code == pgSyntaxError {
		return NewValidationError(fmt.Sprintf("%s (SQLSTATE %s)", pgErr.Message, pgErr.Code), err)
	}

	return err
}

// FromValidation turns struct validation failures into a ValidationError
// listing every failed field.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError(err.Error(), err)
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}

	return NewValidationError("invalid arguments: "+strings.Join(parts, "; "), err)
}
