package storeerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPg_KnownCodes(t *testing.T) {
	cases := []struct {
		sqlState string
		want     string
	}{
		{"23505", CodeDuplicateKey},
		{"23503", CodeForeignKeyViolation},
		{"22001", CodeValueTooLong},
		{"23502", CodeNotNullViolation},
		{"23514", CodeCheckViolation},
		{"40001", CodeSerializationFailure},
	}

	for _, tc := range cases {
		t.Run(tc.sqlState, func(t *testing.T) {
			src := &pgconn.PgError{
				Code:           tc.sqlState,
				Message:        "boom",
				TableName:      "products",
				ConstraintName: "products_name_key",
			}

			err := FromPg(fmt.Errorf("exec: %w", src))

			var known *KnownRequestError
			require.ErrorAs(t, err, &known)
			assert.Equal(t, tc.want, known.Code)
			assert.Equal(t, "products", known.Meta["table"])
			assert.Equal(t, "products_name_key", known.Meta["constraint"])
			assert.ErrorIs(t, err, src)
		})
	}
}

func TestFromPg_NoRows(t *testing.T) {
	err := FromPg(pgx.ErrNoRows)

	var known *KnownRequestError
	require.ErrorAs(t, err, &known)
	assert.Equal(t, CodeRecordNotFound, known.Code)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestFromPg_DataExceptionIsValidation(t *testing.T) {
	err := FromPg(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type bigint"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "invalid input syntax")
	assert.Contains(t, verr.Message, "22P02")
}

func TestFromPg_Passthrough(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, FromPg(plain))

	other := &pgconn.PgError{Code: "53300", Message: "too many connections"}
	assert.Equal(t, error(other), FromPg(other))

	assert.NoError(t, FromPg(nil))
}

func TestFromValidation(t *testing.T) {
	type input struct {
		Name  string `validate:"required"`
		Price int64  `validate:"gt=0"`
	}

	err := FromValidation(validator.New().Struct(input{}))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Name failed on required")
	assert.Contains(t, verr.Message, "Price failed on gt=0")
}
