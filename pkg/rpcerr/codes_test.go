package rpcerr

import (
	"net/http"
	"testing"

	"github.com/Nest-Commerce-Microservices/products-ms/pkg/storeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCodes(t *testing.T) {
	want := map[string]Entry{
		storeerr.CodeDuplicateKey:        {storeerr.CodeDuplicateKey, http.StatusConflict, "Duplicate value"},
		storeerr.CodeForeignKeyViolation: {storeerr.CodeForeignKeyViolation, http.StatusBadRequest, "Invalid foreign key"},
		storeerr.CodeValueTooLong:        {storeerr.CodeValueTooLong, http.StatusBadRequest, "Value too long for a field"},
		storeerr.CodeRecordNotFound:      {storeerr.CodeRecordNotFound, http.StatusNotFound, "{{entity}} with ID {{id}} not found"},
	}

	assert.Equal(t, len(want), DefaultCodes.Len())
	for code, entry := range want {
		got, ok := DefaultCodes.Lookup(code)
		require.True(t, ok, code)
		assert.Equal(t, entry, got)
	}

	_, ok := DefaultCodes.Lookup(storeerr.CodeNotNullViolation)
	assert.False(t, ok)
}

func TestNewCodeMap_RejectsInvalidEntries(t *testing.T) {
	_, err := NewCodeMap(Entry{Code: "X", Status: http.StatusBadRequest})
	assert.ErrorContains(t, err, "empty message template")

	_, err = NewCodeMap(Entry{Code: "X", Status: 42, Template: "x"})
	assert.ErrorContains(t, err, "invalid status")

	_, err = NewCodeMap(Entry{Status: http.StatusBadRequest, Template: "x"})
	assert.ErrorContains(t, err, "code is empty")

	assert.Panics(t, func() {
		MustCodeMap(Entry{Code: "X", Status: 0, Template: "x"})
	})
}

func TestCodeMap_WithDoesNotMutate(t *testing.T) {
	extended, err := DefaultCodes.With(Entry{Code: "NEW", Status: http.StatusTeapot, Template: "tea"})
	require.NoError(t, err)

	assert.Equal(t, DefaultCodes.Len()+1, extended.Len())
	_, ok := DefaultCodes.Lookup("NEW")
	assert.False(t, ok)

	var nilMap *CodeMap
	_, ok = nilMap.Lookup(storeerr.CodeDuplicateKey)
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind Kind
		code string
	}{
		{"normalized", NotFound("x"), KindNormalized, ""},
		{"mapped", storeerr.NewKnownRequestError(storeerr.CodeValueTooLong, "x", nil), KindMappedStore, storeerr.CodeValueTooLong},
		{"unmapped", storeerr.NewKnownRequestError(storeerr.CodeSerializationFailure, "x", nil), KindUnknown, storeerr.CodeSerializationFailure},
		{"validation", storeerr.NewValidationError("x", nil), KindValidation, ""},
		{"plain", assert.AnError, KindUnknown, ""},
		{"nil", nil, KindUnknown, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify(tc.err, DefaultCodes)
			assert.Equal(t, tc.kind, c.Kind, c.Kind.String())
			assert.Equal(t, tc.code, c.StoreCode)
		})
	}
}
