package rpcerr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Nest-Commerce-Microservices/products-ms/pkg/storeerr"
)

type Entry struct {
	Code     string
	Status   int
	Template string
}

// CodeMap is an immutable lookup from store error code to Entry.
type CodeMap struct {
	entries map[string]Entry
}

var DefaultCodes = MustCodeMap(
	Entry{Code: storeerr.CodeDuplicateKey, Status: http.StatusConflict, Template: "Duplicate value"},
	Entry{Code: storeerr.CodeForeignKeyViolation, Status: http.StatusBadRequest, Template: "Invalid foreign key"},
	Entry{Code: storeerr.CodeValueTooLong, Status: http.StatusBadRequest, Template: "Value too long for a field"},
	Entry{Code: storeerr.CodeRecordNotFound, Status: http.StatusNotFound, Template: "{{entity}} with ID {{id}} not found"},
)

func NewCodeMap(entries ...Entry) (*CodeMap, error) {
	m := &CodeMap{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		m.entries[e.Code] = e
	}

	return m, nil
}

func MustCodeMap(entries ...Entry) *CodeMap {
	m, err := NewCodeMap(entries...)
	if err != nil {
		panic(err)
	}
	return m
}

func validateEntry(e Entry) error {
	if e.Code == "" {
		return errors.New("rpcerr: entry code is empty")
	}
	if e.Template == "" {
		return fmt.Errorf("rpcerr: entry %s has an empty message template", e.Code)
	}
	if e.Status < 100 || e.Status > 599 {
		return fmt.Errorf("rpcerr: entry %s has invalid status %d", e.Code, e.Status)
	}
	return nil
}

func (m *CodeMap) Lookup(code string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	e, ok := m.entries[code]
	return e, ok
}

// With returns a new CodeMap holding m's entries plus the given ones.
// Later entries override earlier ones with the same code.
func (m *CodeMap) With(entries ...Entry) (*CodeMap, error) {
	all := make([]Entry, 0, m.Len()+len(entries))
	if m != nil {
		for _, e := range m.entries {
			all = append(all, e)
		}
	}
	all = append(all, entries...)

	return NewCodeMap(all...)
}

func (m *CodeMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}
