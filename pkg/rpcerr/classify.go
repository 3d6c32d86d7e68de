package rpcerr

import (
	"errors"

	"github.com/Nest-Commerce-Microservices/products-ms/pkg/storeerr"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNormalized
	KindMappedStore
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNormalized:
		return "normalized"
	case KindMappedStore:
		return "mapped_store"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Classification is the result of matching an error against the known shapes.
// Only the fields relevant to Kind are set; StoreCode is also filled for
// unknown errors that carry an unmapped store code.
type Classification struct {
	Kind       Kind
	Normalized *Error
	Entry      Entry
	StoreCode  string
	Validation *storeerr.ValidationError
}

// Classify matches err in order: normalized, mapped store error, validation
// error, unknown.
func Classify(err error, codes *CodeMap) Classification {
	if rpcErr, ok := As(err); ok {
		return Classification{Kind: KindNormalized, Normalized: rpcErr}
	}

	var known *storeerr.KnownRequestError
	if errors.As(err, &known) {
		if entry, ok := codes.Lookup(known.Code); ok {
			return Classification{Kind: KindMappedStore, Entry: entry, StoreCode: known.Code}
		}
		return Classification{Kind: KindUnknown, StoreCode: known.Code}
	}

	var verr *storeerr.ValidationError
	if errors.As(err, &verr) {
		return Classification{Kind: KindValidation, Validation: verr}
	}

	return Classification{Kind: KindUnknown}
}
