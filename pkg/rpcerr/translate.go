package rpcerr

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Nest-Commerce-Microservices/products-ms/pkg/mylogger"
	"go.uber.org/zap"
)

const UnknownContext = "UnknownContext"

type Translator struct {
	codes  *CodeMap
	logger *zap.Logger
}

func NewTranslator(codes *CodeMap, logger *zap.Logger) *Translator {
	if codes == nil {
		codes = DefaultCodes
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Translator{
		codes:  codes,
		logger: logger.Named("rpcerr"),
	}
}

// Translate always returns a non-nil error, normally a *Error. Callers are
// expected to return it as is.
//
// An err that already is (or wraps) a *Error is returned unchanged.
func (t *Translator) Translate(ctx context.Context, err error, label string, vars Vars) error {
	if label == "" {
		label = UnknownContext
	}

	c := Classify(err, t.codes)

	switch c.Kind {
	case KindNormalized:
		return err
	case KindMappedStore:
		return New(c.Entry.Status, Interpolate(c.Entry.Template, vars))
	case KindValidation:
		mylogger.Error(
			ctx,
			t.logger,
			fmt.Sprintf("[%s] ValidationError: %s", label, c.Validation.Message),
			zap.String("context", label),
			zap.Error(err),
		)

		return New(http.StatusBadRequest, "Invalid data in "+label)
	default:
		details := describe(err)
		fields := []zap.Field{zap.String("context", label)}
		if c.StoreCode != "" {
			details = fmt.Sprintf("%s (store code: %s)", details, c.StoreCode)
			fields = append(fields, zap.String("store_code", c.StoreCode))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		mylogger.Error(ctx, t.logger, fmt.Sprintf("[%s] Unexpected error: %s", label, details), fields...)

		return New(http.StatusInternalServerError, "Unexpected error in "+label)
	}
}

func describe(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
