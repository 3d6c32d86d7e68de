package grpc

import (
	"context"
	"errors"

	"github.com/Nest-Commerce-Microservices/products-ms/pkg/mylogger"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/rpcerr"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const invalidPayloadMessage = "invalid request payload"

// payloadError marks a request body the codec could not decode.
type payloadError struct {
	err error
}

func (e *payloadError) Error() string {
	return "decode request: " + e.err.Error()
}

func (e *payloadError) Unwrap() error {
	return e.err
}

// ErrorInterceptor is the server-wide error filter: every failure leaves as
// a *rpcerr.Error, whose GRPCStatus carries the code and the HTTP status.
func ErrorInterceptor(translator *rpcerr.Translator, logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var payloadErr *payloadError
		if errors.As(err, &payloadErr) {
			mylogger.Warn(
				ctx,
				logger,
				"rejecting undecodable request",
				zap.String("method", info.FullMethod),
				zap.Error(payloadErr.err),
			)
			return nil, rpcerr.BadRequest(invalidPayloadMessage)
		}

		rpcErr, ok := rpcerr.As(err)
		if !ok {
			rpcErr, _ = rpcerr.As(translator.Translate(ctx, err, info.FullMethod, nil))
		}

		mylogger.Warn(
			ctx,
			logger,
			"rpc failed",
			zap.String("method", info.FullMethod),
			zap.Int("status", rpcErr.Status),
			zap.String("status_code", rpcErr.GRPCStatus().Code().String()),
		)

		return nil, rpcErr
	}
}
