package utils

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

func ExecuteWithBreaker[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})

	if err != nil {
		return *new(T), err
	}

	return res.(T), nil
}

// NewBreaker trips once at least 5 requests in the interval saw a 60% failure
// ratio. Only server-side failures count: a gRPC status that maps to a 4xx is
// the caller's problem, not the remote's.
func NewBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || GRPCStatusToHTTP(err) < http.StatusInternalServerError
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn(
				"Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}
