// Package metrics builds the Prometheus registry the service exposes on
// /metrics.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry returns a registry holding runtime, process and gRPC server
// metrics. The gRPC series are only populated for servers that chain
// grpc_prometheus.UnaryServerInterceptor and call grpc_prometheus.Register.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	grpc_prometheus.EnableHandlingTimeHistogram()

	reg.MustRegister(grpc_prometheus.DefaultServerMetrics)

	return reg
}

func Handler(reg *prometheus.Registry) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry: reg,
	}))
}
