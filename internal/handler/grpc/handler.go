// Package grpc exposes the authority's gRPC surface. The only service
// registered today is the standard health service, which deployment
// orchestrators probe to decide whether the instance may receive traffic.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/service"
)

// serviceName is the health-check service label reported alongside the
// default empty-string service.
const serviceName = "storysync"

type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	healthServer := health.NewServer()
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Handler{
		services: services,
		health:   healthServer,
		logger:   logger,
	}
}

// Register attaches the handler's services to a gRPC server.
func (h *Handler) Register(server *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(server, h.health)
}

// MarkNotServing flips the health status so load balancers drain the
// instance before shutdown completes.
func (h *Handler) MarkNotServing() {
	h.health.Shutdown()
}
