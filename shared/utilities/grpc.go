package utilities

import (
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// RegisterHealthServer registers the gRPC health check service and returns it
// so callers can flip the serving status.
func RegisterHealthServer(grpcServer *grpc.Server) *health.Server {
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	return healthServer
}

// HealthProbe is a gRPC server that only exposes the health service. It lets
// Consul (or any gRPC health checker) probe an HTTP-only service.
type HealthProbe struct {
	logger   *zerolog.Logger
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
}

// NewHealthProbe listens on addr and registers the health service.
func NewHealthProbe(logger *zerolog.Logger, addr string) (*HealthProbe, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	server := grpc.NewServer()

	return &HealthProbe{
		logger:   logger,
		server:   server,
		health:   RegisterHealthServer(server),
		listener: lis,
	}, nil
}

// Addr returns the address the probe listens on.
func (p *HealthProbe) Addr() net.Addr {
	return p.listener.Addr()
}

// Serve blocks until the probe is stopped.
func (p *HealthProbe) Serve() error {
	p.logger.Info().Str("addr", p.listener.Addr().String()).Msg("gRPC health probe listening")

	if err := p.server.Serve(p.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop marks every service NOT_SERVING and stops the server gracefully.
func (p *HealthProbe) Stop() {
	p.health.Shutdown()
	p.server.GracefulStop()
}
