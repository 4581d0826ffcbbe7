package discovery

import (
	"fmt"
	"net"
	"strconv"

	consul "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// ConsulConfig holds the Consul agent settings used for service registration.
type ConsulConfig struct {
	Enabled         bool     `env:"ENABLED"          envDefault:"false"`
	Address         string   `env:"ADDRESS"          envDefault:"localhost:8500"`
	ServiceName     string   `env:"SERVICE_NAME"     envDefault:"fitness-service"`
	ServiceHost     string   `env:"SERVICE_HOST"     envDefault:"localhost"`
	Tags            []string `env:"TAGS"             envSeparator:","`
	CheckInterval   string   `env:"CHECK_INTERVAL"   envDefault:"10s"`
	DeregisterAfter string   `env:"DEREGISTER_AFTER" envDefault:"1m"`
}

// Registrar registers a service instance with the local Consul agent.
type Registrar struct {
	logger    *zerolog.Logger
	agent     *consul.Agent
	serviceID string
}

// NewRegistrar creates a Consul client for the configured agent.
func NewRegistrar(logger *zerolog.Logger, cfg ConsulConfig) (*Registrar, error) {
	consulCfg := consul.DefaultConfig()
	consulCfg.Address = cfg.Address

	client, err := consul.NewClient(consulCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &Registrar{logger: logger, agent: client.Agent()}, nil
}

// Registration builds the agent registration for a service whose HTTP API
// listens on httpPort and whose gRPC health probe listens on healthAddr.
func Registration(cfg ConsulConfig, httpPort int, healthAddr string) (*consul.AgentServiceRegistration, error) {
	_, healthPort, err := net.SplitHostPort(healthAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid health address %q: %w", healthAddr, err)
	}
	if _, err := strconv.Atoi(healthPort); err != nil {
		return nil, fmt.Errorf("invalid health port %q: %w", healthPort, err)
	}

	id := fmt.Sprintf("%s-%s-%d", cfg.ServiceName, cfg.ServiceHost, httpPort)

	return &consul.AgentServiceRegistration{
		ID:      id,
		Name:    cfg.ServiceName,
		Address: cfg.ServiceHost,
		Port:    httpPort,
		Tags:    cfg.Tags,
		Check: &consul.AgentServiceCheck{
			GRPC:                           net.JoinHostPort(cfg.ServiceHost, healthPort),
			Interval:                       cfg.CheckInterval,
			DeregisterCriticalServiceAfter: cfg.DeregisterAfter,
		},
	}, nil
}

// Register registers the service with the agent.
func (r *Registrar) Register(reg *consul.AgentServiceRegistration) error {
	if err := r.agent.ServiceRegister(reg); err != nil {
		return fmt.Errorf("failed to register service %s: %w", reg.ID, err)
	}

	r.serviceID = reg.ID
	r.logger.Info().Str("service_id", reg.ID).Msg("registered service with consul")

	return nil
}

// Deregister removes the previously registered service. It is a no-op when
// nothing was registered.
func (r *Registrar) Deregister() error {
	if r.serviceID == "" {
		return nil
	}

	if err := r.agent.ServiceDeregister(r.serviceID); err != nil {
		return fmt.Errorf("failed to deregister service %s: %w", r.serviceID, err)
	}

	r.logger.Info().Str("service_id", r.serviceID).Msg("deregistered service from consul")
	r.serviceID = ""

	return nil
}
