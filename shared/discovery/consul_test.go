package discovery

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration(t *testing.T) {
	cfg := ConsulConfig{
		ServiceName:     "fitness-service",
		ServiceHost:     "10.0.0.5",
		Tags:            []string{"api", "v1"},
		CheckInterval:   "10s",
		DeregisterAfter: "1m",
	}

	reg, err := Registration(cfg, 3000, ":50051")
	require.NoError(t, err)

	assert.Equal(t, "fitness-service-10.0.0.5-3000", reg.ID)
	assert.Equal(t, "fitness-service", reg.Name)
	assert.Equal(t, 3000, reg.Port)
	assert.Equal(t, []string{"api", "v1"}, reg.Tags)
	require.NotNil(t, reg.Check)
	assert.Equal(t, "10.0.0.5:50051", reg.Check.GRPC)
	assert.Equal(t, "10s", reg.Check.Interval)
	assert.Equal(t, "1m", reg.Check.DeregisterCriticalServiceAfter)
}

func TestRegistration_InvalidHealthAddr(t *testing.T) {
	_, err := Registration(ConsulConfig{}, 3000, "no-port")
	assert.Error(t, err)
}

func TestRegistrar_DeregisterWithoutRegistration(t *testing.T) {
	logger := zerolog.Nop()

	r, err := NewRegistrar(&logger, ConsulConfig{Address: "127.0.0.1:1"})
	require.NoError(t, err)
	assert.NoError(t, r.Deregister())
}
