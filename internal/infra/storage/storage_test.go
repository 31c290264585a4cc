package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FWL-BookingService/internal/config"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageDriverMemory}}

	s, err := Open(context.Background(), cfg, nil, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, config.StorageDriverMemory, s.Driver)
	assert.NotNil(t, s.Availability)
	assert.NotNil(t, s.Appointments)
	assert.NotNil(t, s.TxManager)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}

	_, err := Open(context.Background(), cfg, nil, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
