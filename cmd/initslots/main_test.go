package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FWL-BookingService/internal/config"
	"github.com/m04kA/FWL-BookingService/internal/domain"
	initializeAvailabilityUC "github.com/m04kA/FWL-BookingService/internal/usecase/initialize_availability"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\ndriver = \"memory\"\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func TestRun_GeneratesHorizon(t *testing.T) {
	cfg := memoryConfig(t)

	// 2026-10-19 понедельник: неделя дает 5 рабочих дней
	res, err := run(context.Background(), cfg, options{From: "2026-10-19", Days: 7}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, 5, res.Created)
	assert.Equal(t, 2, res.SkippedDays)
	assert.True(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.Local).Equal(res.FirstDay))
	assert.Equal(t, "2026-10-23", domain.FormatDate(res.LastDay))
}

func TestRun_ReturnsErrorsInsteadOfExiting(t *testing.T) {
	cfg := memoryConfig(t)

	_, err := run(context.Background(), cfg, options{From: "19.10.2026"}, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	// Ошибка после открытия хранилища тоже возвращается, defer закрывает хранилище
	_, err = run(context.Background(), cfg, options{From: "2026-10-19", Days: -1}, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, initializeAvailabilityUC.ErrInvalidInput)
}

func TestRun_UnknownDriver(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Storage.Driver = "sqlite"

	_, err := run(context.Background(), cfg, options{}, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open storage")
}
