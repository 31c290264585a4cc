package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/config"
	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage"
	initializeAvailabilityUC "github.com/m04kA/FWL-BookingService/internal/usecase/initialize_availability"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
)

// options параметры запуска генерации
type options struct {
	From string // YYYY-MM-DD, пусто означает сегодня
	Days int    // 0 означает booking.horizon_days
}

// initslots удаляет всю доступность и заново генерирует слоты на горизонт
// Записи на консультации не затрагиваются
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	from := flag.String("from", "", "first day of the horizon, YYYY-MM-DD (default: today)")
	days := flag.Int("days", 0, "horizon length in calendar days (default: booking.horizon_days)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	res, err := run(ctx, cfg, options{From: *from, Days: *days}, log)
	cancel()
	if err != nil {
		log.Error("Failed to initialize availability: %v", err)
		log.Close()
		os.Exit(1)
	}

	log.Info("Availability initialized: deleted=%d, created=%d, skipped=%d, slots per day=%d (blocked %d), range %s..%s",
		res.Deleted, res.Created, res.SkippedDays, res.SlotsPerDay, res.BlockedPerDay,
		domain.FormatDate(res.FirstDay), domain.FormatDate(res.LastDay))
	log.Close()
}

// run открывает хранилище и перегенерирует доступность
// Хранилище закрывается при любом исходе
func run(ctx context.Context, cfg *config.Config, opts options, log *logger.Logger) (*initializeAvailabilityUC.Response, error) {
	start := time.Now()
	if opts.From != "" {
		var err error
		start, err = domain.ParseDate(opts.From)
		if err != nil {
			return nil, fmt.Errorf("invalid -from value %q: %w", opts.From, err)
		}
	}

	store, err := storage.Open(ctx, cfg, nil, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close storage: %v", err)
		}
	}()

	uc := initializeAvailabilityUC.NewUseCase(store.Availability, store.TxManager, cfg.Booking.Policy(), log)
	return uc.Execute(ctx, &initializeAvailabilityUC.Request{From: start, Days: opts.Days})
}
