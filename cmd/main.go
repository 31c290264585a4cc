package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
	createAppointmentHandler "github.com/m04kA/FWL-BookingService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/FWL-BookingService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/FWL-BookingService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/FWL-BookingService/internal/api/handlers/get_availability"
	getAvailabilityDayHandler "github.com/m04kA/FWL-BookingService/internal/api/handlers/get_availability_day"
	healthHandler "github.com/m04kA/FWL-BookingService/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/FWL-BookingService/internal/api/handlers/list_appointments"
	sendTestEmailHandler "github.com/m04kA/FWL-BookingService/internal/api/handlers/send_test_email"
	updateStatusHandler "github.com/m04kA/FWL-BookingService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/FWL-BookingService/internal/api/middleware"
	"github.com/m04kA/FWL-BookingService/internal/api/router"
	"github.com/m04kA/FWL-BookingService/internal/config"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage"
	"github.com/m04kA/FWL-BookingService/internal/integrations/mailer"
	appointmentsService "github.com/m04kA/FWL-BookingService/internal/service/appointments"
	availabilityService "github.com/m04kA/FWL-BookingService/internal/service/availability"
	notificationService "github.com/m04kA/FWL-BookingService/internal/service/notification"
	createAppointmentUC "github.com/m04kA/FWL-BookingService/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/m04kA/FWL-BookingService/internal/usecase/get_availability"
	initializeAvailabilityUC "github.com/m04kA/FWL-BookingService/internal/usecase/initialize_availability"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
	"github.com/m04kA/FWL-BookingService/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting FWL-BookingService...")
	log.Info("Configuration loaded from %s (environment=%s)", *configPath, cfg.Server.Environment)

	handlers.SetProduction(cfg.Server.IsProduction())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Открываем хранилище
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := storage.Open(startCtx, cfg, metricsCollector, log)
	cancelStart()
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}

	// Хранилище в памяти пустое после старта: заполняем горизонт доступности
	if store.Driver == config.StorageDriverMemory {
		seed := initializeAvailabilityUC.NewUseCase(store.Availability, store.TxManager, cfg.Booking.Policy(), log)
		res, err := seed.Execute(context.Background(), &initializeAvailabilityUC.Request{From: time.Now()})
		if err != nil {
			log.Fatal("Failed to seed availability: %v", err)
		}
		log.Info("Seeded availability: %d days, %d slots per day", res.Created, res.SlotsPerDay)
	}

	// Инициализируем почтовый клиент
	mailerCfg := mailer.Config{
		Host:          cfg.SMTP.Host,
		Port:          cfg.SMTP.Port,
		Username:      cfg.SMTP.Username,
		Password:      cfg.SMTP.Password,
		From:          cfg.SMTP.From,
		FromName:      cfg.SMTP.FromName,
		OperatorEmail: cfg.SMTP.OperatorEmail,
	}
	var mailClient *mailer.Client
	if cfg.SMTP.Enabled {
		mailClient = mailer.NewClient(mailerCfg, log)
		log.Info("Mailer initialized (host=%s, port=%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		mailClient = mailer.NewDisabledClient(mailerCfg, log)
		log.Warn("SMTP is disabled, notification emails will be dropped")
	}

	// Инициализируем сервисы
	notifier := notificationService.NewService(
		mailClient,
		metricsCollector,
		time.Duration(cfg.Booking.NotificationTimeout)*time.Second,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		store.Appointments,
		store.Availability,
		store.TxManager,
		cfg.Booking.ReleaseOnCancel,
		log,
	)
	availabilitySvc := availabilityService.NewService(store.Availability, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.Availability,
		store.Appointments,
		store.TxManager,
		notifier,
		metricsCollector,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(store.Availability, log)

	// Инициализируем handlers
	routes := router.Handlers{
		Health:             healthHandler.NewHandler().Handle,
		GetAvailability:    getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log).Handle,
		GetAvailabilityDay: getAvailabilityDayHandler.NewHandler(availabilitySvc, log).Handle,
		CreateAppointment:  createAppointmentHandler.NewHandler(createAppointmentUseCase, log).Handle,
		ListAppointments:   listAppointmentsHandler.NewHandler(appointmentsSvc, log).Handle,
		GetAppointment:     getAppointmentHandler.NewHandler(appointmentsSvc, log).Handle,
		UpdateStatus:       updateStatusHandler.NewHandler(appointmentsSvc, log).Handle,
		DeleteAppointment:  deleteAppointmentHandler.NewHandler(appointmentsSvc, log).Handle,
		SendTestEmail:      sendTestEmailHandler.NewHandler(notifier, log).Handle,
	}

	routerCfg := router.Config{
		AdminToken:  cfg.Admin.Token,
		MetricsPath: cfg.Metrics.Path,
	}
	if cfg.Admin.Token == "" {
		log.Warn("admin.token is empty, admin endpoints are not protected")
	}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsHandler = metricsCollector.Handler()
		routerCfg.HTTPMetrics = metricsCollector
	}

	stopCh := make(chan struct{})
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		limiter.SetTrustProxy(cfg.RateLimit.TrustProxy)
		go limiter.Run(stopCh)
		routerCfg.RateLimiter = limiter
		log.Info("Rate limit enabled for bookings: %.0f req/min, burst %d",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.New(routes, routerCfg, log),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stopCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки писем по уже созданным записям
	if err := notifier.Shutdown(shutdownCtx); err != nil {
		log.Error("Pending notifications were not delivered: %v", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Failed to close storage: %v", err)
	}

	log.Info("Server stopped gracefully")
}
