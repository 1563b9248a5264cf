package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/pflag"

	createBookingHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/create_booking"
	createUrgentRequestHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/create_urgent_request"
	declineUrgentRequestHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/decline_urgent_request"
	getAvailabilityHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/get_calendar"
	getUrgentRequestHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/get_urgent_request"
	healthHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/list_bookings"
	listDeclinedHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/list_declined"
	listUrgentRequestsHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/list_urgent_requests"
	setAvailabilityHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/set_availability"
	updateUrgentStatusHandler "github.com/m04kA/SMC-CounselingService/internal/api/handlers/update_urgent_status"
	"github.com/m04kA/SMC-CounselingService/internal/api/middleware"
	"github.com/m04kA/SMC-CounselingService/internal/config"
	"github.com/m04kA/SMC-CounselingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/booking"
	declinedRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/declined"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/schema"
	urgentRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/urgent"
	availabilityService "github.com/m04kA/SMC-CounselingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-CounselingService/internal/service/bookings"
	declinedService "github.com/m04kA/SMC-CounselingService/internal/service/declined"
	urgentService "github.com/m04kA/SMC-CounselingService/internal/service/urgent"
	getAvailabilityUC "github.com/m04kA/SMC-CounselingService/internal/usecase/get_availability"
	requestBookingUC "github.com/m04kA/SMC-CounselingService/internal/usecase/request_booking"
	setAvailabilityUC "github.com/m04kA/SMC-CounselingService/internal/usecase/set_availability"
	"github.com/m04kA/SMC-CounselingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CounselingService/pkg/logger"
	"github.com/m04kA/SMC-CounselingService/pkg/metrics"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-CounselingService/pkg/txmanager"
)

// recoveryLogger адаптер логгера для gorilla/handlers.RecoveryHandler
type recoveryLogger struct {
	log *logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("Recovered from panic: %s", fmt.Sprint(v...))
}

func main() {
	configPath := pflag.StringP("config", "c", "config.toml", "path to the TOML config file")
	pflag.Parse()

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

	log.Info("Starting SMC-CounselingService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Метрики собираются всегда, наружу публикуются только при metrics.enabled
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	dialect, err := sqlbuilder.ParseDialect(cfg.Database.Driver)
	if err != nil {
		log.Fatal("Invalid database driver: %v", err)
	}

	// Подключаемся к базе данных
	db, err := sql.Open(dialect.DriverName(), cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	if dialect == sqlbuilder.SQLite {
		// SQLite сериализует запись, несколько соединений дают SQLITE_BUSY внутри транзакций
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	if dialect == sqlbuilder.SQLite {
		log.Info("Successfully connected to database (driver=sqlite, path=%s)", cfg.Database.Path)
	} else {
		log.Info("Successfully connected to database (driver=postgres, host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	var dbRecorder dbmetrics.Recorder
	if cfg.Metrics.Enabled {
		dbRecorder = metricsCollector
	}
	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := schema.Migrate(migrateCtx, wrappedDB, dialect); err != nil {
		cancelMigrate()
		log.Fatal("Failed to apply schema: %v", err)
	}
	cancelMigrate()
	log.Info("Database schema is up to date")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	window := domain.NewBookingWindow(location, cfg.Booking.AdvanceBookingDays, cfg.Booking.MinBookingNoticeMinutes)
	log.Info("Booking window: timezone=%s, advance_days=%d, notice_minutes=%d",
		cfg.Booking.Timezone, cfg.Booking.AdvanceBookingDays, cfg.Booking.MinBookingNoticeMinutes)

	// Инициализируем репозитории
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB, dialect)
	bookingRepository := bookingRepo.NewRepository(wrappedDB, dialect)
	urgentRepository := urgentRepo.NewRepository(wrappedDB, dialect)
	declinedRepository := declinedRepo.NewRepository(wrappedDB, dialect)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	declinedSvc := declinedService.NewService(declinedRepository, metricsCollector, log)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		bookingRepository,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		availabilityRepository,
		declinedSvc,
		txMgr,
		metricsCollector,
		log,
	)
	urgentSvc := urgentService.NewService(
		urgentRepository,
		declinedSvc,
		txMgr,
		metricsCollector,
		cfg.Booking.MaxMessageLength,
		log,
	)

	// Инициализируем use cases
	setAvailabilityUseCase := setAvailabilityUC.NewUseCase(availabilitySvc, window, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(availabilitySvc, window, log)
	requestBookingUseCase := requestBookingUC.NewUseCase(bookingSvc, window, log)

	// Инициализируем handlers
	health := healthHandler.NewHandler(wrappedDB, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getAvailabilityUseCase, log)
	setAvailability := setAvailabilityHandler.NewHandler(setAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(requestBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	createUrgentRequest := createUrgentRequestHandler.NewHandler(urgentSvc, log)
	listUrgentRequests := listUrgentRequestsHandler.NewHandler(urgentSvc, log)
	getUrgentRequest := getUrgentRequestHandler.NewHandler(urgentSvc, log)
	updateUrgentStatus := updateUrgentStatusHandler.NewHandler(urgentSvc, log)
	declineUrgentRequest := declineUrgentRequestHandler.NewHandler(urgentSvc, log)
	listDeclined := listDeclinedHandler.NewHandler(declinedSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Ограничение частоты для публичных POST запросов
	public := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid rate limit config: %v", err)
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.MaxClients, trustedProxies)
		public = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limiting enabled (rpm=%d, burst=%d, trusted_proxies=%d)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, len(trustedProxies))
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты на дату и календарь на диапазон дат
	api.HandleFunc("/availability", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{date}", getAvailability.Handle).Methods(http.MethodGet)

	// Запрос на консультацию
	api.Handle("/bookings", public(createBooking.Handle)).Methods(http.MethodPost)

	// Срочное обращение
	api.Handle("/urgent-requests", public(createUrgentRequest.Handle)).Methods(http.MethodPost)

	// ============================================================
	// OPERATOR ROUTES (требуют заголовок оператора)
	// ============================================================

	operator := api.PathPrefix("").Subrouter()
	operator.Use(middleware.Operator(cfg.Auth.OperatorHeader))

	// --- Доступность ---
	operator.HandleFunc("/availability/{date}", setAvailability.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	operator.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	operator.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// --- Очередь срочных обращений ---
	operator.HandleFunc("/urgent-requests", listUrgentRequests.Handle).Methods(http.MethodGet)
	operator.HandleFunc("/urgent-requests/{requestId}", getUrgentRequest.Handle).Methods(http.MethodGet)
	operator.HandleFunc("/urgent-requests/{requestId}/status", updateUrgentStatus.Handle).Methods(http.MethodPut)
	operator.HandleFunc("/urgent-requests/{requestId}/decline", declineUrgentRequest.Handle).Methods(http.MethodPost)

	// --- Журнал отклонённых обращений ---
	operator.HandleFunc("/declined-requests", listDeclined.Handle).Methods(http.MethodGet)

	// CORS и восстановление после паники
	handler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", cfg.Auth.OperatorHeader}),
	)(r)
	handler = gorillaHandlers.RecoveryHandler(gorillaHandlers.RecoveryLogger(recoveryLogger{log: log}))(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
