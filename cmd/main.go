package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	changeStatusHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/change_status"
	createBlockedDateHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/create_blocked_date"
	createBlockedIntervalHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/create_blocked_interval"
	createBookingHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/create_booking"
	createWindowHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/create_window"
	deleteAvailabilityHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/delete_availability"
	getAvailableSlotsHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/get_booking"
	getProviderBookingsHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/get_provider_bookings"
	getUserBookingsHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/get_user_bookings"
	listWindowsHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/list_windows"
	overrideBookingHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/override_booking"
	reassignProviderHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/reassign_provider"
	updateWindowHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/update_window"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/config"
	"github.com/m04kA/PetCare-BookingService/internal/service/access"
	availabilityService "github.com/m04kA/PetCare-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/PetCare-BookingService/internal/service/bookings"
	slotsService "github.com/m04kA/PetCare-BookingService/internal/service/slots"
	changeStatusUC "github.com/m04kA/PetCare-BookingService/internal/usecase/change_status"
	createBookingUC "github.com/m04kA/PetCare-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/PetCare-BookingService/internal/usecase/get_available_slots"
	overrideBookingUC "github.com/m04kA/PetCare-BookingService/internal/usecase/override_booking"
	reassignProviderUC "github.com/m04kA/PetCare-BookingService/internal/usecase/reassign_provider"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
	"github.com/m04kA/PetCare-BookingService/pkg/metrics"
	"github.com/m04kA/PetCare-BookingService/pkg/ratelimit"
)

const rateLimitRedisPrefix = "petcare-booking:ratelimit"

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting PetCare-BookingService (storage=%s, timezone=%s)...", cfg.Storage.Driver, cfg.Server.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	store, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	location := cfg.Server.Location()
	minNotice := cfg.Booking.MinNoticeMinutes

	// Сервисы
	accessChecker := access.NewChecker(store.providers)
	slotSvc := slotsService.NewService(store.availability, store.bookings, store.providers, location, log)
	bookingsSvc := bookingsService.NewService(store.bookings, accessChecker, log)
	availabilitySvc := availabilityService.NewService(store.availability, store.providers, accessChecker, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(slotSvc, minNotice, location, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.providers,
		store.pets,
		slotSvc,
		store.tx,
		metricsCollector,
		minNotice,
		location,
		log,
	)
	changeStatusUseCase := changeStatusUC.NewUseCase(store.bookings, accessChecker, store.tx, log)
	reassignProviderUseCase := reassignProviderUC.NewUseCase(store.bookings, store.providers, slotSvc, store.tx, log)
	overrideBookingUseCase := overrideBookingUC.NewUseCase(store.bookings, slotSvc, store.tx, log)
	log.Info("Use cases initialized")

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	changeStatus := changeStatusHandler.NewHandler(changeStatusUseCase, log)
	reassignProvider := reassignProviderHandler.NewHandler(reassignProviderUseCase, log)
	overrideBooking := overrideBookingHandler.NewHandler(overrideBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingsSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingsSvc, log)
	listWindows := listWindowsHandler.NewHandler(availabilitySvc, log)
	createWindow := createWindowHandler.NewHandler(availabilitySvc, log)
	updateWindow := updateWindowHandler.NewHandler(availabilitySvc, log)
	deleteWindow := deleteAvailabilityHandler.NewWindowHandler(availabilitySvc, log)
	createBlockedDate := createBlockedDateHandler.NewHandler(availabilitySvc, log)
	deleteBlockedDate := deleteAvailabilityHandler.NewBlockedDateHandler(availabilitySvc, log)
	createBlockedInterval := createBlockedIntervalHandler.NewHandler(availabilitySvc, log)
	deleteBlockedInterval := deleteAvailabilityHandler.NewBlockedIntervalHandler(availabilitySvc, log)

	// Создаем router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Metrics middleware (если включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		limiter, client, err := newRateLimiter(cfg)
		if err != nil {
			log.Fatal("Failed to initialize rate limiter: %v", err)
		}
		redisClient = client
		api.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limiting enabled (backend=%s, requests=%d, window=%ds)",
			cfg.RateLimit.Backend, cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	}

	// ============================================================
	// PUBLIC ROUTES (X-User-ID опционален)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// Доступные слоты; view=all только для admin
	public.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание провайдера
	public.HandleFunc("/providers/{providerId}/availability", listWindows.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", changeStatus.Handle).Methods(http.MethodPatch)

	// Административные операции
	protected.HandleFunc("/bookings/{bookingId}/reassign", reassignProvider.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", overrideBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление провайдером ---
	protected.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/providers/{providerId}/availability", createWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/availability/{windowId}", updateWindow.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/providers/{providerId}/availability/{windowId}", deleteWindow.Handle).Methods(http.MethodDelete)

	protected.HandleFunc("/providers/{providerId}/blocked-dates", createBlockedDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/blocked-dates/{blockId}", deleteBlockedDate.Handle).Methods(http.MethodDelete)

	protected.HandleFunc("/providers/{providerId}/blocked-intervals", createBlockedInterval.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/blocked-intervals/{blockId}", deleteBlockedInterval.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

// newRateLimiter создаёт limiter выбранного backend; для redis возвращает и клиента, чтобы закрыть его при остановке
func newRateLimiter(cfg *config.Config) (ratelimit.Limiter, *redis.Client, error) {
	rl := cfg.RateLimit

	if rl.Backend != config.RateLimitBackendRedis {
		limiter, err := ratelimit.NewMemoryStore(rl.Requests, rl.Window(), rl.Burst)
		return limiter, nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}

	limiter, err := ratelimit.NewRedisStore(client, rateLimitRedisPrefix, rl.Requests, rl.Window())
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return limiter, client, nil
}
