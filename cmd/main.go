package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avelora/flight-booking-service/internal/app/config"
	"github.com/avelora/flight-booking-service/internal/app/dto"
	"github.com/avelora/flight-booking-service/internal/app/endpoints"
	"github.com/avelora/flight-booking-service/internal/app/service"
	"github.com/avelora/flight-booking-service/internal/app/transport"
	"github.com/avelora/flight-booking-service/internal/pkg/distribution"
	"github.com/avelora/flight-booking-service/internal/pkg/logger"
	"github.com/avelora/flight-booking-service/internal/pkg/ndc"
	"github.com/avelora/flight-booking-service/internal/pkg/offer"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// @title           Flight Booking Service API
// @version         0.0.1
// @description     flight-booking-service
// @host      localhost:8080
// @BasePath  /
func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	endpts := makeEndpoints(ctx, &cfg)
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config) endpoints.Endpoints {
	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	return endpoints.Endpoints{
		ShoppingEndpoint: makeShoppingEndpoint(ctx, redisClient, cfg),
	}
}

func makeShoppingEndpoint(ctx context.Context,
	redisClient *redis.Client, cfg *config.Config) endpoints.ShoppingEndpoint {
	limiter := redis_rate.NewLimiter(redisClient)

	distributionClient := distribution.NewClient(distribution.Config{
		APIBaseURL:   cfg.Distribution.APIBaseURL,
		TokenURL:     cfg.Distribution.TokenURL,
		ClientID:     cfg.Distribution.ClientID,
		ClientSecret: cfg.Distribution.ClientSecret,
		Timeout:      cfg.Distribution.Timeout,
		MaxRetries:   cfg.Distribution.MaxRetries,
		RateLimitRPS: cfg.Distribution.RateLimitRPS,
		Limiter:      limiter,
	})

	airportNames, err := config.LoadAirportNames(cfg.Engine.AirportDataPath)
	if err != nil {
		slog.WarnContext(ctx, "failed to load airport dataset, offers will carry bare codes",
			slog.String("path", cfg.Engine.AirportDataPath),
			slog.String("error", err.Error()))
	}

	engine := ndc.NewEngine(ndc.Config{
		AirportNames: airportNames,
		Workers:      cfg.Engine.Workers,
	})

	offerCache := offer.NewOfferCache(redisClient)

	shoppingService := service.NewShoppingService(distributionClient, engine, offerCache,
		cfg.Engine.CacheExpiration, cfg.Engine.LockTimeout)

	return endpoints.MakeShoppingEndpoint(shoppingService)
}
