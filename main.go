package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gallery-store/handlers"
	"gallery-store/internal/cartrpc"
	"gallery-store/internal/config"
	"gallery-store/internal/consul"
	"gallery-store/internal/stores/kafka"
	"gallery-store/pkg/logkey"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String(logkey.ERROR, err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("service stopped with error", slog.String(logkey.ERROR, err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	if len(cfg.KafkaBrokers) > 0 {
		k, err := kafka.NewConf(cfg.KafkaBrokers)
		if err != nil {
			return err
		}
		defer k.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = k.Ping(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("kafka is unreachable: %w", err)
		}
		stopForward := kafka.Forward(a.bus, k, cfg.KafkaTopicPrefix)
		defer stopForward()
		slog.Info("forwarding events to kafka", slog.Any("Brokers", cfg.KafkaBrokers))
	}

	httpLis, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.HTTPPort))
	if err != nil {
		return fmt.Errorf("failed to listen on http port: %w", err)
	}
	grpcLis, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.GRPCPort))
	if err != nil {
		httpLis.Close()
		return fmt.Errorf("failed to listen on grpc port: %w", err)
	}

	if cfg.ConsulAddress != "" {
		deregister, err := registerWithConsul(cfg)
		if err != nil {
			httpLis.Close()
			grpcLis.Close()
			return err
		}
		defer deregister()
	}

	return serve(ctx, a, httpLis, grpcLis)
}

// serve runs the HTTP and gRPC servers until ctx is done or one of them fails.
func serve(ctx context.Context, a *app, httpLis, grpcLis net.Listener) error {
	h, err := handlers.NewHandler(a.stores, a.keys, a.cfg.TokenTTL)
	if err != nil {
		return err
	}
	router, err := handlers.API(a.cfg.EndpointPrefix, a.cfg.GinMode, h)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	cartrpc.RegisterCartItemServiceServer(grpcServer, handlers.NewCartItemServiceHandler(a.stores.Carts))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(cartrpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	errCh := make(chan error, 2)
	go func() {
		slog.Info("http server started", slog.String("Address", httpLis.Addr().String()))
		if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		slog.Info("grpc server started", slog.String("Address", grpcLis.Addr().String()))
		if err := grpcServer.Serve(grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case serveErr = <-errCh:
	}

	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		serveErr = errors.Join(serveErr, fmt.Errorf("http shutdown: %w", err))
	}
	grpcServer.GracefulStop()
	return serveErr
}

func registerWithConsul(cfg config.Config) (func(), error) {
	client, err := consul.NewClient(cfg.ConsulAddress)
	if err != nil {
		return nil, err
	}

	regs := []consul.Registration{
		{
			Name:     cfg.ServiceName,
			Address:  cfg.ServiceAddress,
			Port:     cfg.HTTPPort,
			CheckURL: fmt.Sprintf("http://%s:%d/ping", cfg.ServiceAddress, cfg.HTTPPort),
		},
		{
			Name:      cfg.ServiceName + "-grpc",
			Address:   cfg.ServiceAddress,
			Port:      cfg.GRPCPort,
			GRPCCheck: fmt.Sprintf("%s:%d/%s", cfg.ServiceAddress, cfg.GRPCPort, cartrpc.ServiceName),
		},
	}
	for i, r := range regs {
		if err := consul.RegisterService(client, r); err != nil {
			for _, done := range regs[:i] {
				_ = consul.DeregisterService(client, done)
			}
			return nil, err
		}
	}

	return func() {
		for _, r := range regs {
			if err := consul.DeregisterService(client, r); err != nil {
				slog.Error("consul deregistration failed", slog.String(logkey.ERROR, err.Error()))
			}
		}
	}, nil
}
