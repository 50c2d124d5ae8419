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
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/statblock-api/internal/config"
	httphandler "github.com/KirkDiggler/statblock-api/internal/handlers/http"
	"github.com/KirkDiggler/statblock-api/internal/handlers/statblock/v1alpha1"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC and HTTP servers",
	Long: `Start the stat block gRPC server and the JSON HTTP API.
Settings come from STATBLOCK_* environment variables; flags override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().Int("port", 50051, "gRPC server port (env STATBLOCK_GRPC_PORT)")
	serverCmd.Flags().Int("http-port", 8080, "HTTP server port (env STATBLOCK_HTTP_PORT)")
	addStoreFlags(serverCmd)
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svcs, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svcs.close()

	grpcHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		StatblockService: svcs.statblocks,
		DiceService:      svcs.dice,
	})
	if err != nil {
		return fmt.Errorf("failed to create grpc handler: %w", err)
	}

	httpHandler, err := httphandler.NewHandler(&httphandler.Config{
		StatblockService: svcs.statblocks,
		DiceService:      svcs.dice,
		CORSOrigins:      cfg.CORSOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create http handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)
	v1alpha1.RegisterStatblockServiceServer(srv, grpcHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()
	go func() {
		slog.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("received shutdown signal, stopping servers")
	case serveErr = <-errChan:
		slog.Error("server failed, stopping", "error", serveErr)
	}

	shutdown(cfg, srv, httpSrv, healthServer)
	return serveErr
}

// shutdown drains both servers within the configured timeout
func shutdown(cfg *config.Config, srv *grpc.Server, httpSrv *http.Server, healthServer *health.Server) {
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown incomplete", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("servers stopped gracefully")
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Default().Log(ctx, slog.Level(level), msg, fields...)
}
