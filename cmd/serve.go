package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	httpapi "github.com/immxrtalbeast/meetrelay/internal/api/http"
	"github.com/immxrtalbeast/meetrelay/internal/config"
	"github.com/immxrtalbeast/meetrelay/internal/repository"
	"github.com/immxrtalbeast/meetrelay/internal/service"
	"github.com/immxrtalbeast/meetrelay/internal/transport"
	"github.com/immxrtalbeast/meetrelay/lib/logger/sl"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the signaling server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load(".env")

			cfg := config.MustLoad(configPath)
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file (defaults to $CONFIG_PATH, then config/local.yaml)")
	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	log := setupLogger(cfg.Env)
	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := transport.NewHub(log)
	roomService := service.NewRoomService(
		repository.NewInMemoryRoomDirectory(),
		repository.NewInMemoryParticipantStore(),
		hub,
		log,
	)
	hub.OnClose(roomService.Disconnect)

	roomController := httpapi.NewRoomController(roomService, cfg.WebRTC)
	signalController := httpapi.NewSignalController(hub, roomService, cfg.WebSocket, log)
	router := httpapi.SetupRouter(roomController, signalController, cfg.HTTP)

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting application", slog.String("addr", cfg.HTTP.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("http server stopped", sl.Err(err))
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	// websocket connections are hijacked, so Shutdown does not wait for them
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", sl.Err(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
