package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"intranet/config"
	"intranet/logging"
	"intranet/notification"
	"intranet/server"
	"intranet/system"
	"intranet/ws"
)

// ReadyMessage is logged once the relay accepts connections.
const ReadyMessage = "Intranet cargada correctamente"

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the notification relay for connected browsers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.InitLogger(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	hub := ws.NewHub(logger.Named("ws"))
	notifier := notification.New(hub,
		notification.WithLogger(logger.Named("notification")),
		notification.WithTimings(notification.Timings{
			ShowDelay:   cfg.NotifyShowDelay,
			Display:     cfg.NotifyDisplay,
			RemoveDelay: cfg.NotifyRemoveDelay,
		}))
	pool := system.NewNotificationWorkerPool(notifier, cfg.NotifyWorkers, cfg.NotifyQueueSize, logger.Named("worker"))
	h := system.NewHandler(pool, cfg.AppName, cfg.AppEnv, logger)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: server.NewRouter(server.Deps{
			Handler:   h,
			Hub:       hub,
			Logger:    logger.Named("http"),
			StaticDir: cfg.StaticDir,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	pool.Start(gctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error {
		logger.Info(ReadyMessage, zap.String("addr", ln.Addr().String()), zap.String("environment", cfg.AppEnv))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		pool.Stop()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
