package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"loanchecker/internal/api"
	"loanchecker/internal/api/handler/v1handler"
	"loanchecker/internal/checker"
	"loanchecker/internal/config"
	"loanchecker/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server and the screens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			predictionCache, closeCache := getCache(ctx, cfg)
			defer closeCache()

			predictor, closePredictor := getPredictor(ctx, cfg)
			defer closePredictor()

			server, err := api.NewServer(api.Deps{
				Deps: v1handler.Deps{
					Checker: checker.New(predictor, strg, predictionCache, checker.NewOptions(cfg)),
				},
			}, api.NewOptions(cfg))
			if err != nil {
				return fmt.Errorf("could not create webserver: %w", err)
			}
			defer server.Close()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("could not start webserver: %w", err)
				}

				return nil
			})
			g.Go(func() error {
				// wait for interrupt or a failed listener
				<-gctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
				defer cancel()

				logger.Info(ctx, "stopping webserver...")
				if err := server.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("could not stop webserver: %w", err)
				}

				return nil
			})

			return g.Wait()
		},
	}

	return cmd
}
