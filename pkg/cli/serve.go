package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/cli/config"
	controller "github.com/secmon-lab/tessera/pkg/controller/http"
	"github.com/secmon-lab/tessera/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		databaseCfg config.Database
		fixtureCfg  config.Fixture
		llmCfg      config.LLM
		slackCfg    config.Slack
	)

	flags := joinFlags(
		serverCfg.Flags(),
		databaseCfg.Flags(),
		fixtureCfg.Flags(),
		llmCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting tessera server",
				slog.Any("server", serverCfg),
				slog.Any("database", databaseCfg),
				slog.Any("fixture", fixtureCfg),
				slog.Any("llm", llmCfg),
				slog.Any("slack", slackCfg),
			)

			repo, err := databaseCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := fixtureCfg.Load(ctx, repo); err != nil {
				return err
			}

			llmSvc, err := llmCfg.NewService(ctx)
			if err != nil {
				return err
			}

			dashboardUC := usecase.NewDashboardUseCase(repo, llmSvc)
			useCases := &controller.UseCases{
				Analytics: usecase.NewAnalyticsUseCase(repo, llmSvc),
				Dashboard: dashboardUC,
				Generator: llmSvc,
			}
			if poster := slackCfg.Configure(logger); poster != nil {
				useCases.Digest = usecase.NewDigestUseCase(dashboardUC, poster, slackCfg.DefaultChannel())
			}

			server, err := controller.NewServer(ctx, serverCfg.Addr, useCases)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
