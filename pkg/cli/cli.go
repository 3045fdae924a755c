package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

const defaultEnvFile = ".env"

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		envFile   string
	)

	// Environment variables are read while flags are parsed, so the env file has to be
	// loaded before the command runs.
	if err := loadEnvFile(findEnvFile(args)); err != nil {
		return err
	}

	flags := joinFlags(
		loggerCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "Path of a dotenv file to load before reading TESSERA_* variables",
				Value:       defaultEnvFile,
				Sources:     cli.EnvVars("TESSERA_ENV_FILE"),
				Destination: &envFile,
			},
		},
	)

	app := &cli.Command{
		Name:    "tessera",
		Usage:   "Test management analytics service",
		Version: "0.1.0",
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdDigest(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		ctxlog.From(ctx).Error("CLI execution failed", slog.Any("error", err))
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}

// findEnvFile returns the value of --env-file in args, falling back to TESSERA_ENV_FILE
// and then the default path.
func findEnvFile(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--env-file" || arg == "-env-file":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--env-file="):
			return strings.TrimPrefix(arg, "--env-file=")
		case strings.HasPrefix(arg, "-env-file="):
			return strings.TrimPrefix(arg, "-env-file=")
		}
	}

	if v := os.Getenv("TESSERA_ENV_FILE"); v != "" {
		return v
	}
	return defaultEnvFile
}

// loadEnvFile loads variables from path without overriding existing ones. A missing file
// is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}
