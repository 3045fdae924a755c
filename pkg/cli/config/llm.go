package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/secmon-lab/tessera/pkg/service/llm"
	"github.com/urfave/cli/v3"
)

// LLM holds the completion service configuration. Gemini is preferred when both
// providers are configured.
type LLM struct {
	GeminiProject  string
	GeminiLocation string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	Timeout        time.Duration
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "GCP project ID for Gemini",
			Category:    "LLM",
			Sources:     cli.EnvVars("TESSERA_GEMINI_PROJECT"),
			Destination: &l.GeminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Gemini location",
			Category:    "LLM",
			Value:       "us-central1",
			Sources:     cli.EnvVars("TESSERA_GEMINI_LOCATION"),
			Destination: &l.GeminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model name",
			Category:    "LLM",
			Value:       "gemini-2.0-flash",
			Sources:     cli.EnvVars("TESSERA_GEMINI_MODEL"),
			Destination: &l.GeminiModel,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Category:    "LLM",
			Sources:     cli.EnvVars("TESSERA_OPENAI_API_KEY"),
			Destination: &l.OpenAIAPIKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "OpenAI model name",
			Category:    "LLM",
			Value:       "gpt-4o",
			Sources:     cli.EnvVars("TESSERA_OPENAI_MODEL"),
			Destination: &l.OpenAIModel,
		},
		&cli.DurationFlag{
			Name:        "llm-timeout",
			Usage:       "Timeout of a single LLM request",
			Category:    "LLM",
			Value:       llm.DefaultTimeout,
			Sources:     cli.EnvVars("TESSERA_LLM_TIMEOUT"),
			Destination: &l.Timeout,
		},
	}
}

// Provider returns the name of the selected provider, or "" when none is configured
func (l *LLM) Provider() string {
	switch {
	case l.GeminiProject != "":
		return "gemini"
	case l.OpenAIAPIKey != "":
		return "openai"
	default:
		return ""
	}
}

// Configure creates the LLM client. It returns nil without error when no provider is
// configured; advice then always falls back.
func (l *LLM) Configure(ctx context.Context) (gollem.LLMClient, error) {
	logger := ctxlog.From(ctx)

	switch l.Provider() {
	case "gemini":
		logger.Info("Configuring Gemini LLM",
			slog.String("project", l.GeminiProject),
			slog.String("location", l.GeminiLocation),
			slog.String("model", l.GeminiModel),
		)
		client, err := gemini.New(ctx, l.GeminiProject, l.GeminiLocation, gemini.WithModel(l.GeminiModel))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client",
				goerr.V("project", l.GeminiProject),
				goerr.V("location", l.GeminiLocation))
		}
		return client, nil

	case "openai":
		logger.Info("Configuring OpenAI LLM", slog.String("model", l.OpenAIModel))
		client, err := openai.New(ctx, l.OpenAIAPIKey, openai.WithModel(l.OpenAIModel))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		return client, nil

	default:
		logger.Warn("LLM not configured, suggestions will use the fallback and test case generation is disabled")
		return nil, nil
	}
}

// NewService creates the LLM service on top of the configured client
func (l *LLM) NewService(ctx context.Context) (*llm.LLMService, error) {
	client, err := l.Configure(ctx)
	if err != nil {
		return nil, err
	}
	return llm.NewLLMService(client, llm.WithTimeout(l.Timeout)), nil
}

// LogValue returns structured log value. The API key is never logged.
func (l LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", l.Provider()),
		slog.String("gemini_project", l.GeminiProject),
		slog.String("gemini_model", l.GeminiModel),
		slog.Bool("has_openai_api_key", l.OpenAIAPIKey != ""),
		slog.String("openai_model", l.OpenAIModel),
		slog.Duration("timeout", l.Timeout),
	)
}
