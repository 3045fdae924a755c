package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/cli/config"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"github.com/secmon-lab/tessera/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdDigest() *cli.Command {
	var (
		databaseCfg config.Database
		fixtureCfg  config.Fixture
		llmCfg      config.LLM
		slackCfg    config.Slack
		projectID   string
		channelID   string
		asOfStr     string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "project",
				Aliases:     []string{"p"},
				Usage:       "Project ID to report on",
				Required:    true,
				Sources:     cli.EnvVars("TESSERA_DIGEST_PROJECT"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "channel",
				Usage:       "Slack channel ID; defaults to --slack-channel",
				Destination: &channelID,
			},
			&cli.StringFlag{
				Name:        "as-of",
				Usage:       "Reference time in RFC 3339; defaults to now",
				Destination: &asOfStr,
			},
		},
		databaseCfg.Flags(),
		fixtureCfg.Flags(),
		llmCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:  "digest",
		Usage: "Post the project dashboard to Slack",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			asOf, err := parseAsOf(asOfStr)
			if err != nil {
				return err
			}

			poster := slackCfg.Configure(logger)
			if poster == nil {
				return goerr.New("Slack client configuration is required. Please provide TESSERA_SLACK_OAUTH_TOKEN")
			}

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

			digestUC := usecase.NewDigestUseCase(
				usecase.NewDashboardUseCase(repo, llmSvc),
				poster,
				slackCfg.DefaultChannel(),
			)

			if err := digestUC.Post(ctx, types.ProjectID(projectID), types.ChannelID(channelID), asOf); err != nil {
				return err
			}

			logger.Info("Digest posted",
				slog.String("project_id", projectID),
				slog.Time("as_of", asOf),
			)
			return nil
		},
	}
}

func parseAsOf(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid --as-of, expected RFC 3339", goerr.V("as_of", s))
	}
	return t, nil
}
