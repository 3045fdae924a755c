package config

import (
	"log/slog"

	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	slackSvc "github.com/secmon-lab/tessera/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack configuration for digests
type Slack struct {
	OAuthToken string
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack bot OAuth token (chat:write scope)",
			Category:    "Slack",
			Sources:     cli.EnvVars("TESSERA_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Default channel ID for digests",
			Category:    "Slack",
			Sources:     cli.EnvVars("TESSERA_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
	}
}

// IsConfigured checks if Slack is configured
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != ""
}

// Configure returns the digest poster, or nil if Slack is not configured
func (s *Slack) Configure(logger *slog.Logger) *slackSvc.MessageService {
	if !s.IsConfigured() {
		logger.Warn("Slack not configured - digests are disabled")
		return nil
	}

	logger.Info("Configuring Slack client")
	return slackSvc.NewMessageService(s.client())
}

func (s *Slack) client() interfaces.SlackClient {
	return slackSvc.NewClientAdapter(s.OAuthToken)
}

// DefaultChannel returns the configured default channel
func (s *Slack) DefaultChannel() types.ChannelID {
	return types.ChannelID(s.Channel)
}

// LogValue returns structured log value. The token is never logged.
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.Channel),
	)
}
