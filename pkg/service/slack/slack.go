package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Service provides Slack messaging capabilities
type Service struct {
	client *slack.Client
}

// New creates a new Slack service
func New(token string) *Service {
	return &Service{
		client: slack.New(token),
	}
}

// PostMessage sends a message to a Slack channel
func (s *Service) PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	channel, timestamp, err := s.client.PostMessageContext(ctx, channelID, options...)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to post message to Slack",
			goerr.V("channel_id", channelID))
	}
	return channel, timestamp, nil
}

// AuthTestContext tests authentication and returns basic information about the team and bot
func (s *Service) AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error) {
	resp, err := s.client.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to authenticate with Slack")
	}
	return resp, nil
}
