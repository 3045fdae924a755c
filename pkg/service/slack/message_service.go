package slack

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"github.com/slack-go/slack"
)

// MessageService publishes dashboard digests to Slack
type MessageService struct {
	client interfaces.SlackClient
}

// NewMessageService creates a new MessageService instance
func NewMessageService(client interfaces.SlackClient) *MessageService {
	return &MessageService{
		client: client,
	}
}

// PostDigest sends the dashboard digest to the channel
func (s *MessageService) PostDigest(ctx context.Context, channelID types.ChannelID, dashboard *model.Dashboard) error {
	if channelID == "" {
		return goerr.New("channel ID is required", goerr.T(model.ErrTagValidation))
	}
	if dashboard == nil {
		return goerr.New("dashboard is nil")
	}

	blocks := BuildDigestBlocks(dashboard)

	channel, ts, err := s.client.PostMessage(ctx, channelID.String(),
		slack.MsgOptionText(buildDigestText(dashboard), false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post digest to Slack",
			goerr.V("channel_id", channelID))
	}

	ctxlog.From(ctx).Info("Posted digest to Slack",
		"channel", channel,
		"ts", ts,
		"blocks", len(blocks),
	)

	return nil
}

// VerifyAuth checks the bot token and returns the bot user name
func (s *MessageService) VerifyAuth(ctx context.Context) (string, error) {
	resp, err := s.client.AuthTestContext(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to verify Slack token")
	}
	return resp.User, nil
}
