package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
)

// DigestPoster delivers a rendered dashboard to a chat channel
type DigestPoster interface {
	PostDigest(ctx context.Context, channelID types.ChannelID, dashboard *model.Dashboard) error
}

// DigestUseCase posts the dashboard of a project to Slack
type DigestUseCase struct {
	dashboard      interfaces.Dashboard
	poster         DigestPoster
	defaultChannel types.ChannelID
}

// NewDigestUseCase creates a new DigestUseCase instance. defaultChannel is used when Post
// is called without a channel.
func NewDigestUseCase(dashboard interfaces.Dashboard, poster DigestPoster, defaultChannel types.ChannelID) *DigestUseCase {
	return &DigestUseCase{
		dashboard:      dashboard,
		poster:         poster,
		defaultChannel: defaultChannel,
	}
}

// Post composes the dashboard and publishes it
func (uc *DigestUseCase) Post(ctx context.Context, projectID types.ProjectID, channelID types.ChannelID, asOf time.Time) error {
	if uc.poster == nil {
		return goerr.New("Slack is not configured")
	}
	if channelID == "" {
		channelID = uc.defaultChannel
	}
	if channelID == "" {
		return goerr.New("channel ID is required", goerr.T(model.ErrTagValidation))
	}

	dashboard, err := uc.dashboard.Compose(ctx, projectID, asOf)
	if err != nil {
		return goerr.Wrap(err, "failed to compose dashboard for digest")
	}

	if err := uc.poster.PostDigest(ctx, channelID, dashboard); err != nil {
		return goerr.Wrap(err, "failed to post digest",
			goerr.V("project_id", projectID),
			goerr.V("channel_id", channelID))
	}

	return nil
}

var _ interfaces.Digest = (*DigestUseCase)(nil)
