package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"github.com/secmon-lab/tessera/pkg/usecase"
)

type fakePoster struct {
	channels   []types.ChannelID
	dashboards []*model.Dashboard
	err        error
}

func (p *fakePoster) PostDigest(ctx context.Context, channelID types.ChannelID, dashboard *model.Dashboard) error {
	p.channels = append(p.channels, channelID)
	p.dashboards = append(p.dashboards, dashboard)
	return p.err
}

func TestDigestUseCase_Post(t *testing.T) {
	repo, projectID := newSeededRepo(t)
	dashboard := usecase.NewDashboardUseCase(repo, nil)

	t.Run("explicit channel", func(t *testing.T) {
		poster := &fakePoster{}
		uc := usecase.NewDigestUseCase(dashboard, poster, "C-default")

		gt.NoError(t, uc.Post(context.Background(), projectID, "C-explicit", asOf))
		gt.Equal(t, poster.channels, []types.ChannelID{"C-explicit"})
		gt.Equal(t, poster.dashboards[0].Stats.TotalTestCases, 10)
	})

	t.Run("default channel", func(t *testing.T) {
		poster := &fakePoster{}
		uc := usecase.NewDigestUseCase(dashboard, poster, "C-default")

		gt.NoError(t, uc.Post(context.Background(), projectID, "", asOf))
		gt.Equal(t, poster.channels, []types.ChannelID{"C-default"})
	})

	t.Run("no channel", func(t *testing.T) {
		poster := &fakePoster{}
		uc := usecase.NewDigestUseCase(dashboard, poster, "")

		err := uc.Post(context.Background(), projectID, "", asOf)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagValidation))
		gt.A(t, poster.channels).Length(0)
	})

	t.Run("unknown project", func(t *testing.T) {
		poster := &fakePoster{}
		uc := usecase.NewDigestUseCase(dashboard, poster, "C-default")

		err := uc.Post(context.Background(), types.NewProjectID(), "", asOf)
		gt.True(t, errors.Is(err, model.ErrProjectNotFound))
		gt.A(t, poster.channels).Length(0)
	})

	t.Run("poster failure", func(t *testing.T) {
		poster := &fakePoster{err: errors.New("channel_not_found")}
		uc := usecase.NewDigestUseCase(dashboard, poster, "C-default")

		gt.Error(t, uc.Post(context.Background(), projectID, "", asOf))
	})

	t.Run("Slack not configured", func(t *testing.T) {
		uc := usecase.NewDigestUseCase(dashboard, nil, "C-default")
		gt.Error(t, uc.Post(context.Background(), projectID, "", asOf))
	})
}
