package slack

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Block IDs of the digest message
const (
	BlockIDDigestHeader    = "digest_header"
	BlockIDDigestMetrics   = "digest_metrics"
	BlockIDDigestPrimary   = "digest_primary"
	BlockIDDigestSecondary = "digest_secondary"
	BlockIDDigestFooter    = "digest_footer"
)

// GetCardEmoji returns the emoji shown next to a metric card
func GetCardEmoji(cardID string) string {
	switch cardID {
	case model.MetricCardTestCases:
		return "🧪"
	case model.MetricCardDefects:
		return "🐞"
	case model.MetricCardPassed:
		return "✅"
	case model.MetricCardCoverage:
		return "📈"
	default:
		return "•"
	}
}

// BuildDigestBlocks renders a dashboard as a Slack message: header, one field per metric card,
// the primary suggestion and the secondary suggestions as a list.
func BuildDigestBlocks(dashboard *model.Dashboard) []slack.Block {
	var blocks []slack.Block

	projectName := "Project"
	if dashboard.Project != nil && dashboard.Project.Name != "" {
		projectName = dashboard.Project.Name
	}

	blocks = append(blocks, slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("📊 %s testing digest", projectName), true, false),
		slack.HeaderBlockOptionBlockID(BlockIDDigestHeader),
	))

	var fields []*slack.TextBlockObject
	for _, card := range dashboard.Metrics {
		fields = append(fields, slack.NewTextBlockObject(
			slack.MarkdownType,
			fmt.Sprintf("%s *%s*\n%s\n_%s_", GetCardEmoji(card.ID), card.Title, card.Value, card.Description),
			false, false,
		))
	}
	if len(fields) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil, slack.SectionBlockOptionBlockID(BlockIDDigestMetrics)))
	}

	blocks = append(blocks, slack.NewDividerBlock())

	suggestions := dashboard.Suggestions
	if suggestions == nil {
		suggestions = model.FallbackSuggestions()
	}

	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "💡 *Suggestion*\n"+suggestions.PrimarySuggestion, false, false),
		nil, nil,
		slack.SectionBlockOptionBlockID(BlockIDDigestPrimary),
	))

	if len(suggestions.SecondarySuggestions) > 0 {
		var lines []string
		for _, s := range suggestions.SecondarySuggestions {
			lines = append(lines, "• "+s)
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Also consider*\n"+strings.Join(lines, "\n"), false, false),
			nil, nil,
			slack.SectionBlockOptionBlockID(BlockIDDigestSecondary),
		))
	}

	footer := slack.NewContextBlock(BlockIDDigestFooter,
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("Last 7 days as of %s", dashboard.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")),
			false, false),
	)
	blocks = append(blocks, footer)

	return blocks
}

// buildDigestText is the plain-text fallback shown in notifications
func buildDigestText(dashboard *model.Dashboard) string {
	var parts []string
	for _, card := range dashboard.Metrics {
		parts = append(parts, fmt.Sprintf("%s: %s", card.Title, card.Value))
	}
	return "Testing digest: " + strings.Join(parts, ", ")
}
