package llm

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
)

// Error tags for categorization
var (
	ErrTagInvalidJSON     = goerr.NewTag("invalid_json")
	ErrTagMissingField    = goerr.NewTag("missing_field")
	ErrTagEmptyResponse   = goerr.NewTag("empty_response")
	ErrTagTemplateFailure = goerr.NewTag("template_failure")
	ErrTagNotConfigured   = goerr.NewTag("not_configured")
)

// DefaultTimeout bounds a single completion request
const DefaultTimeout = 20 * time.Second

//go:embed templates/*.md
var templateFS embed.FS

// LLMService handles LLM operations: testing advice and test case drafting
type LLMService struct {
	llmClient gollem.LLMClient
	timeout   time.Duration
}

// Option configures LLMService
type Option func(*LLMService)

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *LLMService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewLLMService creates a new LLMService instance. llmClient may be nil, in which case
// advice always falls back and test case generation fails.
func NewLLMService(llmClient gollem.LLMClient, opts ...Option) *LLMService {
	s := &LLMService{
		llmClient: llmClient,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest asks the LLM for testing advice on a metrics summary. It never fails: transport
// errors, timeouts and any response that is not exactly {primarySuggestion, secondarySuggestions}
// with a non-empty primary yield model.FallbackSuggestions().
func (s *LLMService) Suggest(ctx context.Context, summary string) *model.Suggestions {
	suggestions, err := s.suggest(ctx, summary)
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to generate suggestions, using fallback",
			"error", err,
			"degraded", true,
		)
		return model.FallbackSuggestions()
	}
	return suggestions
}

func (s *LLMService) suggest(ctx context.Context, summary string) (*model.Suggestions, error) {
	prompt, err := renderTemplate("advice", struct{ Summary string }{Summary: summary})
	if err != nil {
		return nil, err
	}

	// Both keys are required and nothing else is accepted
	var payload struct {
		PrimarySuggestion    *string   `json:"primarySuggestion"`
		SecondarySuggestions *[]string `json:"secondarySuggestions"`
	}
	if err := s.generateJSON(ctx, prompt, &payload, decodeStrict); err != nil {
		return nil, err
	}

	if payload.PrimarySuggestion == nil || strings.TrimSpace(*payload.PrimarySuggestion) == "" {
		return nil, goerr.New("LLM response missing primary suggestion",
			goerr.T(ErrTagMissingField),
			goerr.V("field", "primarySuggestion"))
	}
	if payload.SecondarySuggestions == nil {
		return nil, goerr.New("LLM response missing secondary suggestions",
			goerr.T(ErrTagMissingField),
			goerr.V("field", "secondarySuggestions"))
	}

	secondary := make([]string, 0, len(*payload.SecondarySuggestions))
	for _, item := range *payload.SecondarySuggestions {
		if item = strings.TrimSpace(item); item != "" {
			secondary = append(secondary, item)
		}
	}

	return &model.Suggestions{
		PrimarySuggestion:    strings.TrimSpace(*payload.PrimarySuggestion),
		SecondarySuggestions: secondary,
	}, nil
}

// GenerateTestCase drafts a test case from a user story, requirement or code snippet
func (s *LLMService) GenerateTestCase(ctx context.Context, content string) (*model.GeneratedTestCase, error) {
	if strings.TrimSpace(content) == "" {
		return nil, goerr.New("content is required", goerr.T(model.ErrTagValidation))
	}

	prompt, err := renderTemplate("test_case", struct{ Content string }{Content: content})
	if err != nil {
		return nil, err
	}

	var generated model.GeneratedTestCase
	if err := s.generateJSON(ctx, prompt, &generated, decodeLenient); err != nil {
		return nil, err
	}

	// Validate response
	fields := []struct {
		name  string
		value string
	}{
		{"test_case_description", generated.Description},
		{"preconditions", generated.Preconditions},
		{"test_steps", generated.TestSteps},
		{"expected_results", generated.ExpectedResults},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, goerr.New("LLM response missing "+f.name,
				goerr.T(ErrTagMissingField),
				goerr.V("field", f.name))
		}
	}

	return &generated, nil
}

type decodeMode int

const (
	decodeLenient decodeMode = iota
	// decodeStrict rejects unknown keys and trailing data
	decodeStrict
)

// generateJSON runs a single JSON-mode completion under the configured timeout and decodes it into out
func (s *LLMService) generateJSON(ctx context.Context, prompt string, out any, mode decodeMode) error {
	if s.llmClient == nil {
		return goerr.New("LLM client is not configured", goerr.T(ErrTagNotConfigured))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Create session with JSON content type
	session, err := s.llmClient.NewSession(ctx, gollem.WithSessionContentType(gollem.ContentTypeJSON))
	if err != nil {
		return goerr.Wrap(err, "failed to create LLM session")
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return goerr.Wrap(err, "failed to generate LLM response",
			goerr.V("timeout", s.timeout.String()))
	}

	if response == nil || len(response.Texts) == 0 || strings.TrimSpace(response.Texts[0]) == "" {
		return goerr.New("empty response from LLM",
			goerr.T(ErrTagEmptyResponse))
	}

	if err := decodeJSON(stripCodeFence(response.Texts[0]), out, mode); err != nil {
		return goerr.Wrap(err, "failed to parse LLM response as JSON",
			goerr.V("response", response.Texts[0]),
			goerr.T(ErrTagInvalidJSON))
	}

	return nil
}

func decodeJSON(text string, out any, mode decodeMode) error {
	if mode == decodeLenient {
		return json.Unmarshal([]byte(text), out)
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return goerr.New("unexpected data after JSON object")
	}
	return nil
}

// stripCodeFence removes a surrounding ```json fence some models add even in JSON mode
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// renderTemplate renders templates/<name>.md with data
func renderTemplate(name string, data any) (string, error) {
	// Load template from embedded filesystem
	templateContent, err := templateFS.ReadFile("templates/" + name + ".md")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read prompt template",
			goerr.V("template", name),
			goerr.T(ErrTagTemplateFailure))
	}

	tmpl, err := template.New(name).Parse(string(templateContent))
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse prompt template",
			goerr.V("template", name),
			goerr.T(ErrTagTemplateFailure))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute prompt template",
			goerr.V("template", name),
			goerr.T(ErrTagTemplateFailure))
	}

	return buf.String(), nil
}

var (
	_ interfaces.Advisor           = (*LLMService)(nil)
	_ interfaces.TestCaseGenerator = (*LLMService)(nil)
)
