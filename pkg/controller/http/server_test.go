package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"
	controller "github.com/secmon-lab/tessera/pkg/controller/http"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"github.com/secmon-lab/tessera/pkg/repository"
	"github.com/secmon-lab/tessera/pkg/service/llm"
	"github.com/secmon-lab/tessera/pkg/usecase"
)

var now = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

type digestCall struct {
	projectID types.ProjectID
	channelID types.ChannelID
	asOf      time.Time
}

// fakeDigest reports each call on a channel
type fakeDigest struct {
	calls chan digestCall
}

func (d *fakeDigest) Post(ctx context.Context, projectID types.ProjectID, channelID types.ChannelID, asOf time.Time) error {
	d.calls <- digestCall{projectID: projectID, channelID: channelID, asOf: asOf}
	return nil
}

// newLLMClient answers every prompt with text
func newLLMClient(text string, err error) gollem.LLMClient {
	return &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					if err != nil {
						return nil, err
					}
					return &gollem.Response{Texts: []string{text}}, nil
				},
			}, nil
		},
	}
}

type testEnv struct {
	server    *controller.Server
	projectID types.ProjectID
	digest    *fakeDigest
}

func seed(t *testing.T, repo interfaces.Repository) types.ProjectID {
	t.Helper()
	ctx := context.Background()

	project, err := model.NewProject("Checkout", "checkout flow")
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.PutProject(ctx, project)).Required()

	suite := &model.TestSuite{ID: types.NewTestSuiteID(), ProjectID: project.ID, Name: "Regression", IsActive: true, CreatedAt: now}
	gt.NoError(t, repo.PutTestSuite(ctx, suite)).Required()

	for i := 0; i < 4; i++ {
		tc := &model.TestCase{ID: types.NewTestCaseID(), SuiteID: suite.ID, Title: "case", IsActive: true, CreatedAt: now, UpdatedAt: now}
		gt.NoError(t, repo.PutTestCase(ctx, tc)).Required()

		status := types.ExecutionStatusPassed
		if i == 3 {
			status = types.ExecutionStatusFailed
		}
		exec := &model.TestExecution{ID: types.NewExecutionID(), TestCaseID: tc.ID, Status: status, StartedAt: now.Add(-time.Duration(i+1) * time.Hour)}
		gt.NoError(t, repo.PutExecution(ctx, exec)).Required()
	}

	defect := &model.Defect{
		ID: types.NewDefectID(), ProjectID: project.ID, Title: "card declined",
		Status: types.DefectStatusOpen, Severity: types.SeverityCritical,
		CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
	}
	gt.NoError(t, repo.PutDefect(ctx, defect)).Required()

	return project.ID
}

func newTestEnv(t *testing.T, repo interfaces.Repository, llmClient gollem.LLMClient) *testEnv {
	t.Helper()

	projectID := types.ProjectID("p1")
	if repo == nil {
		mem := repository.NewMemory()
		projectID = seed(t, mem)
		repo = mem
	}

	llmSvc := llm.NewLLMService(llmClient)
	dashboardUC := usecase.NewDashboardUseCase(repo, llmSvc)
	digest := &fakeDigest{calls: make(chan digestCall, 1)}

	server, err := controller.NewServer(context.Background(), ":0", &controller.UseCases{
		Analytics: usecase.NewAnalyticsUseCase(repo, llmSvc),
		Dashboard: dashboardUC,
		Generator: llmSvc,
		Digest:    digest,
	}, controller.WithClock(func() time.Time { return now }))
	gt.NoError(t, err).Required()

	return &testEnv{server: server, projectID: projectID, digest: digest}
}

func (e *testEnv) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.server.Handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(t, http.MethodGet, "/health", "")
	gt.Equal(t, w.Code, http.StatusOK)

	resp := decode[map[string]string](t, w)
	gt.Equal(t, resp["status"], "healthy")
	gt.Equal(t, resp["service"], "tessera")
}

func TestDashboard(t *testing.T) {
	client := newLLMClient(`{"primarySuggestion":"Fix the failing checkout case","secondarySuggestions":["Close the critical defect"]}`, nil)
	env := newTestEnv(t, nil, client)

	w := env.do(t, http.MethodGet, "/api/projects/"+env.projectID.String()+"/dashboard", "")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Header().Get("Content-Type"), "application/json")
	gt.Equal(t, w.Header().Get(controller.DegradedHeader), "")

	dashboard := decode[model.Dashboard](t, w)
	gt.Equal(t, dashboard.Project.ID, env.projectID)
	gt.Equal(t, dashboard.Stats.TotalTestCases, 4)
	gt.Equal(t, dashboard.Stats.TotalExecutions, 4)
	gt.Equal(t, dashboard.Stats.PassedExecutions, 3)
	gt.Equal(t, dashboard.Stats.PassedPercentage, 75.0)
	gt.Equal(t, dashboard.Stats.HighSeverityDefects, 1)
	gt.A(t, dashboard.Metrics).Length(4)
	gt.A(t, dashboard.QuickActions).Length(4)
	gt.Equal(t, dashboard.Suggestions.PrimarySuggestion, "Fix the failing checkout case")
}

func TestDashboard_LLMFailureUsesFallback(t *testing.T) {
	env := newTestEnv(t, nil, newLLMClient("", errors.New("deadline exceeded")))

	w := env.do(t, http.MethodGet, "/api/projects/"+env.projectID.String()+"/dashboard", "")
	gt.Equal(t, w.Code, http.StatusOK)

	dashboard := decode[model.Dashboard](t, w)
	gt.Equal(t, *dashboard.Suggestions, *model.FallbackSuggestions())
}

func TestDashboard_NotFound(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.do(t, http.MethodGet, "/api/projects/"+types.NewProjectID().String()+"/dashboard", "")
	gt.Equal(t, w.Code, http.StatusNotFound)
	resp := decode[map[string]string](t, w)
	gt.S(t, resp["error"]).Contains("project not found")
}

func TestDashboard_InvalidAsOf(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.do(t, http.MethodGet, "/api/projects/"+env.projectID.String()+"/dashboard?asOf=yesterday", "")
	gt.Equal(t, w.Code, http.StatusBadRequest)
}

func TestDashboard_StoreFailure(t *testing.T) {
	errStore := errors.New("too many connections")
	repo := &mocks.RepositoryMock{
		GetProjectFunc: func(ctx context.Context, id types.ProjectID) (*model.Project, error) {
			return &model.Project{ID: id, Name: "Checkout"}, nil
		},
		CountActiveTestCasesFunc: func(ctx context.Context, projectID types.ProjectID) (int, error) {
			return 0, errStore
		},
		ListExecutionsFunc: func(ctx context.Context, projectID types.ProjectID, from, to time.Time) ([]*model.TestExecution, error) {
			return nil, errStore
		},
		ListDefectsFunc: func(ctx context.Context, projectID types.ProjectID) ([]*model.Defect, error) {
			return nil, errStore
		},
	}
	env := newTestEnv(t, repo, nil)

	w := env.do(t, http.MethodGet, "/api/projects/p1/dashboard", "")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Header().Get(controller.DegradedHeader), "true")
	dashboard := decode[model.Dashboard](t, w)
	gt.Equal(t, dashboard.Stats, model.DashboardStats{})

	w = env.do(t, http.MethodGet, "/api/projects/p1/analytics/defects", "")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Header().Get(controller.DegradedHeader), "true")
	defects := decode[model.DefectMetrics](t, w)
	gt.Equal(t, defects.AvgResolutionTime, "N/A")
	gt.A(t, defects.Distribution).Length(4)

	w = env.do(t, http.MethodGet, "/api/projects/p1/analytics", "")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Header().Get(controller.DegradedHeader), "true")
	report := decode[model.AnalyticsReport](t, w)
	gt.Equal(t, report.ExecutionMetrics, model.ExecutionMetrics{})
}

func TestAnalytics(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	base := "/api/projects/" + env.projectID.String() + "/analytics"

	t.Run("report", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base, "")
		gt.Equal(t, w.Code, http.StatusOK)
		report := decode[model.AnalyticsReport](t, w)
		gt.Equal(t, report.ExecutionMetrics.Passed, 3)
		gt.Equal(t, report.ExecutionMetrics.CoveragePercent, 75.0)
		gt.A(t, report.Trend).Length(14)
		gt.Equal(t, report.Suggestions.PrimarySuggestion, model.FallbackSuggestions().PrimarySuggestion)
	})

	t.Run("executions", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+"/executions", "")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get(controller.DegradedHeader), "")
		m := decode[model.ExecutionMetrics](t, w)
		gt.Equal(t, m, model.ExecutionMetrics{TotalTestCases: 4, TotalExecutions: 4, Passed: 3, Failed: 1, CoveragePercent: 75.0})
	})

	t.Run("executions with asOf before any execution", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+"/executions?asOf=2024-01-01T00:00:00Z", "")
		gt.Equal(t, w.Code, http.StatusOK)
		m := decode[model.ExecutionMetrics](t, w)
		gt.Equal(t, m.TotalExecutions, 0)
		gt.Equal(t, m.TotalTestCases, 4)
	})

	t.Run("defects", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+"/defects", "")
		gt.Equal(t, w.Code, http.StatusOK)
		m := decode[model.DefectMetrics](t, w)
		gt.Equal(t, m.Total, 1)
		gt.Equal(t, m.Distribution[0], model.SeverityCount{Severity: types.SeverityCritical, Count: 1})
	})

	t.Run("trend", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+"/trend", "")
		gt.Equal(t, w.Code, http.StatusOK)
		trend := decode[[]model.TrendPoint](t, w)
		gt.A(t, trend).Length(14)
		gt.Equal(t, trend[13], model.TrendPoint{Date: "2024-03-20", Passed: 3, Failed: 1})
	})

	t.Run("report is not degraded", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base, "")
		gt.Equal(t, w.Header().Get(controller.DegradedHeader), "")
	})

	t.Run("unknown project", func(t *testing.T) {
		unknown := "/api/projects/" + types.NewProjectID().String() + "/analytics"
		for _, path := range []string{unknown, unknown + "/executions", unknown + "/defects", unknown + "/trend"} {
			w := env.do(t, http.MethodGet, path, "")
			gt.Equal(t, w.Code, http.StatusNotFound)
			resp := decode[map[string]string](t, w)
			gt.S(t, resp["error"]).Contains("project not found")
		}
	})
}

func TestGenerateTestCase(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newLLMClient(`{"test_case_description":"Login works","preconditions":"User exists","test_steps":"- open\n- submit","expected_results":"Dashboard shown"}`, nil)
		env := newTestEnv(t, nil, client)

		w := env.do(t, http.MethodPost, "/api/test-cases/generate", `{"content":"As a user I can log in"}`)
		gt.Equal(t, w.Code, http.StatusOK)
		resp := decode[map[string]string](t, w)
		gt.Equal(t, resp["test_case_description"], "Login works")
		gt.Equal(t, resp["expected_results"], "Dashboard shown")
	})

	t.Run("empty content", func(t *testing.T) {
		env := newTestEnv(t, nil, newLLMClient("{}", nil))
		w := env.do(t, http.MethodPost, "/api/test-cases/generate", `{"content":""}`)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv(t, nil, newLLMClient("{}", nil))
		w := env.do(t, http.MethodPost, "/api/test-cases/generate", `{"content":`)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("LLM failure", func(t *testing.T) {
		env := newTestEnv(t, nil, newLLMClient("not json", nil))
		w := env.do(t, http.MethodPost, "/api/test-cases/generate", `{"content":"story"}`)
		gt.Equal(t, w.Code, http.StatusBadGateway)
		resp := decode[map[string]string](t, w)
		gt.True(t, strings.Contains(resp["error"], "JSON"))
	})
}

func TestDigest(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.do(t, http.MethodPost, "/api/projects/"+env.projectID.String()+"/digest?asOf=2024-03-19T00:00:00Z", `{"channel":"C123"}`)
	gt.Equal(t, w.Code, http.StatusAccepted)

	select {
	case call := <-env.digest.calls:
		gt.Equal(t, call.projectID, env.projectID)
		gt.Equal(t, call.channelID, types.ChannelID("C123"))
		gt.True(t, call.asOf.Equal(time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC)))
	case <-time.After(time.Second):
		t.Fatal("digest was not dispatched")
	}
}

func TestDigest_DefaultChannel(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.do(t, http.MethodPost, "/api/projects/"+env.projectID.String()+"/digest", "")
	gt.Equal(t, w.Code, http.StatusAccepted)

	select {
	case call := <-env.digest.calls:
		gt.Equal(t, call.channelID, types.ChannelID(""))
		gt.True(t, call.asOf.Equal(now))
	case <-time.After(time.Second):
		t.Fatal("digest was not dispatched")
	}
}

func TestNewServer_RequiresUseCases(t *testing.T) {
	_, err := controller.NewServer(context.Background(), ":0", &controller.UseCases{})
	gt.Error(t, err)
}

func TestStatusOf(t *testing.T) {
	gt.Equal(t, controller.StatusOf(model.ErrProjectNotFound), http.StatusNotFound)
	gt.Equal(t, controller.StatusOf(errors.New("boom")), http.StatusInternalServerError)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(t, http.MethodOptions, "/api/test-cases/generate", "")
	gt.Equal(t, w.Code, http.StatusNoContent)
	gt.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "*")
}
