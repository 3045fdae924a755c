package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"github.com/secmon-lab/tessera/pkg/utils/apperr"
	"github.com/secmon-lab/tessera/pkg/utils/async"
)

// DegradedHeader is set on metric responses computed from defaults after a store failure
const DegradedHeader = "X-Tessera-Degraded"

// maxBodySize bounds request bodies of POST endpoints
const maxBodySize = 1 << 20

type generateTestCaseRequest struct {
	Content string `json:"content"`
}

type digestRequest struct {
	Channel string `json:"channel"`
}

// requestParams extracts the project ID and the optional asOf query parameter
func (s *Server) requestParams(r *http.Request) (types.ProjectID, time.Time, error) {
	projectID := types.ProjectID(chi.URLParam(r, "projectID"))
	if projectID == "" {
		return "", time.Time{}, goerr.New("project ID is required", goerr.T(model.ErrTagValidation))
	}

	raw := r.URL.Query().Get("asOf")
	if raw == "" {
		return projectID, s.now(), nil
	}

	asOf, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "", time.Time{}, goerr.Wrap(err, "asOf must be an RFC 3339 timestamp",
			goerr.V("asOf", raw),
			goerr.T(model.ErrTagValidation))
	}
	return projectID, asOf, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, status int) {
	apperr.Handle(r.Context(), err)
	writeError(w, r, err, status)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	projectID, asOf, err := s.requestParams(r)
	if err != nil {
		s.fail(w, r, err, statusOf(err))
		return
	}

	dashboard, err := s.useCases.Dashboard.Compose(r.Context(), projectID, asOf)
	if err != nil {
		s.fail(w, r, err, statusOf(err))
		return
	}

	writeComputed(w, r, dashboard, dashboard.Degraded)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	projectID, asOf, err := s.requestParams(r)
	if err != nil {
		s.fail(w, r, err, statusOf(err))
		return
	}

	report, err := s.useCases.Analytics.Report(r.Context(), projectID, asOf)
	if err != nil {
		s.fail(w, r, err, statusOf(err))
		return
	}

	writeComputed(w, r, report, report.Degraded)
}

func (s *Server) handleExecutionMetrics(w http.ResponseWriter, r *http.Request) {
	projectID, asOf, err := s.requestParams(r)
	if err != nil {
		s.fail(w, r, err, statusOf(err))
		return
	}

	if !s.ensureProject(w, r, projectID) {
		return
	}

	result := s.useCases.Analytics.ExecutionMetrics(r.Context(), projectID, asOf)
	writeComputed(w, r, result.Value, result.Degraded)
}

func (s *Server) handleDefectMetrics(w http.ResponseWriter, r *http.Request) {
	projectID, _, err := s.requestParams(r)
	if err != nil {
		s.fail(w, r, err, statusOf(err))
		return
	}

	if !s.ensureProject(w, r, projectID) {
		return
	}

	result := s.useCases.Analytics.DefectMetrics(r.Context(), projectID)
	writeComputed(w, r, result.Value, result.Degraded)
}

func (s *Server) handleExecutionTrend(w http.ResponseWriter, r *http.Request) {
	projectID, asOf, err := s.requestParams(r)
	if err != nil {
		s.fail(w, r, err, statusOf(err))
		return
	}

	if !s.ensureProject(w, r, projectID) {
		return
	}

	result := s.useCases.Analytics.ExecutionTrend(r.Context(), projectID, asOf)
	writeComputed(w, r, result.Value, result.Degraded)
}

// ensureProject writes 404 and returns false when the project does not exist
func (s *Server) ensureProject(w http.ResponseWriter, r *http.Request, projectID types.ProjectID) bool {
	if _, err := s.useCases.Analytics.Project(r.Context(), projectID); err != nil {
		s.fail(w, r, err, statusOf(err))
		return false
	}
	return true
}

func writeComputed(w http.ResponseWriter, r *http.Request, value any, degraded bool) {
	if degraded {
		w.Header().Set(DegradedHeader, "true")
	}
	writeJSON(w, r, http.StatusOK, value)
}

func (s *Server) handleGenerateTestCase(w http.ResponseWriter, r *http.Request) {
	var req generateTestCaseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		s.fail(w, r, goerr.Wrap(err, "invalid request body", goerr.T(model.ErrTagValidation)), http.StatusBadRequest)
		return
	}

	generated, err := s.useCases.Generator.GenerateTestCase(r.Context(), req.Content)
	if err != nil {
		status := http.StatusBadGateway
		if goerr.HasTag(err, model.ErrTagValidation) {
			status = http.StatusBadRequest
		}
		s.fail(w, r, err, status)
		return
	}

	writeJSON(w, r, http.StatusOK, generated)
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	projectID, asOf, err := s.requestParams(r)
	if err != nil {
		s.fail(w, r, err, statusOf(err))
		return
	}

	var req digestRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
			s.fail(w, r, goerr.Wrap(err, "invalid request body", goerr.T(model.ErrTagValidation)), http.StatusBadRequest)
			return
		}
	}

	channelID := types.ChannelID(req.Channel)
	async.Dispatch(r.Context(), func(ctx context.Context) error {
		return s.useCases.Digest.Post(ctx, projectID, channelID, asOf)
	})

	writeJSON(w, r, http.StatusAccepted, map[string]string{
		"status": "accepted",
	})
}
