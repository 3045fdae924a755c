package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/model"
)

// Handle logs an error raised while serving a request. Validation failures are logged at
// Warn since they are caused by the caller.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	if goerr.HasTag(err, model.ErrTagValidation) {
		logger.Warn("invalid request", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}
