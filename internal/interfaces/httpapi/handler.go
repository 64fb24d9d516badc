package httpapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/greenpitch/dotball-tracker/internal/platform/logging"
	"github.com/greenpitch/dotball-tracker/internal/usecase"
)

// SyncRunner is the driver surface the handler needs.
type SyncRunner interface {
	RunDailySync(ctx context.Context) (usecase.SyncResult, error)
}

type Handler struct {
	syncService SyncRunner
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(syncService SyncRunner, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		syncService: syncService,
		logger:      logger,
		validator:   validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
