package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/greenpitch/dotball-tracker/internal/usecase"
)

type dailySyncRequest struct {
	// Reason is free-form operator context carried into the logs, e.g.
	// "manual rerun after feed outage".
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

func (h *Handler) RunDailySyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDailySyncJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeDailySyncRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	if req.Reason != "" {
		h.logger.InfoContext(ctx, "daily sync triggered via http", "reason", req.Reason)
	}

	result, err := h.syncService.RunDailySync(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "daily sync job failed", "reason", req.Reason, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func decodeDailySyncRequest(r *http.Request) (dailySyncRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req dailySyncRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty body means run with defaults.
			return dailySyncRequest{}, nil
		}
		return dailySyncRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
