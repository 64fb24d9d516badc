package httpapi

import (
	"net/http"

	"github.com/greenpitch/dotball-tracker/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger, internalJobToken string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("POST /v1/internal/jobs/daily-sync",
		RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunDailySyncJob)))

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}
