package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/diewo77/go-immobiliare/httpx"
	"github.com/diewo77/go-immobiliare/i18n"
	"go.uber.org/zap"
)

// Pinger reports the version of the store it can reach.
type Pinger interface {
	Ping(ctx context.Context) (string, error)
}

type HealthHandler struct {
	store Pinger
	log   *zap.Logger
}

func NewHealthHandler(store Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{store: store, log: log.Named("health")}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// TestConnection probes the store. It answers in plain text, or in JSON when the
// client accepts application/json. A failed probe is a 503.
func (h *HealthHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	wantJSON := httpx.WantsJSON(r)

	version, err := h.store.Ping(r.Context())
	if err != nil {
		h.log.Warn("connection test failed", zap.Error(err))
		if wantJSON {
			httpx.JSONError(w, http.StatusServiceUnavailable, "database_unavailable", err.Error())
			return
		}
		writeText(w, http.StatusServiceUnavailable, i18n.Tf(lang, "health.failed", err.Error()))
		return
	}
	if wantJSON {
		httpx.JSON(w, http.StatusOK, healthResponse{Status: "ok", Version: version})
		return
	}
	writeText(w, http.StatusOK, i18n.Tf(lang, "health.ok", version))
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintln(w, text)
}
