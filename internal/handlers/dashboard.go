package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/go-immobiliare/flash"
	"github.com/diewo77/go-immobiliare/i18n"
	"github.com/diewo77/go-immobiliare/internal/db"
	"github.com/diewo77/go-immobiliare/internal/services"
	"github.com/diewo77/go-immobiliare/view"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	page
	stats *services.DashboardService
}

func NewDashboardHandler(stats *services.DashboardService, v *view.Renderer, fs *flash.Store, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{page: page{view: v, flash: fs, log: log.Named("dashboard")}, stats: stats}
}

// Show renders the counters. When the store is unreachable the page still renders
// with zero counts and an error message.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	data := map[string]any{}

	st, err := h.stats.Stats(r.Context())
	if err != nil {
		h.log.Warn("dashboard stats", zap.Error(err))
		text := i18n.Tf(lang, "flash.stats_error", err.Error())
		if errors.Is(err, db.ErrConnection) {
			text = i18n.T(lang, "flash.connection_error")
		}
		data["Flash"] = inlineError(text)
	}
	data["Stats"] = st
	h.render(w, r, "dashboard.html", data)
}
