package main

import (
	"net/http"

	"github.com/diewo77/go-immobiliare/flash"
	"github.com/diewo77/go-immobiliare/internal/config"
	"github.com/diewo77/go-immobiliare/internal/db"
	"github.com/diewo77/go-immobiliare/internal/handlers"
	"github.com/diewo77/go-immobiliare/internal/middleware"
	"github.com/diewo77/go-immobiliare/internal/repository"
	"github.com/diewo77/go-immobiliare/internal/services"
	"github.com/diewo77/go-immobiliare/view"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	handler http.Handler
}

// NewApp wires repositories, handlers and middleware on top of the store.
func NewApp(store *db.Provider, cfg config.Server, log *zap.Logger) *App {
	properties := repository.NewPropertyRepository(store)
	clients := repository.NewClientRepository(store)
	renderer := view.New(cfg.App.Dev)
	messages := flash.New(cfg.App.FlashSecret, cfg.App.SecureCookies)

	app := &App{mux: http.NewServeMux()}
	app.setupRoutes(routes{
		dashboard:  handlers.NewDashboardHandler(services.NewDashboardService(properties, clients), renderer, messages, log),
		properties: handlers.NewPropertyHandler(properties, clients, renderer, messages, log),
		clients:    handlers.NewClientHandler(clients, properties, renderer, messages, log),
		health:     handlers.NewHealthHandler(store, log),
		metrics:    cfg.App.Metrics,
	})

	// Metrics must sit right on the mux to see the matched pattern.
	var h http.Handler = middleware.Metrics(app.mux)
	h = middleware.Prefs(h)
	h = middleware.Logging(log.Named("http"))(h)
	h = middleware.Recover(log)(h)
	app.handler = middleware.RequestID(h)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

type routes struct {
	dashboard  *handlers.DashboardHandler
	properties *handlers.PropertyHandler
	clients    *handlers.ClientHandler
	health     *handlers.HealthHandler
	metrics    bool
}

// setupRoutes configures all application routes. Deletions are plain links in the
// list pages, hence GET.
func (a *App) setupRoutes(rt routes) {
	a.mux.HandleFunc("GET /{$}", rt.dashboard.Show)

	ph := rt.properties
	a.mux.HandleFunc("GET /immobili", ph.List)
	a.mux.HandleFunc("GET /immobili/export", ph.Export)
	a.mux.HandleFunc("GET /aggiungi_immobile", ph.New)
	a.mux.HandleFunc("GET /modifica_immobile/{id}", ph.Edit)
	a.mux.HandleFunc("POST /salva_immobile", ph.Save)
	a.mux.HandleFunc("GET /elimina_immobile/{id}", ph.Delete)

	ch := rt.clients
	a.mux.HandleFunc("GET /clienti", ch.List)
	a.mux.HandleFunc("GET /clienti/export", ch.Export)
	a.mux.HandleFunc("GET /aggiungi_cliente", ch.New)
	a.mux.HandleFunc("GET /modifica_cliente/{id}", ch.Edit)
	a.mux.HandleFunc("POST /salva_cliente", ch.Save)
	a.mux.HandleFunc("GET /elimina_cliente/{id}", ch.Delete)

	a.mux.HandleFunc("GET /test_connection", rt.health.TestConnection)
	if rt.metrics {
		a.mux.Handle("GET /metrics", promhttp.Handler())
	}
}
