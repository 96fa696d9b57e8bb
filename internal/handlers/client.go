package handlers

import (
	"bytes"
	"net/http"

	"github.com/diewo77/go-immobiliare/flash"
	"github.com/diewo77/go-immobiliare/i18n"
	"github.com/diewo77/go-immobiliare/internal/forms"
	"github.com/diewo77/go-immobiliare/internal/models"
	"github.com/diewo77/go-immobiliare/internal/repository"
	"github.com/diewo77/go-immobiliare/internal/services"
	"github.com/diewo77/go-immobiliare/validation"
	"github.com/diewo77/go-immobiliare/view"
	"go.uber.org/zap"
)

const clientsPath = "/clienti"

type ClientHandler struct {
	page
	clients    *repository.ClientRepository
	properties *repository.PropertyRepository
}

func NewClientHandler(clients *repository.ClientRepository, properties *repository.PropertyRepository, v *view.Renderer, fs *flash.Store, log *zap.Logger) *ClientHandler {
	return &ClientHandler{
		page:       page{view: v, flash: fs, log: log.Named("clients")},
		clients:    clients,
		properties: properties,
	}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	term := searchTerm(r)
	data := map[string]any{"Search": term}

	clients, err := h.clients.List(r.Context(), term)
	if err != nil {
		h.log.Warn("list clients", zap.String("search", term), zap.Error(err))
		data["Flash"] = inlineError(errorText(lang, "client", "list", err))
	}
	data["Clients"] = clients
	h.render(w, r, "clients/index.html", data)
}

func (h *ClientHandler) Export(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	term := searchTerm(r)

	clients, err := h.clients.List(r.Context(), term)
	if err != nil {
		h.fail(w, r, clientsPath, errorText(lang, "client", "list", err))
		return
	}
	var buf bytes.Buffer
	if err := services.ExportClients(&buf, lang, clients); err != nil {
		h.log.Error("export clients", zap.Error(err))
		h.fail(w, r, clientsPath, i18n.Tf(lang, "flash.export_error", err.Error()))
		return
	}
	w.Header().Set("Content-Type", services.XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.ExportFilename("clienti", term)+`"`)
	_, _ = buf.WriteTo(w)
}

func (h *ClientHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, forms.NewClientForm(), nil, nil, nil)
}

// Edit shows the client form together with the properties linked to the client.
func (h *ClientHandler) Edit(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	c, err := h.clients.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, clientsPath, errorText(lang, "client", "load", err))
		return
	}
	props, err := h.properties.ListByClient(r.Context(), c.Code)
	if err != nil {
		h.log.Warn("list client properties", zap.String("client", c.Code), zap.Error(err))
		msg := inlineError(errorText(lang, "property", "list", err))
		h.renderForm(w, r, forms.ClientFromModel(c), nil, nil, &msg)
		return
	}
	h.renderForm(w, r, forms.ClientFromModel(c), props, nil, nil)
}

func (h *ClientHandler) Save(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	f := forms.ClientFromValues(r.PostForm)
	if v := f.Validate(); !v.Empty() {
		msg := inlineError(i18n.T(lang, "flash.form_invalid"))
		h.renderForm(w, r, f, nil, v, &msg)
		return
	}

	res, err := h.clients.Save(r.Context(), f)
	if err != nil {
		h.log.Warn("save client", zap.String("code", f.Code), zap.Error(err))
		if isConstraint(err) {
			msg := inlineError(errorText(lang, "client", "save", err))
			h.renderForm(w, r, f, nil, nil, &msg)
			return
		}
		h.fail(w, r, clientsPath, errorText(lang, "client", "save", err))
		return
	}
	key := "flash.client_updated"
	if res.Created {
		key = "flash.client_created"
	}
	h.log.Info("client saved", zap.String("code", res.Code), zap.Bool("created", res.Created))
	h.succeed(w, r, clientsPath, i18n.Tf(lang, key, res.Code))
}

// Delete removes a client. Its properties stay, without a client.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	code := r.PathValue("id")
	if err := h.clients.Delete(r.Context(), code); err != nil {
		h.log.Warn("delete client", zap.String("code", code), zap.Error(err))
		h.fail(w, r, clientsPath, errorText(lang, "client", "delete", err))
		return
	}
	h.succeed(w, r, clientsPath, i18n.T(lang, "flash.client_deleted"))
}

func (h *ClientHandler) renderForm(w http.ResponseWriter, r *http.Request, f forms.ClientForm, props []models.Property, errs validation.Violations, msg *flash.Message) {
	if errs == nil {
		errs = validation.Violations{}
	}
	data := map[string]any{
		"Form":       f,
		"Errors":     errs,
		"Properties": props,
	}
	if msg != nil {
		data["Flash"] = *msg
	}
	h.render(w, r, "clients/form.html", data)
}
