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

const propertiesPath = "/immobili"

type PropertyHandler struct {
	page
	properties *repository.PropertyRepository
	clients    *repository.ClientRepository
}

func NewPropertyHandler(properties *repository.PropertyRepository, clients *repository.ClientRepository, v *view.Renderer, fs *flash.Store, log *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		page:       page{view: v, flash: fs, log: log.Named("properties")},
		properties: properties,
		clients:    clients,
	}
}

// List shows every property, or those matching ?search=.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	term := searchTerm(r)
	data := map[string]any{"Search": term}

	props, err := h.properties.List(r.Context(), term)
	if err != nil {
		h.log.Warn("list properties", zap.String("search", term), zap.Error(err))
		data["Flash"] = inlineError(errorText(lang, "property", "list", err))
	}
	data["Properties"] = props
	h.render(w, r, "properties/index.html", data)
}

// Export downloads the (filtered) list as an XLSX workbook.
func (h *PropertyHandler) Export(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	term := searchTerm(r)

	props, err := h.properties.List(r.Context(), term)
	if err != nil {
		h.fail(w, r, propertiesPath, errorText(lang, "property", "list", err))
		return
	}
	var buf bytes.Buffer
	if err := services.ExportProperties(&buf, lang, props); err != nil {
		h.log.Error("export properties", zap.Error(err))
		h.fail(w, r, propertiesPath, i18n.Tf(lang, "flash.export_error", err.Error()))
		return
	}
	w.Header().Set("Content-Type", services.XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.ExportFilename("immobili", term)+`"`)
	_, _ = buf.WriteTo(w)
}

// New shows a blank form whose code is the pending placeholder.
func (h *PropertyHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, forms.NewPropertyForm(), nil, nil)
}

// Edit shows the form populated from the stored property.
func (h *PropertyHandler) Edit(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	p, err := h.properties.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, propertiesPath, errorText(lang, "property", "load", err))
		return
	}
	h.renderForm(w, r, forms.PropertyFromModel(p), nil, nil)
}

// Save creates or updates a property depending on whether the submitted code
// identifies a row.
func (h *PropertyHandler) Save(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	f := forms.PropertyFromValues(r.PostForm)
	if v := f.Validate(); !v.Empty() {
		msg := inlineError(i18n.T(lang, "flash.form_invalid"))
		h.renderForm(w, r, f, v, &msg)
		return
	}

	res, err := h.properties.Save(r.Context(), f)
	if err != nil {
		h.log.Warn("save property", zap.String("code", f.Code), zap.Error(err))
		if isConstraint(err) {
			msg := inlineError(errorText(lang, "property", "save", err))
			h.renderForm(w, r, f, nil, &msg)
			return
		}
		h.fail(w, r, propertiesPath, errorText(lang, "property", "save", err))
		return
	}
	key := "flash.property_updated"
	if res.Created {
		key = "flash.property_created"
	}
	h.log.Info("property saved", zap.String("code", res.Code), zap.Bool("created", res.Created))
	h.succeed(w, r, propertiesPath, i18n.Tf(lang, key, res.Code))
}

// Delete removes a property. Deleting a code that does not exist succeeds.
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	code := r.PathValue("id")
	if err := h.properties.Delete(r.Context(), code); err != nil {
		h.log.Warn("delete property", zap.String("code", code), zap.Error(err))
		h.fail(w, r, propertiesPath, errorText(lang, "property", "delete", err))
		return
	}
	h.succeed(w, r, propertiesPath, i18n.T(lang, "flash.property_deleted"))
}

func (h *PropertyHandler) renderForm(w http.ResponseWriter, r *http.Request, f forms.PropertyForm, errs validation.Violations, msg *flash.Message) {
	if errs == nil {
		errs = validation.Violations{}
	}
	data := map[string]any{
		"Form":     f,
		"Errors":   errs,
		"Statuses": models.PropertyStatuses,
	}
	clients, err := h.clients.Options(r.Context())
	if err != nil {
		h.log.Warn("client options", zap.Error(err))
		m := inlineError(errorText(i18n.LangFrom(r.Context()), "client", "list", err))
		msg = &m
	}
	data["Clients"] = clients
	if msg != nil {
		data["Flash"] = *msg
	}
	h.render(w, r, "properties/form.html", data)
}
