// Package handlers implements the HTTP endpoints of the agency back office.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/go-immobiliare/flash"
	"github.com/diewo77/go-immobiliare/i18n"
	"github.com/diewo77/go-immobiliare/internal/db"
	"github.com/diewo77/go-immobiliare/internal/repository"
	"github.com/diewo77/go-immobiliare/validation"
	"github.com/diewo77/go-immobiliare/view"
	"go.uber.org/zap"
)

// page holds what every HTML handler needs to answer a request.
type page struct {
	view  *view.Renderer
	flash *flash.Store
	log   *zap.Logger
}

// render pops the pending flash message into data and renders name. Form pages
// always get an Errors map so templates can index it.
func (p page) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if msg, ok := p.flash.Pop(w, r); ok {
		if _, set := data["Flash"]; !set {
			data["Flash"] = msg
		}
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = validation.Violations{}
	}
	if err := p.view.Render(w, r, name, data); err != nil {
		p.log.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// succeed leaves a success message for the next page and sends the browser to target.
func (p page) succeed(w http.ResponseWriter, r *http.Request, target, text string) {
	p.flash.Success(w, text)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// fail is succeed for error messages.
func (p page) fail(w http.ResponseWriter, r *http.Request, target, text string) {
	p.flash.Error(w, text)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func inlineError(text string) flash.Message {
	return flash.Message{Kind: flash.KindError, Text: text}
}

// errorText turns a repository error into a user message. entity is "property" or
// "client" and op names the failed action (list, load, save, delete).
func errorText(lang, entity, op string, err error) string {
	switch {
	case errors.Is(err, db.ErrConnection):
		return i18n.T(lang, "flash.connection_error")
	case errors.Is(err, repository.ErrNotFound):
		return i18n.T(lang, "flash."+entity+"_not_found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		return i18n.T(lang, "flash.duplicate_email")
	case errors.Is(err, db.ErrForeignKey):
		return i18n.T(lang, "flash.property_client_missing")
	default:
		return i18n.Tf(lang, "flash."+entity+"_"+op+"_error", err.Error())
	}
}

// isConstraint reports whether err is a violation the user can fix by editing the form.
func isConstraint(err error) bool {
	return errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, db.ErrForeignKey)
}

func searchTerm(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("search"))
}
