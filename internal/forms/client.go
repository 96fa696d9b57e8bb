package forms

import (
	"net/url"
	"strings"

	"github.com/diewo77/go-immobiliare/internal/models"
	"github.com/diewo77/go-immobiliare/validation"
)

// ClientForm is the client form as submitted.
type ClientForm struct {
	Code       string `form:"codice"`
	FirstName  string `form:"nome" validate:"required,max=100"`
	LastName   string `form:"cognome" validate:"required,max=100"`
	FiscalCode string `form:"codice_fiscale" validate:"omitempty,alphanum,max=16"`
	VATNumber  string `form:"partita_iva" validate:"max=20"`
	Phone      string `form:"telefono" validate:"max=30"`
	Email      string `form:"email" validate:"omitempty,email,max=255"`
	Address    string `form:"indirizzo" validate:"max=255"`
	City       string `form:"citta" validate:"max=100"`
	PostalCode string `form:"cap" validate:"omitempty,numeric,len=5"`
	Notes      string `form:"note"`
}

// NewClientForm returns the blank creation form.
func NewClientForm() ClientForm {
	return ClientForm{Code: models.PendingCode}
}

// ClientFromValues reads a submitted form. The fiscal code is upper-cased and
// the email lower-cased, so the unique email index ignores case.
func ClientFromValues(v url.Values) ClientForm {
	return ClientForm{
		Code:       field(v, "codice"),
		FirstName:  field(v, "nome"),
		LastName:   field(v, "cognome"),
		FiscalCode: strings.ToUpper(field(v, "codice_fiscale")),
		VATNumber:  field(v, "partita_iva"),
		Phone:      field(v, "telefono"),
		Email:      strings.ToLower(field(v, "email")),
		Address:    field(v, "indirizzo"),
		City:       field(v, "citta"),
		PostalCode: field(v, "cap"),
		Notes:      field(v, "note"),
	}
}

// ClientFromModel fills the edit form from a stored client.
func ClientFromModel(c *models.Client) ClientForm {
	return ClientForm{
		Code:       c.Code,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		FiscalCode: deref(c.FiscalCode),
		VATNumber:  deref(c.VATNumber),
		Phone:      deref(c.Phone),
		Email:      deref(c.Email),
		Address:    deref(c.Address),
		City:       deref(c.City),
		PostalCode: deref(c.PostalCode),
		Notes:      deref(c.Notes),
	}
}

func (f ClientForm) Validate() validation.Violations { return validation.Struct(f) }

// HasIdentity reports whether the form targets an existing client.
func (f ClientForm) HasIdentity() bool { return models.HasIdentity(f.Code) }

// Client converts the form into a model with blank optional fields set to nil.
func (f ClientForm) Client() models.Client {
	c := models.Client{
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		FiscalCode: optional(f.FiscalCode),
		VATNumber:  optional(f.VATNumber),
		Phone:      optional(f.Phone),
		Email:      optional(strings.ToLower(f.Email)),
		Address:    optional(f.Address),
		City:       optional(f.City),
		PostalCode: optional(f.PostalCode),
		Notes:      optional(f.Notes),
	}
	if f.HasIdentity() {
		c.Code = strings.TrimSpace(f.Code)
	}
	return c
}
