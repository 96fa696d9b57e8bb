package forms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/diewo77/go-immobiliare/internal/models"
	"github.com/diewo77/go-immobiliare/validation"
	"github.com/shopspring/decimal"
)

// PropertyForm is the property form as submitted, one string per input.
type PropertyForm struct {
	Code           string `form:"codice"`
	Address        string `form:"indirizzo" validate:"required,max=255"`
	HouseNumber    string `form:"civico" validate:"max=20"`
	City           string `form:"citta" validate:"required,max=100"`
	Zone           string `form:"zona" validate:"max=100"`
	Type           string `form:"tipologia" validate:"max=50"`
	Size           string `form:"superficie" validate:"omitempty,numeric"`
	CommissionYear string `form:"anno_incarico" validate:"omitempty,numeric"`
	Status         string `form:"stato" validate:"max=50"`
	Notes          string `form:"note"`
	ClientCode     string `form:"cliente_codice" validate:"max=10"`
}

// MaxSize is the largest surface the decimal(10,2) column holds.
const MaxSize = 99999999.99

// NewPropertyForm returns the blank creation form.
func NewPropertyForm() PropertyForm {
	return PropertyForm{
		Code:   models.PendingCode,
		Type:   models.DefaultPropertyType,
		Status: models.StatusAvailable,
	}
}

// PropertyFromValues reads a submitted form. Sizes written with a decimal comma
// ("85,5") are accepted.
func PropertyFromValues(v url.Values) PropertyForm {
	return PropertyForm{
		Code:           field(v, "codice"),
		Address:        field(v, "indirizzo"),
		HouseNumber:    field(v, "civico"),
		City:           field(v, "citta"),
		Zone:           field(v, "zona"),
		Type:           field(v, "tipologia"),
		Size:           strings.ReplaceAll(field(v, "superficie"), ",", "."),
		CommissionYear: field(v, "anno_incarico"),
		Status:         field(v, "stato"),
		Notes:          field(v, "note"),
		ClientCode:     field(v, "cliente_codice"),
	}
}

// PropertyFromModel fills the edit form from a stored property.
func PropertyFromModel(p *models.Property) PropertyForm {
	f := PropertyForm{
		Code:        p.Code,
		Address:     p.Address,
		HouseNumber: deref(p.HouseNumber),
		City:        p.City,
		Zone:        deref(p.Zone),
		Type:        p.Type,
		Status:      p.Status,
		Notes:       deref(p.Notes),
		ClientCode:  deref(p.ClientCode),
	}
	if p.Size.Valid {
		f.Size = p.Size.Decimal.String()
	}
	if p.CommissionYear != nil {
		f.CommissionYear = strconv.Itoa(*p.CommissionYear)
	}
	return f
}

// Validate returns the field violations of the form.
func (f PropertyForm) Validate() validation.Violations {
	v := validation.Struct(f)
	if _, bad := v["superficie"]; !bad && f.Size != "" {
		if d, err := decimal.NewFromString(f.Size); err == nil {
			validation.PositiveFloat("superficie", d.InexactFloat64(), v)
			validation.MaxFloat("superficie", d.InexactFloat64(), MaxSize, v)
		}
	}
	if _, bad := v["anno_incarico"]; !bad && f.CommissionYear != "" {
		if y, err := strconv.Atoi(f.CommissionYear); err == nil {
			validation.RangeInt("anno_incarico", y, 1900, 2100, v)
		}
	}
	return v
}

// HasIdentity reports whether the form targets an existing property.
func (f PropertyForm) HasIdentity() bool { return models.HasIdentity(f.Code) }

// Property converts the form into a model. Blank optional fields become nil,
// a blank type or status gets its default. The code is kept only when the form
// has an identity.
func (f PropertyForm) Property() (models.Property, error) {
	p := models.Property{
		Address:     f.Address,
		HouseNumber: optional(f.HouseNumber),
		City:        f.City,
		Zone:        optional(f.Zone),
		Type:        f.Type,
		Status:      f.Status,
		Notes:       optional(f.Notes),
		ClientCode:  optional(f.ClientCode),
	}
	if f.HasIdentity() {
		p.Code = strings.TrimSpace(f.Code)
	}
	if p.Type == "" {
		p.Type = models.DefaultPropertyType
	}
	if p.Status == "" {
		p.Status = models.StatusAvailable
	}
	if f.Size != "" {
		d, err := decimal.NewFromString(f.Size)
		if err != nil {
			return models.Property{}, fmt.Errorf("superficie %q: %w", f.Size, err)
		}
		p.Size = decimal.NewNullDecimal(d)
	}
	if f.CommissionYear != "" {
		y, err := strconv.Atoi(f.CommissionYear)
		if err != nil {
			return models.Property{}, fmt.Errorf("anno_incarico %q: %w", f.CommissionYear, err)
		}
		p.CommissionYear = &y
	}
	return p, nil
}
