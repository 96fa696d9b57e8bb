package forms

import (
	"net/url"
	"testing"

	"github.com/diewo77/go-immobiliare/internal/models"
	"github.com/diewo77/go-immobiliare/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPropertyFromValuesNormalizes(t *testing.T) {
	f := PropertyFromValues(url.Values{
		"codice":         {" NUOVO "},
		"indirizzo":      {" Via Roma "},
		"civico":         {"  "},
		"citta":          {"Torino"},
		"zona":           {""},
		"tipologia":      {""},
		"superficie":     {"85,5"},
		"anno_incarico":  {"2024"},
		"stato":          {""},
		"note":           {""},
		"cliente_codice": {" "},
	})
	require.True(t, f.Validate().Empty())
	assert.False(t, f.HasIdentity())

	p, err := f.Property()
	require.NoError(t, err)
	assert.Empty(t, p.Code)
	assert.Equal(t, "Via Roma", p.Address)
	assert.Nil(t, p.HouseNumber)
	assert.Nil(t, p.Zone)
	assert.Nil(t, p.Notes)
	assert.Nil(t, p.ClientCode, "a blank client reference must not become an empty string")
	assert.Equal(t, models.DefaultPropertyType, p.Type)
	assert.Equal(t, models.StatusAvailable, p.Status)
	require.True(t, p.Size.Valid)
	assert.True(t, p.Size.Decimal.Equal(decimal.RequireFromString("85.5")))
	require.NotNil(t, p.CommissionYear)
	assert.Equal(t, 2024, *p.CommissionYear)
}

func TestPropertyFormKeepsIdentity(t *testing.T) {
	f := PropertyFromValues(url.Values{"codice": {"SI0007"}, "indirizzo": {"Via Po"}, "citta": {"Asti"}, "cliente_codice": {"SIC0002"}})
	assert.True(t, f.HasIdentity())
	p, err := f.Property()
	require.NoError(t, err)
	assert.Equal(t, "SI0007", p.Code)
	require.NotNil(t, p.ClientCode)
	assert.Equal(t, "SIC0002", *p.ClientCode)
	assert.False(t, p.Size.Valid)
	assert.Nil(t, p.CommissionYear)
}

func TestPropertyValidate(t *testing.T) {
	tests := []struct {
		name string
		form PropertyForm
		want validation.Violations
	}{
		{"missing required", PropertyForm{}, validation.Violations{"indirizzo": "required", "citta": "required"}},
		{"bad size", PropertyForm{Address: "a", City: "b", Size: "tanti"}, validation.Violations{"superficie": "invalid_number"}},
		{"zero size", PropertyForm{Address: "a", City: "b", Size: "0"}, validation.Violations{"superficie": "must_be_positive"}},
		{"size too large", PropertyForm{Address: "a", City: "b", Size: "1000000000"}, validation.Violations{"superficie": "too_large"}},
		{"largest size", PropertyForm{Address: "a", City: "b", Size: "99999999.99"}, validation.Violations{}},
		{"year out of range", PropertyForm{Address: "a", City: "b", CommissionYear: "1850"}, validation.Violations{"anno_incarico": "out_of_range"}},
		{"ok", PropertyForm{Address: "a", City: "b", Size: "120", CommissionYear: "2023"}, validation.Violations{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.form.Validate())
		})
	}
}

func TestPropertyRoundTripThroughModel(t *testing.T) {
	year := 2022
	zone := "Centro"
	p := &models.Property{Code: "SI0003", Address: "Via Garibaldi", City: "Torino", Zone: &zone, Type: "Commerciale", Status: models.StatusSold, Size: decimal.NewNullDecimal(decimal.NewFromInt(60)), CommissionYear: &year}
	f := PropertyFromModel(p)
	assert.Equal(t, "SI0003", f.Code)
	assert.Equal(t, "Centro", f.Zone)
	assert.Equal(t, "60", f.Size)
	assert.Equal(t, "2022", f.CommissionYear)
	assert.Empty(t, f.ClientCode)
}

func TestNewPropertyForm(t *testing.T) {
	f := NewPropertyForm()
	assert.Equal(t, models.PendingCode, f.Code)
	assert.False(t, f.HasIdentity())
}

func TestClientFromValues(t *testing.T) {
	f := ClientFromValues(url.Values{
		"codice":         {""},
		"nome":           {"Mario"},
		"cognome":        {"Rossi"},
		"codice_fiscale": {"rssmra80a01l219x"},
		"email":          {" Mario.Rossi@Example.IT "},
		"telefono":       {""},
		"cap":            {"10100"},
	})
	require.True(t, f.Validate().Empty())
	c := f.Client()
	assert.Empty(t, c.Code)
	require.NotNil(t, c.Email)
	assert.Equal(t, "mario.rossi@example.it", *c.Email)
	require.NotNil(t, c.FiscalCode)
	assert.Equal(t, "RSSMRA80A01L219X", *c.FiscalCode)
	assert.Nil(t, c.Phone)
	assert.Nil(t, c.VATNumber)
	assert.Nil(t, c.Notes)
}

func TestClientValidate(t *testing.T) {
	v := ClientForm{Email: "not-an-email", PostalCode: "101"}.Validate()
	assert.Equal(t, validation.Violations{
		"nome":    "required",
		"cognome": "required",
		"email":   "invalid_email",
		"cap":     "invalid_length",
	}, v)
}

func TestClientFromModel(t *testing.T) {
	email := "a@b.it"
	f := ClientFromModel(&models.Client{Code: "SIC0001", FirstName: "Anna", LastName: "Bianchi", Email: &email})
	assert.Equal(t, "SIC0001", f.Code)
	assert.Equal(t, "a@b.it", f.Email)
	assert.Empty(t, f.Phone)
	assert.True(t, f.HasIdentity())
}
