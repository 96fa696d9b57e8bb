package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property statuses used by convention. The column is free text.
const (
	StatusAvailable   = "Disponibile"
	StatusActive      = "Attivo"
	StatusNegotiation = "Trattativa"
	StatusSold        = "Venduto"
	StatusRented      = "Affittato"
	StatusWithdrawn   = "Ritirato"
)

// DefaultPropertyType is stored when the form leaves the type blank.
const DefaultPropertyType = "Abitativo"

// PropertyStatuses lists the statuses offered by the property form.
var PropertyStatuses = []string{StatusAvailable, StatusActive, StatusNegotiation, StatusSold, StatusRented, StatusWithdrawn}

// AvailableStatuses are the statuses counted as available on the dashboard.
var AvailableStatuses = []string{StatusAvailable, StatusActive}

// Property is a real-estate unit handled by the agency.
type Property struct {
	Code           string              `gorm:"column:codice;primaryKey;size:10" json:"code"`
	Address        string              `gorm:"column:indirizzo;size:255;not null" json:"address"`
	HouseNumber    *string             `gorm:"column:civico;size:20" json:"house_number,omitempty"`
	City           string              `gorm:"column:citta;size:100;not null" json:"city"`
	Zone           *string             `gorm:"column:zona;size:100" json:"zone,omitempty"`
	Type           string              `gorm:"column:tipologia;size:50;not null;default:Abitativo" json:"type"`
	Size           decimal.NullDecimal `gorm:"column:superficie;type:decimal(10,2)" json:"size"`
	CommissionYear *int                `gorm:"column:anno_incarico" json:"commission_year,omitempty"`
	Status         string              `gorm:"column:stato;size:50;not null;default:Disponibile" json:"status"`
	Notes          *string             `gorm:"column:note;type:text" json:"notes,omitempty"`

	// ClientCode is the optional owner/customer. Nil when the property has none.
	ClientCode *string `gorm:"column:cliente_codice;size:10;index" json:"client_code,omitempty"`
	Client     *Client `gorm:"foreignKey:ClientCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"client,omitempty"`

	CreatedAt time.Time `gorm:"column:data_creazione" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:data_modifica" json:"updated_at"`
}

func (Property) TableName() string { return "immobili" }

// IsAvailable reports whether the property counts as available.
func (p *Property) IsAvailable() bool {
	for _, s := range AvailableStatuses {
		if p.Status == s {
			return true
		}
	}
	return false
}

// FullAddress joins the address and the optional house number.
func (p *Property) FullAddress() string {
	if p.HouseNumber == nil || *p.HouseNumber == "" {
		return p.Address
	}
	return p.Address + ", " + *p.HouseNumber
}

// ClientName returns the display name of the linked client, or "".
func (p *Property) ClientName() string {
	if p.Client == nil {
		return ""
	}
	return p.Client.DisplayName()
}

// UpdateColumns returns every mutable column keyed by column name.
// Nil pointers map to NULL so an update is a full replace.
func (p *Property) UpdateColumns() map[string]any {
	return map[string]any{
		"indirizzo":      p.Address,
		"civico":         p.HouseNumber,
		"citta":          p.City,
		"zona":           p.Zone,
		"tipologia":      p.Type,
		"superficie":     p.Size,
		"anno_incarico":  p.CommissionYear,
		"stato":          p.Status,
		"note":           p.Notes,
		"cliente_codice": p.ClientCode,
	}
}
