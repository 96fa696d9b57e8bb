package models

import (
	"strings"
	"time"
)

// Client is a person or company the agency works with.
type Client struct {
	Code       string  `gorm:"column:codice;primaryKey;size:10" json:"code"`
	FirstName  string  `gorm:"column:nome;size:100;not null" json:"first_name"`
	LastName   string  `gorm:"column:cognome;size:100;not null;index" json:"last_name"`
	FiscalCode *string `gorm:"column:codice_fiscale;size:16" json:"fiscal_code,omitempty"`
	VATNumber  *string `gorm:"column:partita_iva;size:20" json:"vat_number,omitempty"`
	Phone      *string `gorm:"column:telefono;size:30" json:"phone,omitempty"`
	// Email is unique when present; several clients may have none.
	Email      *string `gorm:"column:email;size:255;uniqueIndex:idx_clienti_email" json:"email,omitempty"`
	Address    *string `gorm:"column:indirizzo;size:255" json:"address,omitempty"`
	City       *string `gorm:"column:citta;size:100" json:"city,omitempty"`
	PostalCode *string `gorm:"column:cap;size:10" json:"postal_code,omitempty"`
	Notes      *string `gorm:"column:note;type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"column:data_creazione" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:data_modifica" json:"updated_at"`
}

func (Client) TableName() string { return "clienti" }

// DisplayName returns "LastName FirstName", as listed by the agency.
func (c *Client) DisplayName() string {
	return strings.TrimSpace(c.LastName + " " + c.FirstName)
}

// UpdateColumns returns every mutable column keyed by column name.
func (c *Client) UpdateColumns() map[string]any {
	return map[string]any{
		"nome":           c.FirstName,
		"cognome":        c.LastName,
		"codice_fiscale": c.FiscalCode,
		"partita_iva":    c.VATNumber,
		"telefono":       c.Phone,
		"email":          c.Email,
		"indirizzo":      c.Address,
		"citta":          c.City,
		"cap":            c.PostalCode,
		"note":           c.Notes,
	}
}
