// Package services holds the use cases built on top of the repositories.
package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/diewo77/go-immobiliare/i18n"
	"github.com/diewo77/go-immobiliare/internal/models"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the media type of the exported workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// writeSheet writes one sheet with a bold, filterable header row and the given rows.
func writeSheet(w io.Writer, sheet string, header []string, rows [][]any) error {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), sheet); err != nil {
		return err
	}
	if err := xl.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	bold, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := xl.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return err
	}
	if err := xl.AutoFilter(sheet, "A1:"+last, nil); err != nil {
		return err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if _, err := xl.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportProperties writes props as an XLSX workbook with headers in lang.
func ExportProperties(w io.Writer, lang string, props []models.Property) error {
	header := []string{
		i18n.T(lang, "property.code"),
		i18n.T(lang, "property.address"),
		i18n.T(lang, "property.house_number"),
		i18n.T(lang, "property.city"),
		i18n.T(lang, "property.zone"),
		i18n.T(lang, "property.type"),
		i18n.T(lang, "property.size"),
		i18n.T(lang, "property.commission_year"),
		i18n.T(lang, "property.status"),
		i18n.T(lang, "property.client"),
		i18n.T(lang, "property.notes"),
	}
	rows := make([][]any, len(props))
	for i := range props {
		p := &props[i]
		var size any = ""
		if p.Size.Valid {
			size = p.Size.Decimal.InexactFloat64()
		}
		var year any = ""
		if p.CommissionYear != nil {
			year = *p.CommissionYear
		}
		rows[i] = []any{p.Code, p.Address, str(p.HouseNumber), p.City, str(p.Zone), p.Type, size, year, p.Status, p.ClientName(), str(p.Notes)}
	}
	return writeSheet(w, i18n.T(lang, "nav.properties"), header, rows)
}

// ExportClients writes clients as an XLSX workbook with headers in lang.
func ExportClients(w io.Writer, lang string, clients []models.Client) error {
	header := []string{
		i18n.T(lang, "client.code"),
		i18n.T(lang, "client.last_name"),
		i18n.T(lang, "client.first_name"),
		i18n.T(lang, "client.fiscal_code"),
		i18n.T(lang, "client.vat_number"),
		i18n.T(lang, "client.phone"),
		i18n.T(lang, "client.email"),
		i18n.T(lang, "client.address"),
		i18n.T(lang, "client.city"),
		i18n.T(lang, "client.postal_code"),
		i18n.T(lang, "client.notes"),
	}
	rows := make([][]any, len(clients))
	for i := range clients {
		c := &clients[i]
		rows[i] = []any{c.Code, c.LastName, c.FirstName, str(c.FiscalCode), str(c.VATNumber), str(c.Phone), str(c.Email), str(c.Address), str(c.City), str(c.PostalCode), str(c.Notes)}
	}
	return writeSheet(w, i18n.T(lang, "nav.clients"), header, rows)
}

// ExportFilename names an export after its list and the search term, if any.
// Characters outside [A-Za-z0-9-] become underscores.
func ExportFilename(list, search string) string {
	clean := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' {
			return r
		}
		return '_'
	}, strings.TrimSpace(search))
	if clean == "" {
		return list + ".xlsx"
	}
	return list + "_" + clean + ".xlsx"
}
