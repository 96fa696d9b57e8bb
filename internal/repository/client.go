package repository

import (
	"context"
	"strings"

	"github.com/diewo77/go-immobiliare/internal/db"
	"github.com/diewo77/go-immobiliare/internal/forms"
	"github.com/diewo77/go-immobiliare/internal/models"
	"gorm.io/gorm"
)

const clientOrder = "cognome, nome, codice"

var clientSearchColumns = []string{
	"codice",
	"cognome",
	"nome",
	"codice_fiscale",
	"partita_iva",
	"telefono",
	"email",
	"indirizzo",
	"citta",
}

type ClientRepository struct {
	db *db.Provider
}

func NewClientRepository(p *db.Provider) *ClientRepository {
	return &ClientRepository{db: p}
}

// List returns clients ordered by last name then first name, optionally filtered
// by a case-insensitive substring over the identifying and contact columns.
func (r *ClientRepository) List(ctx context.Context, term string) ([]models.Client, error) {
	var out []models.Client
	err := r.db.With(ctx, func(tx *gorm.DB) error {
		q := tx.Model(&models.Client{})
		if term = strings.TrimSpace(term); term != "" {
			where, args := containsAny(term, clientSearchColumns...)
			q = q.Where(where, args...)
		}
		return q.Order(clientOrder).Find(&out).Error
	})
	return out, storeError(err)
}

// Options returns code and names of every client, for select inputs.
func (r *ClientRepository) Options(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	err := r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Select("codice", "nome", "cognome").Order(clientOrder).Find(&out).Error
	})
	return out, storeError(err)
}

// Get returns the client with the given code, or ErrNotFound.
func (r *ClientRepository) Get(ctx context.Context, code string) (*models.Client, error) {
	var c models.Client
	err := r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Where("codice = ?", code).First(&c).Error
	})
	if err != nil {
		return nil, storeError(err)
	}
	return &c, nil
}

// Save creates or updates a client, following the same rules as properties with
// the SIC prefix. An email already used by another client returns an error
// matching ErrDuplicateEmail and leaves the store unchanged.
func (r *ClientRepository) Save(ctx context.Context, f forms.ClientForm) (SaveResult, error) {
	c := f.Client()
	if f.HasIdentity() {
		err := r.db.With(ctx, func(tx *gorm.DB) error {
			res := tx.Model(&models.Client{}).Where("codice = ?", c.Code).Updates(c.UpdateColumns())
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
			return nil
		})
		return SaveResult{Code: c.Code}, storeError(err)
	}

	err := r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Transaction(func(tx *gorm.DB) error {
			code, err := nextCode(tx, c.TableName(), models.ClientCodePrefix)
			if err != nil {
				return err
			}
			c.Code = code
			return tx.Create(&c).Error
		})
	})
	if err != nil {
		return SaveResult{}, storeError(err)
	}
	return SaveResult{Code: c.Code, Created: true}, nil
}

// Delete removes the client with the given code and unlinks its properties.
// A missing code is not an error.
func (r *ClientRepository) Delete(ctx context.Context, code string) error {
	return storeError(r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Property{}).
				Where("cliente_codice = ?", code).
				Update("cliente_codice", nil).Error; err != nil {
				return err
			}
			return tx.Where("codice = ?", code).Delete(&models.Client{}).Error
		})
	}))
}

// Count returns the number of clients.
func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.Client{}).Count(&n).Error
	})
	return n, storeError(err)
}
