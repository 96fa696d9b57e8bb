package repository

import (
	"fmt"

	"github.com/diewo77/go-immobiliare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nextCode reserves the next business code for table. It must run inside the
// transaction that inserts the row.
//
// The counter row for prefix is locked (FOR UPDATE; sqlite serializes writers
// instead) so concurrent creations queue up. The next value is one more than the
// larger of the counter and the highest numeric suffix already stored, which keeps
// codes strictly increasing even after the top row is deleted or when rows were
// loaded from outside the application.
func nextCode(tx *gorm.DB, table, prefix string) (string, error) {
	counter := models.SequenceCounter{Name: prefix}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
		return "", fmt.Errorf("init counter %s: %w", prefix, err)
	}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", prefix).
		First(&counter).Error; err != nil {
		return "", fmt.Errorf("lock counter %s: %w", prefix, err)
	}

	var codes []string
	if err := tx.Table(table).Where("codice LIKE ?", prefix+"%").Pluck("codice", &codes).Error; err != nil {
		return "", fmt.Errorf("scan %s codes: %w", table, err)
	}
	next := counter.LastValue
	for _, c := range codes {
		if n, ok := models.ParseCode(prefix, c); ok && n > next {
			next = n
		}
	}
	next++

	if err := tx.Model(&models.SequenceCounter{}).
		Where("name = ?", prefix).
		Update("last_value", next).Error; err != nil {
		return "", fmt.Errorf("bump counter %s: %w", prefix, err)
	}
	return models.FormatCode(prefix, next), nil
}
