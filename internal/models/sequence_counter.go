package models

import "time"

// SequenceCounter stores the last value handed out for a code prefix.
// It keeps codes from being reused after the highest row is deleted.
type SequenceCounter struct {
	Name      string    `gorm:"primaryKey;size:16" json:"name"`
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SequenceCounter) TableName() string { return "sequence_counters" }
