package store

import (
	"time"

	"gorm.io/datatypes"
)

// EntryModel is the GORM row for one key/value document.
type EntryModel struct {
	Key       string         `gorm:"primaryKey"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (EntryModel) TableName() string { return "kv_entries" }
