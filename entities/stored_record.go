package entities

import "time"

// StoredRecord is one row of any entity table in the local SQLite store.
// Ids are assigned per table; columns other than the id live in Data.
type StoredRecord struct {
	Table     string         `gorm:"column:tbl;primaryKey" json:"-"`
	ID        int64          `gorm:"primaryKey;autoIncrement:false" json:"Id"`
	Data      map[string]any `gorm:"serializer:json" json:"data"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
