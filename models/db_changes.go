package models

import (
	"time"
)

// Row-level actions journaled by the database triggers.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// DBChange is one journaled row event. Triggers on the watched tables
// append a row per INSERT/UPDATE/DELETE; the change monitor drains
// unprocessed rows and fans the events out to live viewers.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   int64     `gorm:"not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"`
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}
