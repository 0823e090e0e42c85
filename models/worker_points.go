package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkerPoints is the monthly incentive ledger, one row per (user, month,
// year). Points accumulate by upsert-increment only; Services is an
// append-only list of what earned them.
type WorkerPoints struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_worker_month,priority:1"`
	Month  int       `gorm:"not null;uniqueIndex:idx_worker_month,priority:2"`
	Year   int       `gorm:"not null;uniqueIndex:idx_worker_month,priority:3"`

	Points   float64     `gorm:"type:decimal(10,2);not null"`
	Services LedgerItems `gorm:"type:jsonb;default:'[]'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (w *WorkerPoints) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}

// LedgerItem records one credited execution: either a booking settlement or a
// quick-service claim.
type LedgerItem struct {
	BookingID  *uuid.UUID  `json:"bookingId,omitempty"`
	ServiceIDs []uuid.UUID `json:"serviceIds,omitempty"`
	Price      float64     `json:"price"`
	ExecutedAt time.Time   `json:"executedAt"`
}

// Custom JSONB type for the ledger column
type LedgerItems []LedgerItem

func (l LedgerItems) Value() (driver.Value, error) {
	if l == nil {
		l = LedgerItems{}
	}
	return json.Marshal(l)
}

func (l *LedgerItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = LedgerItems{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for LedgerItems")
	}
}
