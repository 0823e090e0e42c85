package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Expense struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Details string    `gorm:"not null"`
	Amount  float64   `gorm:"type:decimal(10,2);not null"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`

	CreatedAt time.Time
}

func (e *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
