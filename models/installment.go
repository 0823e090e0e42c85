package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Installment is an immutable payment record against a booking. Inserting one
// is the only mutation path for the booking's totalPaid. Deleting a booking
// does not cascade here; orphaned rows are kept as financial history.
type Installment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    float64   `gorm:"type:decimal(10,2);not null"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`

	CreatedAt time.Time
}

func (i *Installment) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
