package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Advance is a salary advance paid out to an employee.
type Advance struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID"`
	Amount     float64   `gorm:"type:decimal(10,2);not null"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`

	CreatedAt time.Time
}

func (a *Advance) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
