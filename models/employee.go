package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	Name   string    `gorm:"not null"`
	Phone  string    `gorm:"not null"`
	Salary float64   `gorm:"type:decimal(10,2);not null"`

	gorm.Model
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
