package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the catalog of standalone quick services, executed outside of
// any booking through a ServiceExecution receipt.
type Service struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key"`
	Name  string    `gorm:"not null"`
	Price float64   `gorm:"type:decimal(10,2);not null"`

	CreatedBy uuid.UUID `gorm:"type:uuid;index"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
