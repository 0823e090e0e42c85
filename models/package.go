package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PackageTypeMakeup = "makeup"
	PackageTypePhoto  = "photo"
)

// PackageService is the catalog of services a package can be composed of.
// Returned and additional booking services reference this catalog.
type PackageService struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key"`
	Name  string    `gorm:"not null"`
	Price float64   `gorm:"type:decimal(10,2);not null"`

	gorm.Model
}

func (s *PackageService) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Package bundles catalog services under one flat price. The type tag gates
// where a package may be used on a booking: henna slots take makeup packages,
// photo slots take photo packages.
type Package struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key"`
	Name  string    `gorm:"not null"`
	Price float64   `gorm:"type:decimal(10,2);not null"`
	Type  string    `gorm:"type:varchar(20);not null"` // makeup or photo

	Services []PackageService `gorm:"many2many:package_components"`

	gorm.Model
}

func (p *Package) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

func ValidPackageType(t string) bool {
	return t == PackageTypeMakeup || t == PackageTypePhoto
}
