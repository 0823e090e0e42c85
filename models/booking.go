package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Execution status of a billable booking sub-item or a quick-service
// execution. Completed is terminal.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Booking is the central aggregate: one client event with a required main
// package, optional henna/photo packages, optional extras, and a running
// payment balance. Each billable sub-item carries its own execution status
// and executor so workers can claim them independently.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	ClientName  string `gorm:"not null"`
	ClientPhone string `gorm:"not null"`
	City        string `gorm:"not null"`

	EventDate time.Time `gorm:"not null;index"`
	HennaDate *time.Time

	PackageID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	Package           Package    `gorm:"foreignKey:PackageID"`
	PackageStatus     string     `gorm:"type:varchar(20);default:'pending'"`
	PackageExecutedBy *uuid.UUID `gorm:"type:uuid"`

	HennaPackageID         *uuid.UUID `gorm:"type:uuid"`
	HennaPackage           *Package   `gorm:"foreignKey:HennaPackageID"`
	HennaPackageStatus     string     `gorm:"type:varchar(20);default:'pending'"`
	HennaPackageExecutedBy *uuid.UUID `gorm:"type:uuid"`

	PhotoPackageID         *uuid.UUID `gorm:"type:uuid"`
	PhotoPackage           *Package   `gorm:"foreignKey:PhotoPackageID"`
	PhotoPackageStatus     string     `gorm:"type:varchar(20);default:'pending'"`
	PhotoPackageExecutedBy *uuid.UUID `gorm:"type:uuid"`

	AdditionalServiceID         *uuid.UUID      `gorm:"type:uuid"`
	AdditionalService           *PackageService `gorm:"foreignKey:AdditionalServiceID"`
	AdditionalServicePrice      float64         `gorm:"type:decimal(10,2);default:0.0"`
	AdditionalServiceStatus     string          `gorm:"type:varchar(20);default:'pending'"`
	AdditionalServiceExecutedBy *uuid.UUID      `gorm:"type:uuid"`

	HairStraightening           bool    `gorm:"default:false"`
	HairStraighteningPrice      float64 `gorm:"type:decimal(10,2);default:0.0"`
	HairStraighteningDate       *time.Time
	HairStraighteningStatus     string     `gorm:"type:varchar(20);default:'pending'"`
	HairStraighteningExecutedBy *uuid.UUID `gorm:"type:uuid"`

	ReturnedServices []BookingReturnedService `gorm:"foreignKey:BookingID"`

	Deposit          float64 `gorm:"type:decimal(10,2);default:0.0"`
	TotalPrice       float64 `gorm:"type:decimal(10,2);not null"`
	TotalPaid        float64 `gorm:"type:decimal(10,2);default:0.0"`
	RemainingBalance float64 `gorm:"type:decimal(10,2);default:0.0"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// BookingReturnedService is a catalog service removed from the main package
// bundle and refunded against the total. Position keeps the client-visible
// ordering and addresses the row in execute requests.
type BookingReturnedService struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;index"`

	ServiceID uuid.UUID      `gorm:"type:uuid;not null"`
	Service   PackageService `gorm:"foreignKey:ServiceID"`

	Price    float64 `gorm:"type:decimal(10,2);not null"`
	Position int     `gorm:"not null"`

	Status     string     `gorm:"type:varchar(20);default:'pending'"`
	ExecutedBy *uuid.UUID `gorm:"type:uuid"`
}

func (r *BookingReturnedService) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
