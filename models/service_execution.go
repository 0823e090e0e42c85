package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceExecution is one quick-service receipt: one or more catalog services
// performed by an employee, registered by an admin/supervisor and later
// claimed by the worker who did the job. Price is the caller-supplied
// aggregate and is deliberately not recomputed from the catalog, so ad-hoc
// discounts stay possible.
type ServiceExecution struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	// Human-readable 6-digit identifier printed on the receipt.
	ReceiptNumber string `gorm:"type:varchar(6);uniqueIndex;not null"`

	Services   []Service `gorm:"many2many:service_execution_items"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID"`

	Price float64 `gorm:"type:decimal(10,2);not null"`

	ExecutionStatus string     `gorm:"type:varchar(20);default:'pending'"`
	ExecutedBy      *uuid.UUID `gorm:"type:uuid"`
	Executor        *User      `gorm:"foreignKey:ExecutedBy"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *ServiceExecution) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
