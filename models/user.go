package models

import (
	"time"

	"salon-admin-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleWorker     = "worker"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Username string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`

	Role string `gorm:"type:varchar(20);not null"` // admin, supervisor or worker

	// Running this-month points balance. Reset to zero by the monthly job;
	// WorkerPoints keeps the durable history.
	Points float64 `gorm:"type:decimal(10,2);default:0.0"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleWorker:
		return true
	}
	return false
}
