package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"salon-admin-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// openTestDB returns an isolated in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.PackageService{},
		&models.Package{},
		&models.Booking{},
		&models.BookingReturnedService{},
		&models.Installment{},
		&models.ServiceExecution{},
		&models.WorkerPoints{},
		&models.Expense{},
		&models.Advance{},
		&models.ReminderLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestWorker(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "password123", Role: models.RoleWorker}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create worker: %v", err)
	}
	return user
}

func createTestAdmin(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "password123", Role: models.RoleAdmin}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	return user
}
