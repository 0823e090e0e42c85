package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"salon-admin-backend/models"
	"salon-admin-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ctrltestdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
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

func createTestUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "password123", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// newTestRouter wires the handlers under test behind a stub that injects the
// given user's identity the way the auth middleware would.
func newTestRouter(db *gorm.DB, user models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	points := services.NewPointsService(db)
	executions := services.NewExecutionService(db, points)
	bookings := NewBookingController(db, executions)
	installments := NewInstallmentController(db)
	quickExecutions := NewServiceExecutionController(db, services.NewReceiptNumberGenerator(db), executions)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", user.ID.String())
		c.Set("role", user.Role)
	})

	r.POST("/bookings", bookings.CreateBooking)
	r.GET("/bookings/:id", bookings.GetBooking)
	r.PUT("/bookings/:id", bookings.UpdateBooking)
	r.DELETE("/bookings/:id", bookings.DeleteBooking)
	r.POST("/bookings/:id/execute", bookings.ExecuteBookingItem)
	r.POST("/installments", installments.CreateInstallment)
	r.GET("/installments/booking/:bookingId", installments.GetBookingInstallments)
	r.POST("/services/execute", quickExecutions.CreateExecution)
	r.POST("/services/execute/:id", quickExecutions.ClaimExecution)
	r.GET("/services/execute/receipt/:receiptNumber", quickExecutions.FindByReceiptNumber)
	return r
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
