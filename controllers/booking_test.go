package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"salon-admin-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testCatalog struct {
	mainPackage  models.Package
	hennaPackage models.Package
	returned     models.PackageService
}

// seedCatalog creates a main package at 500 bundling one 100 service, plus a
// 200 henna package.
func seedCatalog(t *testing.T, db *gorm.DB) testCatalog {
	t.Helper()

	returned := models.PackageService{Name: "Hairdo", Price: 100}
	require.NoError(t, db.Create(&returned).Error)

	mainPackage := models.Package{
		Name:     "Bridal Makeup",
		Price:    500,
		Type:     models.PackageTypeMakeup,
		Services: []models.PackageService{returned},
	}
	require.NoError(t, db.Create(&mainPackage).Error)

	hennaPackage := models.Package{Name: "Henna Night", Price: 200, Type: models.PackageTypeMakeup}
	require.NoError(t, db.Create(&hennaPackage).Error)

	return testCatalog{mainPackage: mainPackage, hennaPackage: hennaPackage, returned: returned}
}

func bookingPayload(catalog testCatalog, deposit float64) gin.H {
	return gin.H{
		"packageId":      catalog.mainPackage.ID,
		"hennaPackageId": catalog.hennaPackage.ID,
		"returnedServices": []gin.H{
			{"serviceId": catalog.returned.ID},
		},
		"clientName":  "Salma",
		"clientPhone": "+201001112223",
		"city":        "Cairo",
		"eventDate":   "2026-09-20T18:00:00Z",
		"deposit":     deposit,
	}
}

func createdBookingID(t *testing.T, body []byte) uuid.UUID {
	t.Helper()
	var resp struct {
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEqual(t, uuid.Nil, resp.Booking.ID)
	return resp.Booking.ID
}

func TestCreateBookingComputesTotals(t *testing.T) {
	db := openTestDB(t)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	catalog := seedCatalog(t, db)
	router := newTestRouter(db, admin)

	// Main 500 + henna 200 - returned 100 = 600, deposit 300 down
	w := performJSON(t, router, http.MethodPost, "/bookings", bookingPayload(catalog, 300))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := createdBookingID(t, w.Body.Bytes())

	var booking models.Booking
	require.NoError(t, db.Preload("ReturnedServices").First(&booking, "id = ?", bookingID).Error)
	assert.Equal(t, 600.0, booking.TotalPrice)
	assert.Equal(t, 300.0, booking.TotalPaid)
	assert.Equal(t, 300.0, booking.RemainingBalance)
	assert.Equal(t, admin.ID, booking.CreatedBy)
	require.Len(t, booking.ReturnedServices, 1)
	assert.Equal(t, models.StatusPending, booking.ReturnedServices[0].Status)
	assert.Equal(t, 100.0, booking.ReturnedServices[0].Price)
}

func TestCreateInstallmentMovesBalance(t *testing.T) {
	db := openTestDB(t)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	catalog := seedCatalog(t, db)
	router := newTestRouter(db, admin)

	w := performJSON(t, router, http.MethodPost, "/bookings", bookingPayload(catalog, 300))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := createdBookingID(t, w.Body.Bytes())

	w = performJSON(t, router, http.MethodPost, "/installments", gin.H{
		"bookingId": bookingID,
		"amount":    150,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booking models.Booking
	require.NoError(t, db.First(&booking, "id = ?", bookingID).Error)
	assert.Equal(t, 450.0, booking.TotalPaid)
	assert.Equal(t, 150.0, booking.RemainingBalance)

	w = performJSON(t, router, http.MethodGet, "/installments/booking/"+bookingID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var installments []models.Installment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &installments))
	require.Len(t, installments, 1)
	assert.Equal(t, 150.0, installments[0].Amount)
}

func TestCreateBookingRejectsDepositOverTotal(t *testing.T) {
	db := openTestDB(t)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	catalog := seedCatalog(t, db)
	router := newTestRouter(db, admin)

	w := performJSON(t, router, http.MethodPost, "/bookings", bookingPayload(catalog, 700))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestCreateBookingRejectsNegativeTotal(t *testing.T) {
	db := openTestDB(t)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	catalog := seedCatalog(t, db)
	router := newTestRouter(db, admin)

	payload := bookingPayload(catalog, 0)
	payload["returnedServices"] = []gin.H{
		{"serviceId": catalog.returned.ID, "price": 900},
	}

	w := performJSON(t, router, http.MethodPost, "/bookings", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestExecuteBookingItemRoute(t *testing.T) {
	db := openTestDB(t)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	worker := createTestUser(t, db, "worker", models.RoleWorker)
	catalog := seedCatalog(t, db)

	w := performJSON(t, newTestRouter(db, admin), http.MethodPost, "/bookings", bookingPayload(catalog, 0))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := createdBookingID(t, w.Body.Bytes())

	workerRouter := newTestRouter(db, worker)
	w = performJSON(t, workerRouter, http.MethodPost, "/bookings/"+bookingID.String()+"/execute",
		gin.H{"serviceType": "package"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var booking models.Booking
	require.NoError(t, db.First(&booking, "id = ?", bookingID).Error)
	assert.Equal(t, models.StatusInProgress, booking.PackageStatus)
	require.NotNil(t, booking.PackageExecutedBy)
	assert.Equal(t, worker.ID, *booking.PackageExecutedBy)

	// Already claimed
	w = performJSON(t, workerRouter, http.MethodPost, "/bookings/"+bookingID.String()+"/execute",
		gin.H{"serviceType": "package"})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestUpdateBookingResetsStatusesAndReprices(t *testing.T) {
	db := openTestDB(t)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	worker := createTestUser(t, db, "worker", models.RoleWorker)
	catalog := seedCatalog(t, db)
	router := newTestRouter(db, admin)

	w := performJSON(t, router, http.MethodPost, "/bookings", bookingPayload(catalog, 300))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := createdBookingID(t, w.Body.Bytes())

	w = performJSON(t, router, http.MethodPost, "/installments", gin.H{"bookingId": bookingID, "amount": 150})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, newTestRouter(db, worker), http.MethodPost,
		"/bookings/"+bookingID.String()+"/execute", gin.H{"serviceType": "package"})
	require.Equal(t, http.StatusOK, w.Code)

	// Drop the returned service: total goes from 600 to 700, paid stays
	// 300 deposit + 150 installment
	payload := bookingPayload(catalog, 300)
	payload["returnedServices"] = []gin.H{}
	w = performJSON(t, router, http.MethodPut, "/bookings/"+bookingID.String(), payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var booking models.Booking
	require.NoError(t, db.Preload("ReturnedServices").First(&booking, "id = ?", bookingID).Error)
	assert.Equal(t, 700.0, booking.TotalPrice)
	assert.Equal(t, 450.0, booking.TotalPaid)
	assert.Equal(t, 250.0, booking.RemainingBalance)
	assert.Empty(t, booking.ReturnedServices)

	// The claimed package sub-item restarted at pending
	assert.Equal(t, models.StatusPending, booking.PackageStatus)
	assert.Nil(t, booking.PackageExecutedBy)
}

func TestDeleteBookingKeepsInstallments(t *testing.T) {
	db := openTestDB(t)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	catalog := seedCatalog(t, db)
	router := newTestRouter(db, admin)

	w := performJSON(t, router, http.MethodPost, "/bookings", bookingPayload(catalog, 100))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := createdBookingID(t, w.Body.Bytes())

	w = performJSON(t, router, http.MethodPost, "/installments", gin.H{"bookingId": bookingID, "amount": 50})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, router, http.MethodDelete, "/bookings/"+bookingID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var bookingCount, returnedCount, installmentCount int64
	require.NoError(t, db.Model(&models.Booking{}).Where("id = ?", bookingID).Count(&bookingCount).Error)
	require.NoError(t, db.Model(&models.BookingReturnedService{}).Where("booking_id = ?", bookingID).Count(&returnedCount).Error)
	require.NoError(t, db.Model(&models.Installment{}).Where("booking_id = ?", bookingID).Count(&installmentCount).Error)
	assert.Equal(t, int64(0), bookingCount)
	assert.Equal(t, int64(0), returnedCount)

	// Installments are financial history and survive the booking
	assert.Equal(t, int64(1), installmentCount)
}
