package services

import (
	"testing"
	"time"

	"salon-admin-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedBooking creates a booking with a main package, a henna package and one
// returned service, all pending.
func seedBooking(t *testing.T, db *gorm.DB, creator models.User) models.Booking {
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

	booking := models.Booking{
		ClientName:  "Salma",
		ClientPhone: "+201001112223",
		City:        "Cairo",
		EventDate:   time.Now().AddDate(0, 0, 7),
		PackageID:   mainPackage.ID,

		HennaPackageID: &hennaPackage.ID,
		ReturnedServices: []models.BookingReturnedService{
			{ServiceID: returned.ID, Price: 100, Position: 0, Status: models.StatusPending},
		},
		TotalPrice:       600,
		RemainingBalance: 600,
		CreatedBy:        creator.ID,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func TestStartBookingItemClaimsPackage(t *testing.T) {
	db := openTestDB(t)
	admin := createTestAdmin(t, db, "admin")
	worker := createTestWorker(t, db, "worker")
	booking := seedBooking(t, db, admin)

	svc := NewExecutionService(db, NewPointsService(db))
	require.NoError(t, svc.StartBookingItem(booking.ID, ItemPackage, nil, worker.ID))

	var updated models.Booking
	require.NoError(t, db.First(&updated, "id = ?", booking.ID).Error)
	assert.Equal(t, models.StatusInProgress, updated.PackageStatus)
	require.NotNil(t, updated.PackageExecutedBy)
	assert.Equal(t, worker.ID, *updated.PackageExecutedBy)
}

func TestStartBookingItemRejectsDuplicateClaim(t *testing.T) {
	db := openTestDB(t)
	admin := createTestAdmin(t, db, "admin")
	first := createTestWorker(t, db, "first")
	second := createTestWorker(t, db, "second")
	booking := seedBooking(t, db, admin)

	svc := NewExecutionService(db, NewPointsService(db))
	require.NoError(t, svc.StartBookingItem(booking.ID, ItemPackage, nil, first.ID))

	err := svc.StartBookingItem(booking.ID, ItemPackage, nil, second.ID)
	assert.ErrorIs(t, err, ErrItemNotPending)

	// The first claimer keeps the item
	var updated models.Booking
	require.NoError(t, db.First(&updated, "id = ?", booking.ID).Error)
	require.NotNil(t, updated.PackageExecutedBy)
	assert.Equal(t, first.ID, *updated.PackageExecutedBy)
}

func TestStartBookingItemRejectsMissingOptionalItem(t *testing.T) {
	db := openTestDB(t)
	admin := createTestAdmin(t, db, "admin")
	worker := createTestWorker(t, db, "worker")
	booking := seedBooking(t, db, admin)

	// The seeded booking has no photo package and no hair straightening
	assert.ErrorIs(t, svcStart(db, booking.ID, ItemPhotoPackage, nil, worker.ID), ErrItemNotAvailable)
	assert.ErrorIs(t, svcStart(db, booking.ID, ItemHairStraightening, nil, worker.ID), ErrItemNotAvailable)
	assert.ErrorIs(t, svcStart(db, booking.ID, ItemAdditionalService, nil, worker.ID), ErrItemNotAvailable)
}

func svcStart(db *gorm.DB, bookingID uuid.UUID, serviceType string, index *int, workerID uuid.UUID) error {
	svc := NewExecutionService(db, NewPointsService(db))
	return svc.StartBookingItem(bookingID, serviceType, index, workerID)
}

func TestStartBookingItemReturnedService(t *testing.T) {
	db := openTestDB(t)
	admin := createTestAdmin(t, db, "admin")
	worker := createTestWorker(t, db, "worker")
	booking := seedBooking(t, db, admin)

	index := 0
	require.NoError(t, svcStart(db, booking.ID, ItemReturnedService, &index, worker.ID))

	var row models.BookingReturnedService
	require.NoError(t, db.First(&row, "booking_id = ? AND position = ?", booking.ID, 0).Error)
	assert.Equal(t, models.StatusInProgress, row.Status)
	require.NotNil(t, row.ExecutedBy)
	assert.Equal(t, worker.ID, *row.ExecutedBy)

	// Claiming the same row again fails
	assert.ErrorIs(t, svcStart(db, booking.ID, ItemReturnedService, &index, worker.ID), ErrItemNotPending)
}

func TestStartBookingItemReturnedServiceValidation(t *testing.T) {
	db := openTestDB(t)
	admin := createTestAdmin(t, db, "admin")
	worker := createTestWorker(t, db, "worker")
	booking := seedBooking(t, db, admin)

	assert.ErrorIs(t, svcStart(db, booking.ID, ItemReturnedService, nil, worker.ID), ErrReturnedIndexNeeded)

	outOfRange := 5
	assert.ErrorIs(t, svcStart(db, booking.ID, ItemReturnedService, &outOfRange, worker.ID), ErrItemNotAvailable)
}

func TestStartBookingItemUnknownTypeAndMissingBooking(t *testing.T) {
	db := openTestDB(t)
	admin := createTestAdmin(t, db, "admin")
	worker := createTestWorker(t, db, "worker")
	booking := seedBooking(t, db, admin)

	assert.ErrorIs(t, svcStart(db, booking.ID, "pedicure", nil, worker.ID), ErrUnknownServiceType)
	assert.ErrorIs(t, svcStart(db, uuid.New(), ItemPackage, nil, worker.ID), ErrBookingNotFound)
}

func seedQuickExecution(t *testing.T, db *gorm.DB, admin models.User, price float64) models.ServiceExecution {
	t.Helper()

	employee := models.Employee{Name: "Mona", Phone: "+201001234567", Salary: 3000}
	require.NoError(t, db.Create(&employee).Error)

	first := models.Service{Name: "Blow-dry", Price: 50, CreatedBy: admin.ID}
	second := models.Service{Name: "Manicure", Price: 70, CreatedBy: admin.ID}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	execution := models.ServiceExecution{
		ReceiptNumber:   "123456",
		Services:        []models.Service{first, second},
		EmployeeID:      employee.ID,
		Price:           price,
		ExecutionStatus: models.StatusPending,
		CreatedBy:       admin.ID,
	}
	require.NoError(t, db.Create(&execution).Error)
	return execution
}

func TestCompleteQuickExecutionCreditsImmediately(t *testing.T) {
	db := openTestDB(t)
	admin := createTestAdmin(t, db, "admin")
	worker := createTestWorker(t, db, "worker")

	// Aggregate price 120 differs from the 50+70 catalog sum and is trusted
	// verbatim, discounts included.
	execution := seedQuickExecution(t, db, admin, 120)

	svc := NewExecutionService(db, NewPointsService(db))
	require.NoError(t, svc.CompleteQuickExecution(execution.ID, worker.ID))

	var updated models.ServiceExecution
	require.NoError(t, db.First(&updated, "id = ?", execution.ID).Error)
	assert.Equal(t, models.StatusCompleted, updated.ExecutionStatus)
	require.NotNil(t, updated.ExecutedBy)
	assert.Equal(t, worker.ID, *updated.ExecutedBy)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", worker.ID).Error)
	assert.Equal(t, 120.0, user.Points)

	now := time.Now()
	var ledger models.WorkerPoints
	require.NoError(t, db.First(&ledger, "user_id = ? AND month = ? AND year = ?",
		worker.ID, int(now.Month()), now.Year()).Error)
	assert.Equal(t, 120.0, ledger.Points)
	require.Len(t, ledger.Services, 1)
	assert.Equal(t, 120.0, ledger.Services[0].Price)
	assert.Len(t, ledger.Services[0].ServiceIDs, 2)
}

func TestCompleteQuickExecutionRejectsSecondClaim(t *testing.T) {
	db := openTestDB(t)
	admin := createTestAdmin(t, db, "admin")
	first := createTestWorker(t, db, "first")
	second := createTestWorker(t, db, "second")
	execution := seedQuickExecution(t, db, admin, 100)

	svc := NewExecutionService(db, NewPointsService(db))
	require.NoError(t, svc.CompleteQuickExecution(execution.ID, first.ID))
	assert.ErrorIs(t, svc.CompleteQuickExecution(execution.ID, second.ID), ErrItemNotPending)

	// Only the first worker was credited
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", second.ID).Error)
	assert.Equal(t, 0.0, user.Points)
}

func TestCompleteQuickExecutionMissing(t *testing.T) {
	db := openTestDB(t)
	worker := createTestWorker(t, db, "worker")

	svc := NewExecutionService(db, NewPointsService(db))
	assert.ErrorIs(t, svc.CompleteQuickExecution(uuid.New(), worker.ID), ErrExecutionNotFound)
}
