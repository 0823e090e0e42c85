// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"salon-admin-backend/models"
	"salon-admin-backend/services"
	"salon-admin-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingController struct {
	DB         *gorm.DB
	Executions *services.ExecutionService
}

func NewBookingController(db *gorm.DB, executions *services.ExecutionService) *BookingController {
	return &BookingController{DB: db, Executions: executions}
}

type ReturnedServiceInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Price     *float64  `json:"price"`
}

type AdditionalServiceInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Price     *float64  `json:"price"`
}

// BookingInput is shared between create and full-replacement update.
type BookingInput struct {
	PackageID              uuid.UUID               `json:"packageId" binding:"required"`
	HennaPackageID         *uuid.UUID              `json:"hennaPackageId"`
	PhotoPackageID         *uuid.UUID              `json:"photoPackageId"`
	ReturnedServices       []ReturnedServiceInput  `json:"returnedServices"`
	AdditionalService      *AdditionalServiceInput `json:"additionalService"`
	ClientName             string                  `json:"clientName" binding:"required"`
	ClientPhone            string                  `json:"clientPhone" binding:"required"`
	City                   string                  `json:"city" binding:"required"`
	EventDate              time.Time               `json:"eventDate" binding:"required"`
	HennaDate              *time.Time              `json:"hennaDate"`
	HairStraightening      bool                    `json:"hairStraightening"`
	HairStraighteningPrice float64                 `json:"hairStraighteningPrice" binding:"min=0"`
	HairStraighteningDate  *time.Time              `json:"hairStraighteningDate"`
	Deposit                float64                 `json:"deposit" binding:"min=0"`
}

// resolvedSelections pairs the pricing input with the catalog rows needed to
// build the booking record.
type resolvedSelections struct {
	pricing    services.PricingInput
	returned   []models.BookingReturnedService
	additional *AdditionalServiceInput
}

// resolveSelections loads and validates every catalog reference of the input.
// Reference errors come back as client errors.
func (bc *BookingController) resolveSelections(input BookingInput) (*resolvedSelections, int, error) {
	var mainPackage models.Package
	if err := bc.DB.Preload("Services").First(&mainPackage, "id = ?", input.PackageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusBadRequest, errors.New("main package not found")
		}
		return nil, http.StatusInternalServerError, err
	}

	pricing := services.PricingInput{
		MainPackage:            mainPackage,
		HairStraightening:      input.HairStraightening,
		HairStraighteningPrice: input.HairStraighteningPrice,
	}

	if input.HennaPackageID != nil {
		var hennaPackage models.Package
		if err := bc.DB.First(&hennaPackage, "id = ?", *input.HennaPackageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, http.StatusBadRequest, errors.New("henna package not found")
			}
			return nil, http.StatusInternalServerError, err
		}
		pricing.HennaPackage = &hennaPackage
	}

	if input.PhotoPackageID != nil {
		var photoPackage models.Package
		if err := bc.DB.First(&photoPackage, "id = ?", *input.PhotoPackageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, http.StatusBadRequest, errors.New("photo package not found")
			}
			return nil, http.StatusInternalServerError, err
		}
		pricing.PhotoPackage = &photoPackage
	}

	var returnedRows []models.BookingReturnedService
	for i, returned := range input.ReturnedServices {
		var service models.PackageService
		if err := bc.DB.First(&service, "id = ?", returned.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, http.StatusBadRequest, errors.New("returned service not found: " + returned.ServiceID.String())
			}
			return nil, http.StatusInternalServerError, err
		}
		selection := services.ReturnedSelection{Service: service, PriceOverride: returned.Price}
		pricing.ReturnedServices = append(pricing.ReturnedServices, selection)
		returnedRows = append(returnedRows, models.BookingReturnedService{
			ServiceID: service.ID,
			Price:     services.ReturnedPrice(selection),
			Position:  i,
			Status:    models.StatusPending,
		})
	}

	if input.AdditionalService != nil {
		var service models.PackageService
		if err := bc.DB.First(&service, "id = ?", input.AdditionalService.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, http.StatusBadRequest, errors.New("additional service not found")
			}
			return nil, http.StatusInternalServerError, err
		}
		pricing.AdditionalService = &services.AdditionalSelection{
			Service:       service,
			PriceOverride: input.AdditionalService.Price,
		}
	}

	return &resolvedSelections{
		pricing:    pricing,
		returned:   returnedRows,
		additional: input.AdditionalService,
	}, 0, nil
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	resolved, status, err := bc.resolveSelections(input)
	if err != nil {
		if status == http.StatusInternalServerError {
			utils.RespondWithError(c, status, "Database error")
		} else {
			utils.RespondWithError(c, status, err.Error())
		}
		return
	}

	totalPrice, err := services.ComputeTotal(resolved.pricing)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := services.ValidateDeposit(input.Deposit, totalPrice); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking := models.Booking{
		ClientName:             input.ClientName,
		ClientPhone:            input.ClientPhone,
		City:                   input.City,
		EventDate:              input.EventDate,
		HennaDate:              input.HennaDate,
		PackageID:              input.PackageID,
		HennaPackageID:         input.HennaPackageID,
		PhotoPackageID:         input.PhotoPackageID,
		HairStraightening:      input.HairStraightening,
		HairStraighteningPrice: input.HairStraighteningPrice,
		HairStraighteningDate:  input.HairStraighteningDate,
		ReturnedServices:       resolved.returned,
		Deposit:                input.Deposit,
		TotalPrice:             totalPrice,
		TotalPaid:              input.Deposit,
		RemainingBalance:       totalPrice - input.Deposit,
		CreatedBy:              userID,
	}
	if resolved.additional != nil {
		booking.AdditionalServiceID = &resolved.additional.ServiceID
		booking.AdditionalServicePrice = resolved.pricing.AdditionalService.Service.Price
		if resolved.additional.Price != nil {
			booking.AdditionalServicePrice = *resolved.additional.Price
		}
	}

	if err := bc.DB.Create(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": booking})
}

func (bc *BookingController) bookingQuery() *gorm.DB {
	return bc.DB.
		Preload("Package.Services").
		Preload("HennaPackage").
		Preload("PhotoPackage").
		Preload("AdditionalService").
		Preload("ReturnedServices", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("ReturnedServices.Service").
		Preload("Creator")
}

func (bc *BookingController) GetBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	var bookings []models.Booking
	if err := bc.bookingQuery().
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetTodayBookings lists bookings with any appointment falling today.
func (bc *BookingController) GetTodayBookings(c *gin.Context) {
	start, end := utils.DayWindow(time.Now())

	var bookings []models.Booking
	err := bc.bookingQuery().
		Where(
			bc.DB.Where("event_date >= ? AND event_date < ?", start, end).
				Or("henna_date >= ? AND henna_date < ?", start, end).
				Or("hair_straightening_date >= ? AND hair_straightening_date < ?", start, end),
		).
		Find(&bookings).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (bc *BookingController) SearchBookings(c *gin.Context) {
	query := bc.bookingQuery()

	if clientName := c.Query("clientName"); clientName != "" {
		query = query.Where("client_name ILIKE ?", "%"+clientName+"%")
	}
	if clientPhone := c.Query("clientPhone"); clientPhone != "" {
		query = query.Where("client_phone LIKE ?", "%"+clientPhone+"%")
	}
	if eventDate := c.Query("eventDate"); eventDate != "" {
		day, err := time.Parse("2006-01-02", eventDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid eventDate, expected YYYY-MM-DD")
			return
		}
		start, end := utils.DayWindow(day)
		query = query.Where("event_date >= ? AND event_date < ?", start, end)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Limit(50).Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := bc.bookingQuery().First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBooking is a full replacement of the sub-item selections. Totals are
// repriced and the balance recomputed against installments already recorded.
// Replaced sub-items restart at pending.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking models.Booking
	if err := bc.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	resolved, status, err := bc.resolveSelections(input)
	if err != nil {
		if status == http.StatusInternalServerError {
			utils.RespondWithError(c, status, "Database error")
		} else {
			utils.RespondWithError(c, status, err.Error())
		}
		return
	}

	totalPrice, err := services.ComputeTotal(resolved.pricing)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := services.ValidateDeposit(input.Deposit, totalPrice); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var installments []models.Installment
	if err := bc.DB.Where("booking_id = ?", booking.ID).Find(&installments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	totalPaid, remaining := services.Balance(totalPrice, input.Deposit, installments)

	tx := bc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("booking_id = ?", booking.ID).
		Delete(&models.BookingReturnedService{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to replace returned services")
		return
	}

	booking.ClientName = input.ClientName
	booking.ClientPhone = input.ClientPhone
	booking.City = input.City
	booking.EventDate = input.EventDate
	booking.HennaDate = input.HennaDate
	booking.PackageID = input.PackageID
	booking.PackageStatus = models.StatusPending
	booking.PackageExecutedBy = nil
	booking.HennaPackageID = input.HennaPackageID
	booking.HennaPackageStatus = models.StatusPending
	booking.HennaPackageExecutedBy = nil
	booking.PhotoPackageID = input.PhotoPackageID
	booking.PhotoPackageStatus = models.StatusPending
	booking.PhotoPackageExecutedBy = nil
	booking.HairStraightening = input.HairStraightening
	booking.HairStraighteningPrice = input.HairStraighteningPrice
	booking.HairStraighteningDate = input.HairStraighteningDate
	booking.HairStraighteningStatus = models.StatusPending
	booking.HairStraighteningExecutedBy = nil
	booking.AdditionalServiceID = nil
	booking.AdditionalServicePrice = 0
	booking.AdditionalServiceStatus = models.StatusPending
	booking.AdditionalServiceExecutedBy = nil
	if resolved.additional != nil {
		booking.AdditionalServiceID = &resolved.additional.ServiceID
		booking.AdditionalServicePrice = resolved.pricing.AdditionalService.Service.Price
		if resolved.additional.Price != nil {
			booking.AdditionalServicePrice = *resolved.additional.Price
		}
	}
	booking.Deposit = input.Deposit
	booking.TotalPrice = totalPrice
	booking.TotalPaid = totalPaid
	booking.RemainingBalance = remaining

	for i := range resolved.returned {
		resolved.returned[i].BookingID = booking.ID
	}
	booking.ReturnedServices = resolved.returned

	if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&booking).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "booking": booking})
}

// DeleteBooking removes the booking and its returned-service rows. It does
// not cascade to installments: orphaned installments are retained as
// financial history.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := bc.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	tx := bc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("booking_id = ?", booking.ID).
		Delete(&models.BookingReturnedService{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete returned services")
		return
	}
	if err := tx.Delete(&booking).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// ExecuteBookingItem lets a worker claim one sub-item, moving it from pending
// to in_progress.
func (bc *BookingController) ExecuteBookingItem(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input struct {
		ServiceType  string `json:"serviceType" binding:"required"`
		ServiceIndex *int   `json:"serviceIndex"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	err = bc.Executions.StartBookingItem(bookingID, input.ServiceType, input.ServiceIndex, workerID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Service execution started"})
	case errors.Is(err, services.ErrBookingNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUnknownServiceType),
		errors.Is(err, services.ErrItemNotAvailable),
		errors.Is(err, services.ErrReturnedIndexNeeded),
		errors.Is(err, services.ErrItemNotPending):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
