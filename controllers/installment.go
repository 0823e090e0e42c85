// controllers/installment.go
package controllers

import (
	"errors"
	"net/http"

	"salon-admin-backend/models"
	"salon-admin-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstallmentController struct {
	DB *gorm.DB
}

func NewInstallmentController(db *gorm.DB) *InstallmentController {
	return &InstallmentController{DB: db}
}

type CreateInstallmentInput struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	Amount    float64   `json:"amount" binding:"required,gt=0"`
}

// CreateInstallment records a payment and moves the booking's running
// balance. Overpayment is not rejected; the balance just goes negative.
func (ic *InstallmentController) CreateInstallment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input CreateInstallmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking models.Booking
	if err := ic.DB.First(&booking, "id = ?", input.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	installment := models.Installment{
		BookingID: input.BookingID,
		Amount:    input.Amount,
		CreatedBy: userID,
	}

	tx := ic.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&installment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create installment")
		return
	}

	if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"total_paid":        gorm.Expr("total_paid + ?", input.Amount),
			"remaining_balance": gorm.Expr("remaining_balance - ?", input.Amount),
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking balance")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{"message": "Installment created successfully", "installment": installment})
}

func (ic *InstallmentController) GetBookingInstallments(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var installments []models.Installment
	if err := ic.DB.Preload("Creator").
		Where("booking_id = ?", bookingID).
		Order("created_at").
		Find(&installments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve installments")
		return
	}

	c.JSON(http.StatusOK, installments)
}
