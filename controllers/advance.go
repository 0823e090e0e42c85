// controllers/advance.go
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

type AdvanceController struct {
	DB *gorm.DB
}

func NewAdvanceController(db *gorm.DB) *AdvanceController {
	return &AdvanceController{DB: db}
}

type AdvanceInput struct {
	EmployeeID uuid.UUID `json:"employeeId" binding:"required"`
	Amount     float64   `json:"amount" binding:"required,gt=0"`
}

func (ac *AdvanceController) CreateAdvance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input AdvanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.Employee
	if err := ac.DB.First(&employee, "id = ?", input.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	advance := models.Advance{
		EmployeeID: input.EmployeeID,
		Amount:     input.Amount,
		CreatedBy:  userID,
	}
	if err := ac.DB.Create(&advance).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create advance")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Advance created successfully", "advance": advance})
}

func (ac *AdvanceController) GetAdvances(c *gin.Context) {
	var advances []models.Advance
	if err := ac.DB.Preload("Employee").Preload("Creator").
		Order("created_at DESC").Find(&advances).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve advances")
		return
	}
	c.JSON(http.StatusOK, advances)
}
