// controllers/expense.go
package controllers

import (
	"net/http"

	"salon-admin-backend/models"
	"salon-admin-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExpenseController struct {
	DB *gorm.DB
}

func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db}
}

type ExpenseInput struct {
	Details string  `json:"details" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
}

func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	expense := models.Expense{
		Details:   input.Details,
		Amount:    input.Amount,
		CreatedBy: userID,
	}
	if err := ec.DB.Create(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Expense created successfully", "expense": expense})
}

func (ec *ExpenseController) GetExpenses(c *gin.Context) {
	var expenses []models.Expense
	if err := ec.DB.Preload("Creator").Order("created_at DESC").Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}
