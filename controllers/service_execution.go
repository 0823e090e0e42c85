// controllers/service_execution.go
package controllers

import (
	"errors"
	"net/http"

	"salon-admin-backend/models"
	"salon-admin-backend/services"
	"salon-admin-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceExecutionController manages quick-service receipts: registration by
// admins/supervisors, claiming by workers, receipt projections.
type ServiceExecutionController struct {
	DB         *gorm.DB
	Receipts   *services.ReceiptNumberGenerator
	Executions *services.ExecutionService
}

func NewServiceExecutionController(db *gorm.DB, receipts *services.ReceiptNumberGenerator, executions *services.ExecutionService) *ServiceExecutionController {
	return &ServiceExecutionController{DB: db, Receipts: receipts, Executions: executions}
}

type CreateExecutionInput struct {
	ServiceIDs []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
	EmployeeID uuid.UUID   `json:"employeeId" binding:"required"`
	// Aggregate price for the whole receipt, taken verbatim. Not cross-checked
	// against the catalog sum so the front desk can apply discounts.
	Price float64 `json:"price" binding:"required,gt=0"`
}

func (ec *ServiceExecutionController) CreateExecution(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input CreateExecutionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var selectedServices []models.Service
	if err := ec.DB.Where("id IN ?", input.ServiceIDs).Find(&selectedServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if len(selectedServices) != len(input.ServiceIDs) {
		utils.RespondWithError(c, http.StatusBadRequest, "Some services were not found")
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, "id = ?", input.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	receiptNumber, err := ec.Receipts.Generate()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate a receipt number")
		return
	}

	execution := models.ServiceExecution{
		ReceiptNumber:   receiptNumber,
		Services:        selectedServices,
		EmployeeID:      input.EmployeeID,
		Price:           input.Price,
		ExecutionStatus: models.StatusPending,
		CreatedBy:       userID,
	}
	if err := ec.DB.Create(&execution).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service execution")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Service execution created successfully", "serviceExecution": execution})
}

func (ec *ServiceExecutionController) executionQuery() *gorm.DB {
	return ec.DB.
		Preload("Services").
		Preload("Employee").
		Preload("Creator").
		Preload("Executor")
}

func (ec *ServiceExecutionController) GetExecutions(c *gin.Context) {
	var executions []models.ServiceExecution
	if err := ec.executionQuery().Order("created_at DESC").Find(&executions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve executions")
		return
	}
	c.JSON(http.StatusOK, executions)
}

func (ec *ServiceExecutionController) DeleteExecution(c *gin.Context) {
	executionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid execution ID format")
		return
	}

	result := ec.DB.Delete(&models.ServiceExecution{}, "id = ?", executionID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete execution")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service execution not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service execution deleted successfully"})
}

// ClaimExecution lets a worker complete a pending quick execution. Points are
// credited immediately, not by the settlement sweep.
func (ec *ServiceExecutionController) ClaimExecution(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	executionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid execution ID format")
		return
	}

	err = ec.Executions.CompleteQuickExecution(executionID, workerID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Service executed successfully"})
	case errors.Is(err, services.ErrExecutionNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrItemNotPending):
		utils.RespondWithError(c, http.StatusBadRequest, "The service was already executed")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// GetExecutionReceipt returns the print-ready projection of one execution.
func (ec *ServiceExecutionController) GetExecutionReceipt(c *gin.Context) {
	executionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid execution ID format")
		return
	}

	var execution models.ServiceExecution
	if err := ec.executionQuery().First(&execution, "id = ?", executionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service execution not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	serviceViews := make([]gin.H, 0, len(execution.Services))
	for _, svc := range execution.Services {
		serviceViews = append(serviceViews, gin.H{"name": svc.Name, "price": svc.Price})
	}

	receipt := gin.H{
		"receiptNumber": execution.ReceiptNumber,
		"services":      serviceViews,
		"employee":      execution.Employee.Name,
		"price":         execution.Price,
		"status":        execution.ExecutionStatus,
		"createdBy":     execution.Creator.Username,
		"createdAt":     execution.CreatedAt.Format(dateLayout),
	}
	if execution.Executor != nil {
		receipt["executedBy"] = execution.Executor.Username
	}

	c.JSON(http.StatusOK, receipt)
}

// FindByReceiptNumber looks an execution up by its printed receipt number,
// shaped as a one-element list for the worker dashboard.
func (ec *ServiceExecutionController) FindByReceiptNumber(c *gin.Context) {
	receiptNumber := c.Param("receiptNumber")

	var execution models.ServiceExecution
	if err := ec.executionQuery().First(&execution, "receipt_number = ?", receiptNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service execution not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	names := ""
	for i, svc := range execution.Services {
		if i > 0 {
			names += ", "
		}
		names += svc.Name
	}

	var executedBy *string
	if execution.Executor != nil {
		executedBy = &execution.Executor.Username
	}

	c.JSON(http.StatusOK, []gin.H{{
		"type":          "serviceExecution",
		"id":            execution.ID,
		"name":          names,
		"price":         execution.Price,
		"status":        execution.ExecutionStatus,
		"executedBy":    executedBy,
		"receiptNumber": execution.ReceiptNumber,
	}})
}
