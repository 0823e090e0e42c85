// controllers/worker_points.go
package controllers

import (
	"net/http"

	"salon-admin-backend/models"
	"salon-admin-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WorkerPointsController struct {
	DB *gorm.DB
}

func NewWorkerPointsController(db *gorm.DB) *WorkerPointsController {
	return &WorkerPointsController{DB: db}
}

// GetPointsHistory returns the calling worker's monthly ledger rows.
func (wc *WorkerPointsController) GetPointsHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var history []models.WorkerPoints
	if err := wc.DB.Where("user_id = ?", userID).
		Order("year DESC, month DESC").
		Find(&history).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve points history")
		return
	}

	c.JSON(http.StatusOK, history)
}
