// controllers/report.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salon-admin-backend/models"
	"salon-admin-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportController serves the read-only aggregations. It adds no invariants
// of its own; everything here is a join/summation over the other components.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// DailySummary is the admin-only money overview of the day.
type DailySummary struct {
	TotalBookings float64 `json:"totalBookings"`
	TotalServices float64 `json:"totalServices"`
	TotalExpenses float64 `json:"totalExpenses"`
	TotalAdvances float64 `json:"totalAdvances"`
	Net           float64 `json:"net"`
}

// GetDailyReport collects today's bookings, quick-service executions,
// expenses and advances. Admins additionally get the net summary.
func (rc *ReportController) GetDailyReport(c *gin.Context) {
	start, end := utils.DayWindow(time.Now())

	var bookings []models.Booking
	err := rc.DB.
		Preload("Package").
		Preload("HennaPackage").
		Preload("PhotoPackage").
		Preload("ReturnedServices.Service").
		Preload("Creator").
		Where(
			rc.DB.Where("event_date >= ? AND event_date < ?", start, end).
				Or("henna_date >= ? AND henna_date < ?", start, end).
				Or("hair_straightening_date >= ? AND hair_straightening_date < ?", start, end),
		).
		Find(&bookings).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	var executions []models.ServiceExecution
	if err := rc.DB.Preload("Services").Preload("Employee").
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&executions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve executions")
		return
	}

	var expenses []models.Expense
	if err := rc.DB.Preload("Creator").
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	var advances []models.Advance
	if err := rc.DB.Preload("Employee").Preload("Creator").
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&advances).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve advances")
		return
	}

	response := gin.H{
		"bookings": bookings,
		"services": executions,
		"expenses": expenses,
		"advances": advances,
	}

	if currentRole(c) == models.RoleAdmin {
		var summary DailySummary
		for _, booking := range bookings {
			summary.TotalBookings += booking.TotalPrice
		}
		for _, execution := range executions {
			summary.TotalServices += execution.Price
		}
		for _, expense := range expenses {
			summary.TotalExpenses += expense.Amount
		}
		for _, advance := range advances {
			summary.TotalAdvances += advance.Amount
		}
		summary.Net = summary.TotalBookings + summary.TotalServices -
			summary.TotalExpenses - summary.TotalAdvances
		response["summary"] = summary
	}

	c.JSON(http.StatusOK, response)
}

// EmployeeSummary is one worker's standing for the current month.
type EmployeeSummary struct {
	UserID        string  `json:"userId"`
	Username      string  `json:"username"`
	Points        float64 `json:"points"`
	MonthlyPoints float64 `json:"monthlyPoints"`
	ServicesCount int     `json:"servicesCount"`
}

// GetEmployeeReport aggregates worker points for the current month.
func (rc *ReportController) GetEmployeeReport(c *gin.Context) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	var workers []models.User
	if err := rc.DB.Where("role = ? AND is_active = ?", models.RoleWorker, true).
		Find(&workers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve workers")
		return
	}

	summaries := make([]EmployeeSummary, 0, len(workers))
	for _, worker := range workers {
		summary := EmployeeSummary{
			UserID:   worker.ID.String(),
			Username: worker.Username,
			Points:   worker.Points,
		}

		var ledger models.WorkerPoints
		err := rc.DB.Where("user_id = ? AND month = ? AND year = ?", worker.ID, month, year).
			First(&ledger).Error
		if err == nil {
			summary.MonthlyPoints = ledger.Points
			summary.ServicesCount = len(ledger.Services)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve points")
			return
		}

		summaries = append(summaries, summary)
	}

	c.JSON(http.StatusOK, gin.H{"month": month, "year": year, "employees": summaries})
}
