package services

import (
	"errors"
	"time"

	"salon-admin-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointsService maintains the worker incentive balances: the running
// this-month counter on the user row plus the durable monthly ledger.
type PointsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPointsService(db *gorm.DB) *PointsService {
	return &PointsService{db: db, now: time.Now}
}

// Credit adds points to the worker's running balance and upserts the current
// month's ledger row, appending the given entry. The two writes are separate;
// a failure between them is returned to the caller for logging, not rolled
// back.
func (s *PointsService) Credit(userID uuid.UUID, points float64, entry models.LedgerItem) error {
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", points)).Error; err != nil {
		return err
	}

	now := s.now()
	month := int(now.Month())
	year := now.Year()

	var ledger models.WorkerPoints
	err := s.db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&ledger).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ledger = models.WorkerPoints{
			UserID:   userID,
			Month:    month,
			Year:     year,
			Points:   points,
			Services: models.LedgerItems{entry},
		}
		return s.db.Create(&ledger).Error
	}
	if err != nil {
		return err
	}

	ledger.Points += points
	ledger.Services = append(ledger.Services, entry)
	return s.db.Save(&ledger).Error
}

// ResetMonthlyBalances zeroes every worker's running points counter. Called
// at the start of each calendar month; the ledger rows are untouched.
func (s *PointsService) ResetMonthlyBalances() error {
	return s.db.Model(&models.User{}).
		Where("role = ?", models.RoleWorker).
		Update("points", 0).Error
}
