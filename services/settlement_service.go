// services/settlement_service.go
package services

import (
	"log"
	"time"

	"salon-admin-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const staleAfter = 30 * time.Minute

// SettlementService finalizes execution work in the background. Workers only
// ever move booking sub-items to in_progress; this sweep promotes items that
// have sat in_progress past the grace period to completed and credits the
// executor's points. The grace period leaves a correction window before
// points are awarded.
//
// The sweep is idempotent: it only touches in_progress rows older than the
// threshold, so overlapping or repeated runs are no-ops on already settled
// work.
type SettlementService struct {
	db     *gorm.DB
	points *PointsService
	now    func() time.Time
}

func NewSettlementService(db *gorm.DB, points *PointsService) *SettlementService {
	return &SettlementService{db: db, points: points, now: time.Now}
}

func (s *SettlementService) StartScheduler() {
	c := cron.New()

	c.AddFunc("*/30 * * * *", func() {
		if err := s.Sweep(); err != nil {
			log.Printf("Settlement sweep failed: %v", err)
		}
	})

	// Reset the running balances at the start of each month
	c.AddFunc("0 0 1 * *", func() {
		if err := s.points.ResetMonthlyBalances(); err != nil {
			log.Printf("Monthly points reset failed: %v", err)
		} else {
			log.Println("Worker points reset for the new month")
		}
	})

	c.Start()
	log.Println("Settlement scheduler started")
}

// Sweep runs one settlement pass. Failures on individual records are logged
// and the pass moves on; the next tick retries whatever is still stale.
func (s *SettlementService) Sweep() error {
	cutoff := s.now().Add(-staleAfter)

	if err := s.settleBookings(cutoff); err != nil {
		return err
	}
	return s.settleQuickExecutions(cutoff)
}

func (s *SettlementService) settleBookings(cutoff time.Time) error {
	var bookings []models.Booking
	err := s.db.
		Preload("Package").
		Preload("HennaPackage").
		Preload("PhotoPackage").
		Preload("ReturnedServices").
		Where("updated_at <= ?", cutoff).
		Where(
			s.db.Where("package_status = ?", models.StatusInProgress).
				Or("henna_package_status = ?", models.StatusInProgress).
				Or("photo_package_status = ?", models.StatusInProgress).
				Or("hair_straightening_status = ?", models.StatusInProgress).
				Or("additional_service_status = ?", models.StatusInProgress).
				Or("id IN (?)", s.db.Model(&models.BookingReturnedService{}).
					Select("booking_id").
					Where("status = ?", models.StatusInProgress)),
		).
		Find(&bookings).Error
	if err != nil {
		return err
	}

	for _, booking := range bookings {
		if err := s.settleBooking(&booking); err != nil {
			log.Printf("Failed to settle booking %s: %v", booking.ID, err)
		}
	}
	return nil
}

func (s *SettlementService) settleBooking(booking *models.Booking) error {
	var points float64

	if booking.PackageStatus == models.StatusInProgress {
		booking.PackageStatus = models.StatusCompleted
		points += booking.Package.Price
	}
	if booking.HennaPackageStatus == models.StatusInProgress && booking.HennaPackage != nil {
		booking.HennaPackageStatus = models.StatusCompleted
		points += booking.HennaPackage.Price
	}
	if booking.PhotoPackageStatus == models.StatusInProgress && booking.PhotoPackage != nil {
		booking.PhotoPackageStatus = models.StatusCompleted
		points += booking.PhotoPackage.Price
	}
	if booking.HairStraighteningStatus == models.StatusInProgress && booking.HairStraightening {
		booking.HairStraighteningStatus = models.StatusCompleted
		points += booking.HairStraighteningPrice
	}
	if booking.AdditionalServiceStatus == models.StatusInProgress && booking.AdditionalServiceID != nil {
		booking.AdditionalServiceStatus = models.StatusCompleted
		points += booking.AdditionalServicePrice
	}
	for i := range booking.ReturnedServices {
		rs := &booking.ReturnedServices[i]
		if rs.Status == models.StatusInProgress {
			points += rs.Price
			if err := s.db.Model(&models.BookingReturnedService{}).
				Where("id = ?", rs.ID).
				Update("status", models.StatusCompleted).Error; err != nil {
				return err
			}
			rs.Status = models.StatusCompleted
		}
	}

	if err := s.db.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"package_status":            booking.PackageStatus,
			"henna_package_status":      booking.HennaPackageStatus,
			"photo_package_status":      booking.PhotoPackageStatus,
			"hair_straightening_status": booking.HairStraighteningStatus,
			"additional_service_status": booking.AdditionalServiceStatus,
		}).Error; err != nil {
		return err
	}

	if points <= 0 {
		return nil
	}

	executor := bookingExecutor(booking)
	if executor == nil {
		log.Printf("Booking %s settled without a resolvable executor", booking.ID)
		return nil
	}

	bookingID := booking.ID
	return s.points.Credit(*executor, points, models.LedgerItem{
		BookingID:  &bookingID,
		Price:      points,
		ExecutedAt: s.now(),
	})
}

// bookingExecutor resolves who gets the credit: the first populated executor
// field, in a fixed order. When different workers executed different
// sub-items the whole credit still lands on the first one found; the
// per-sub-item executor columns retain the accurate attribution.
func bookingExecutor(booking *models.Booking) *uuid.UUID {
	candidates := []*uuid.UUID{
		booking.PackageExecutedBy,
		booking.HennaPackageExecutedBy,
		booking.PhotoPackageExecutedBy,
		booking.HairStraighteningExecutedBy,
		booking.AdditionalServiceExecutedBy,
	}
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	for _, rs := range booking.ReturnedServices {
		if rs.ExecutedBy != nil {
			return rs.ExecutedBy
		}
	}
	return nil
}

// settleQuickExecutions completes stale in_progress quick executions. The
// current claim flow jumps straight to completed, so this normally finds
// nothing; it still runs in case an older writer left in_progress rows
// behind.
func (s *SettlementService) settleQuickExecutions(cutoff time.Time) error {
	var executions []models.ServiceExecution
	err := s.db.Preload("Services").
		Where("execution_status = ? AND updated_at <= ?", models.StatusInProgress, cutoff).
		Find(&executions).Error
	if err != nil {
		return err
	}

	for _, execution := range executions {
		if err := s.db.Model(&models.ServiceExecution{}).
			Where("id = ? AND execution_status = ?", execution.ID, models.StatusInProgress).
			Update("execution_status", models.StatusCompleted).Error; err != nil {
			log.Printf("Failed to settle execution %s: %v", execution.ID, err)
			continue
		}

		if execution.ExecutedBy == nil {
			continue
		}
		serviceIDs := make([]uuid.UUID, 0, len(execution.Services))
		for _, svc := range execution.Services {
			serviceIDs = append(serviceIDs, svc.ID)
		}
		if err := s.points.Credit(*execution.ExecutedBy, execution.Price, models.LedgerItem{
			ServiceIDs: serviceIDs,
			Price:      execution.Price,
			ExecutedAt: s.now(),
		}); err != nil {
			log.Printf("Failed to credit points for execution %s: %v", execution.ID, err)
		}
	}
	return nil
}
