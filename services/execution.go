package services

import (
	"errors"
	"time"

	"salon-admin-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Discriminants for booking sub-items in execute requests.
const (
	ItemPackage           = "package"
	ItemHennaPackage      = "hennaPackage"
	ItemPhotoPackage      = "photoPackage"
	ItemAdditionalService = "additionalService"
	ItemHairStraightening = "hairStraightening"
	ItemReturnedService   = "returnedService"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrExecutionNotFound   = errors.New("service execution not found")
	ErrUnknownServiceType  = errors.New("unknown service type")
	ErrItemNotAvailable    = errors.New("the requested service is not part of this booking")
	ErrItemNotPending      = errors.New("the service has already been started or completed")
	ErrReturnedIndexNeeded = errors.New("a returned service index is required")
)

// ExecutionService drives the per-sub-item execution state machine. Claims
// are conditional updates keyed on the current status, so two workers racing
// for the same pending item resolve to exactly one winner without locks.
type ExecutionService struct {
	db     *gorm.DB
	points *PointsService
}

func NewExecutionService(db *gorm.DB, points *PointsService) *ExecutionService {
	return &ExecutionService{db: db, points: points}
}

// StartBookingItem transitions one booking sub-item from pending to
// in_progress and records the claiming worker as its executor.
func (s *ExecutionService) StartBookingItem(bookingID uuid.UUID, serviceType string, serviceIndex *int, workerID uuid.UUID) error {
	var booking models.Booking
	if err := s.db.Preload("ReturnedServices").First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	switch serviceType {
	case ItemPackage:
		return s.claimColumn(bookingID, "package_status", "package_executed_by", workerID)

	case ItemHennaPackage:
		if booking.HennaPackageID == nil {
			return ErrItemNotAvailable
		}
		return s.claimColumn(bookingID, "henna_package_status", "henna_package_executed_by", workerID)

	case ItemPhotoPackage:
		if booking.PhotoPackageID == nil {
			return ErrItemNotAvailable
		}
		return s.claimColumn(bookingID, "photo_package_status", "photo_package_executed_by", workerID)

	case ItemAdditionalService:
		if booking.AdditionalServiceID == nil {
			return ErrItemNotAvailable
		}
		return s.claimColumn(bookingID, "additional_service_status", "additional_service_executed_by", workerID)

	case ItemHairStraightening:
		if !booking.HairStraightening {
			return ErrItemNotAvailable
		}
		return s.claimColumn(bookingID, "hair_straightening_status", "hair_straightening_executed_by", workerID)

	case ItemReturnedService:
		if serviceIndex == nil {
			return ErrReturnedIndexNeeded
		}
		if *serviceIndex < 0 || *serviceIndex >= len(booking.ReturnedServices) {
			return ErrItemNotAvailable
		}
		return s.claimReturnedService(bookingID, *serviceIndex, workerID)

	default:
		return ErrUnknownServiceType
	}
}

// claimColumn performs the conditional pending -> in_progress update on one
// of the booking's status columns. Zero rows affected means someone else got
// there first.
func (s *ExecutionService) claimColumn(bookingID uuid.UUID, statusColumn, executorColumn string, workerID uuid.UUID) error {
	result := s.db.Model(&models.Booking{}).
		Where("id = ? AND "+statusColumn+" = ?", bookingID, models.StatusPending).
		Updates(map[string]interface{}{
			statusColumn:   models.StatusInProgress,
			executorColumn: workerID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotPending
	}
	return nil
}

func (s *ExecutionService) claimReturnedService(bookingID uuid.UUID, index int, workerID uuid.UUID) error {
	result := s.db.Model(&models.BookingReturnedService{}).
		Where("booking_id = ? AND position = ? AND status = ?", bookingID, index, models.StatusPending).
		Updates(map[string]interface{}{
			"status":      models.StatusInProgress,
			"executed_by": workerID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotPending
	}
	// Touch the booking so the settlement staleness clock restarts from the
	// claim, same as the column claims do implicitly.
	return s.db.Model(&models.Booking{}).Where("id = ?", bookingID).
		Update("updated_at", time.Now()).Error
}

// CompleteQuickExecution lets a worker claim a pending quick-service receipt.
// Unlike booking sub-items there is no in_progress leg: the execution jumps
// straight to completed and the worker is credited immediately rather than by
// the settlement sweep.
func (s *ExecutionService) CompleteQuickExecution(executionID, workerID uuid.UUID) error {
	var execution models.ServiceExecution
	if err := s.db.Preload("Services").First(&execution, "id = ?", executionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExecutionNotFound
		}
		return err
	}

	result := s.db.Model(&models.ServiceExecution{}).
		Where("id = ? AND execution_status = ?", executionID, models.StatusPending).
		Updates(map[string]interface{}{
			"execution_status": models.StatusCompleted,
			"executed_by":      workerID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotPending
	}

	serviceIDs := make([]uuid.UUID, 0, len(execution.Services))
	for _, svc := range execution.Services {
		serviceIDs = append(serviceIDs, svc.ID)
	}
	return s.points.Credit(workerID, execution.Price, models.LedgerItem{
		ServiceIDs: serviceIDs,
		Price:      execution.Price,
		ExecutedAt: time.Now(),
	})
}
