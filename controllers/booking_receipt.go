// controllers/booking_receipt.go
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

const dateLayout = "2006-01-02"

// GetBookingReceipt materializes the print-ready projection of a booking:
// catalog names and prices resolved, dates flattened to YYYY-MM-DD.
func (bc *BookingController) GetBookingReceipt(c *gin.Context) {
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

	receipt := gin.H{
		"clientName":  booking.ClientName,
		"clientPhone": booking.ClientPhone,
		"city":        booking.City,
		"eventDate":   booking.EventDate.Format(dateLayout),
		"package": gin.H{
			"name":  booking.Package.Name,
			"price": booking.Package.Price,
		},
		"totalPrice":       booking.TotalPrice,
		"deposit":          booking.Deposit,
		"totalPaid":        booking.TotalPaid,
		"remainingBalance": booking.RemainingBalance,
		"createdBy":        booking.Creator.Username,
		"createdAt":        booking.CreatedAt.Format(dateLayout),
	}

	if booking.HennaPackage != nil {
		henna := gin.H{
			"name":  booking.HennaPackage.Name,
			"price": booking.HennaPackage.Price,
		}
		if booking.HennaDate != nil {
			henna["date"] = booking.HennaDate.Format(dateLayout)
		}
		receipt["hennaPackage"] = henna
	}
	if booking.PhotoPackage != nil {
		receipt["photoPackage"] = gin.H{
			"name":  booking.PhotoPackage.Name,
			"price": booking.PhotoPackage.Price,
		}
	}

	returned := make([]gin.H, 0, len(booking.ReturnedServices))
	for _, rs := range booking.ReturnedServices {
		returned = append(returned, gin.H{
			"name":  rs.Service.Name,
			"price": rs.Price,
		})
	}
	receipt["returnedServices"] = returned

	if booking.AdditionalService != nil {
		receipt["additionalService"] = gin.H{
			"name":  booking.AdditionalService.Name,
			"price": booking.AdditionalServicePrice,
		}
	}
	if booking.HairStraightening {
		hair := gin.H{"price": booking.HairStraighteningPrice}
		if booking.HairStraighteningDate != nil {
			hair["date"] = booking.HairStraighteningDate.Format(dateLayout)
		}
		receipt["hairStraightening"] = hair
	}

	c.JSON(http.StatusOK, receipt)
}

// BookingServiceView is one row of the worker-facing sub-item list.
type BookingServiceView struct {
	Type       string  `json:"type"`
	Index      *int    `json:"index,omitempty"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
	ExecutedBy *string `json:"executedBy"`
}

// ListBookingServices flattens every billable sub-item of a booking into a
// uniform list for the worker dashboard.
func (bc *BookingController) ListBookingServices(c *gin.Context) {
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

	executorNames, err := bc.executorUsernames(&booking)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	nameOf := func(id *uuid.UUID) *string {
		if id == nil {
			return nil
		}
		if name, ok := executorNames[*id]; ok {
			return &name
		}
		return nil
	}

	items := []BookingServiceView{{
		Type:       "package",
		Name:       booking.Package.Name,
		Price:      booking.Package.Price,
		Status:     booking.PackageStatus,
		ExecutedBy: nameOf(booking.PackageExecutedBy),
	}}

	if booking.HennaPackage != nil {
		items = append(items, BookingServiceView{
			Type:       "hennaPackage",
			Name:       booking.HennaPackage.Name,
			Price:      booking.HennaPackage.Price,
			Status:     booking.HennaPackageStatus,
			ExecutedBy: nameOf(booking.HennaPackageExecutedBy),
		})
	}
	if booking.PhotoPackage != nil {
		items = append(items, BookingServiceView{
			Type:       "photoPackage",
			Name:       booking.PhotoPackage.Name,
			Price:      booking.PhotoPackage.Price,
			Status:     booking.PhotoPackageStatus,
			ExecutedBy: nameOf(booking.PhotoPackageExecutedBy),
		})
	}
	if booking.AdditionalService != nil {
		items = append(items, BookingServiceView{
			Type:       "additionalService",
			Name:       booking.AdditionalService.Name,
			Price:      booking.AdditionalServicePrice,
			Status:     booking.AdditionalServiceStatus,
			ExecutedBy: nameOf(booking.AdditionalServiceExecutedBy),
		})
	}
	if booking.HairStraightening {
		items = append(items, BookingServiceView{
			Type:       "hairStraightening",
			Name:       "Hair straightening",
			Price:      booking.HairStraighteningPrice,
			Status:     booking.HairStraighteningStatus,
			ExecutedBy: nameOf(booking.HairStraighteningExecutedBy),
		})
	}
	for _, rs := range booking.ReturnedServices {
		index := rs.Position
		items = append(items, BookingServiceView{
			Type:       "returnedService",
			Index:      &index,
			Name:       rs.Service.Name,
			Price:      rs.Price,
			Status:     rs.Status,
			ExecutedBy: nameOf(rs.ExecutedBy),
		})
	}

	c.JSON(http.StatusOK, items)
}

func (bc *BookingController) executorUsernames(booking *models.Booking) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, 6)
	add := func(id *uuid.UUID) {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	add(booking.PackageExecutedBy)
	add(booking.HennaPackageExecutedBy)
	add(booking.PhotoPackageExecutedBy)
	add(booking.HairStraighteningExecutedBy)
	add(booking.AdditionalServiceExecutedBy)
	for _, rs := range booking.ReturnedServices {
		add(rs.ExecutedBy)
	}

	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.User
	if err := bc.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, user := range users {
		names[user.ID] = user.Username
	}
	return names, nil
}
