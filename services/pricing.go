package services

import (
	"errors"

	"salon-admin-backend/models"

	"github.com/google/uuid"
)

// Pricing validation errors, surfaced to clients as 400s.
var (
	ErrHennaPackageType    = errors.New("henna package must be a makeup package")
	ErrPhotoPackageType    = errors.New("photo package must be a photo package")
	ErrServiceNotInPackage = errors.New("returned service is not part of the selected package")
	ErrNegativeTotal       = errors.New("total price cannot be negative")
	ErrDepositExceedsTotal = errors.New("deposit cannot exceed the total price")
)

// ReturnedSelection is a catalog service refunded from the main package
// bundle. A nil PriceOverride falls back to the catalog price.
type ReturnedSelection struct {
	Service       models.PackageService
	PriceOverride *float64
}

// AdditionalSelection is a catalog service billed on top of the package.
type AdditionalSelection struct {
	Service       models.PackageService
	PriceOverride *float64
}

// PricingInput carries the resolved selections of a booking. Callers resolve
// catalog references before pricing; this function does no I/O.
type PricingInput struct {
	MainPackage            models.Package
	HennaPackage           *models.Package
	PhotoPackage           *models.Package
	ReturnedServices       []ReturnedSelection
	AdditionalService      *AdditionalSelection
	HairStraightening      bool
	HairStraighteningPrice float64
}

// ComputeTotal derives the booking total: main package plus optional henna
// and photo packages plus extras, minus returned services. A negative result
// is a validation error, never clamped.
func ComputeTotal(in PricingInput) (float64, error) {
	total := in.MainPackage.Price

	if in.HennaPackage != nil {
		if in.HennaPackage.Type != models.PackageTypeMakeup {
			return 0, ErrHennaPackageType
		}
		total += in.HennaPackage.Price
	}

	if in.PhotoPackage != nil {
		if in.PhotoPackage.Type != models.PackageTypePhoto {
			return 0, ErrPhotoPackageType
		}
		total += in.PhotoPackage.Price
	}

	for _, returned := range in.ReturnedServices {
		if !packageContains(in.MainPackage, returned.Service.ID) {
			return 0, ErrServiceNotInPackage
		}
		total -= ReturnedPrice(returned)
	}

	if in.AdditionalService != nil {
		if in.AdditionalService.PriceOverride != nil {
			total += *in.AdditionalService.PriceOverride
		} else {
			total += in.AdditionalService.Service.Price
		}
	}

	if in.HairStraightening {
		total += in.HairStraighteningPrice
	}

	if total < 0 {
		return 0, ErrNegativeTotal
	}
	return total, nil
}

// ReturnedPrice resolves the refund amount for one returned service.
func ReturnedPrice(r ReturnedSelection) float64 {
	if r.PriceOverride != nil {
		return *r.PriceOverride
	}
	return r.Service.Price
}

// ValidateDeposit rejects deposits larger than the computed total.
func ValidateDeposit(deposit, totalPrice float64) error {
	if deposit > totalPrice {
		return ErrDepositExceedsTotal
	}
	return nil
}

// Balance recomputes the payment fields from the deposit and the installments
// recorded so far. Overpayment is allowed; the remaining balance simply goes
// negative.
func Balance(totalPrice, deposit float64, installments []models.Installment) (totalPaid, remaining float64) {
	totalPaid = deposit
	for _, inst := range installments {
		totalPaid += inst.Amount
	}
	return totalPaid, totalPrice - totalPaid
}

func packageContains(pkg models.Package, serviceID uuid.UUID) bool {
	for _, svc := range pkg.Services {
		if svc.ID == serviceID {
			return true
		}
	}
	return false
}
