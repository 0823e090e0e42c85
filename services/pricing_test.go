package services

import (
	"testing"

	"salon-admin-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeupPackage(price float64, services ...models.PackageService) models.Package {
	return models.Package{
		ID:       uuid.New(),
		Name:     "Bridal Makeup",
		Price:    price,
		Type:     models.PackageTypeMakeup,
		Services: services,
	}
}

func photoPackage(price float64) models.Package {
	return models.Package{ID: uuid.New(), Name: "Photo Session", Price: price, Type: models.PackageTypePhoto}
}

func catalogService(name string, price float64) models.PackageService {
	return models.PackageService{ID: uuid.New(), Name: name, Price: price}
}

func TestComputeTotalMainPackageOnly(t *testing.T) {
	total, err := ComputeTotal(PricingInput{MainPackage: makeupPackage(500)})
	require.NoError(t, err)
	assert.Equal(t, 500.0, total)
}

func TestComputeTotalFullScenario(t *testing.T) {
	// Main 500 + henna 200 - returned 100 = 600
	returned := catalogService("Hairdo", 100)
	henna := makeupPackage(200)

	total, err := ComputeTotal(PricingInput{
		MainPackage:      makeupPackage(500, returned),
		HennaPackage:     &henna,
		ReturnedServices: []ReturnedSelection{{Service: returned}},
	})
	require.NoError(t, err)
	assert.Equal(t, 600.0, total)
}

func TestComputeTotalAllComponents(t *testing.T) {
	returned := catalogService("Nails", 50)
	additional := catalogService("Lashes", 80)
	henna := makeupPackage(200)
	photo := photoPackage(300)

	total, err := ComputeTotal(PricingInput{
		MainPackage:            makeupPackage(500, returned),
		HennaPackage:           &henna,
		PhotoPackage:           &photo,
		ReturnedServices:       []ReturnedSelection{{Service: returned}},
		AdditionalService:      &AdditionalSelection{Service: additional},
		HairStraightening:      true,
		HairStraighteningPrice: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0+200+300-50+80+150, total)
}

func TestComputeTotalReturnedPriceOverride(t *testing.T) {
	returned := catalogService("Hairdo", 100)
	override := 60.0

	total, err := ComputeTotal(PricingInput{
		MainPackage:      makeupPackage(500, returned),
		ReturnedServices: []ReturnedSelection{{Service: returned, PriceOverride: &override}},
	})
	require.NoError(t, err)
	assert.Equal(t, 440.0, total)
}

func TestComputeTotalAdditionalPriceOverride(t *testing.T) {
	additional := catalogService("Lashes", 80)
	override := 50.0

	total, err := ComputeTotal(PricingInput{
		MainPackage:       makeupPackage(500),
		AdditionalService: &AdditionalSelection{Service: additional, PriceOverride: &override},
	})
	require.NoError(t, err)
	assert.Equal(t, 550.0, total)
}

func TestComputeTotalRejectsWrongHennaType(t *testing.T) {
	photo := photoPackage(200)
	_, err := ComputeTotal(PricingInput{
		MainPackage:  makeupPackage(500),
		HennaPackage: &photo,
	})
	assert.ErrorIs(t, err, ErrHennaPackageType)
}

func TestComputeTotalRejectsWrongPhotoType(t *testing.T) {
	henna := makeupPackage(200)
	_, err := ComputeTotal(PricingInput{
		MainPackage:  makeupPackage(500),
		PhotoPackage: &henna,
	})
	assert.ErrorIs(t, err, ErrPhotoPackageType)
}

func TestComputeTotalRejectsForeignReturnedService(t *testing.T) {
	inPackage := catalogService("Hairdo", 100)
	foreign := catalogService("Nails", 50)

	_, err := ComputeTotal(PricingInput{
		MainPackage:      makeupPackage(500, inPackage),
		ReturnedServices: []ReturnedSelection{{Service: foreign}},
	})
	assert.ErrorIs(t, err, ErrServiceNotInPackage)
}

func TestComputeTotalRejectsNegativeResult(t *testing.T) {
	returned := catalogService("Everything", 600)

	_, err := ComputeTotal(PricingInput{
		MainPackage:      makeupPackage(500, returned),
		ReturnedServices: []ReturnedSelection{{Service: returned}},
	})
	assert.ErrorIs(t, err, ErrNegativeTotal)
}

func TestValidateDeposit(t *testing.T) {
	assert.NoError(t, ValidateDeposit(300, 600))
	assert.NoError(t, ValidateDeposit(600, 600))
	assert.ErrorIs(t, ValidateDeposit(601, 600), ErrDepositExceedsTotal)
}

func TestBalance(t *testing.T) {
	installments := []models.Installment{{Amount: 150}}

	totalPaid, remaining := Balance(600, 300, installments)
	assert.Equal(t, 450.0, totalPaid)
	assert.Equal(t, 150.0, remaining)

	// The identity totalPrice == totalPaid + remainingBalance always holds
	assert.Equal(t, 600.0, totalPaid+remaining)
}

func TestBalanceAllowsOverpayment(t *testing.T) {
	installments := []models.Installment{{Amount: 400}, {Amount: 400}}

	totalPaid, remaining := Balance(600, 0, installments)
	assert.Equal(t, 800.0, totalPaid)
	assert.Equal(t, -200.0, remaining)
}
