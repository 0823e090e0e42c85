package services

import (
	"errors"
	"fmt"
	"math/rand"

	"salon-admin-backend/models"

	"gorm.io/gorm"
)

const receiptNumberAttempts = 10

// ErrReceiptNumberExhausted signals that the bounded retry budget ran out.
// It reflects resource exhaustion of the 6-digit space, not bad caller input,
// and is surfaced as a server error.
var ErrReceiptNumberExhausted = errors.New("could not generate a unique receipt number")

// ReceiptNumberGenerator produces the 6-digit identifiers printed on
// quick-service receipts, retrying on collisions up to a fixed budget.
type ReceiptNumberGenerator struct {
	db      *gorm.DB
	randInt func(n int) int
}

func NewReceiptNumberGenerator(db *gorm.DB) *ReceiptNumberGenerator {
	return &ReceiptNumberGenerator{db: db, randInt: rand.Intn}
}

func (g *ReceiptNumberGenerator) Generate() (string, error) {
	for attempt := 0; attempt < receiptNumberAttempts; attempt++ {
		number := fmt.Sprintf("%06d", 100000+g.randInt(900000))

		var count int64
		if err := g.db.Model(&models.ServiceExecution{}).
			Where("receipt_number = ?", number).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", ErrReceiptNumberExhausted
}
