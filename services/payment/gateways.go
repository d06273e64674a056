package payment

import (
	"context"

	"travelgo/models"
)

// ChargeResult is what a gateway returns on a successful charge.
type ChargeResult struct {
	PaymentID       string
	TransactionHash string
}

// Gateway is the per-method payment strategy. Each supported method (crypto,
// card, bank) is backed by its own implementation; the orchestrator only
// dispatches, so swapping a placeholder for a real rail touches one type.
type Gateway interface {
	Charge(ctx context.Context, booking *models.Booking, amount float64) (*ChargeResult, error)
	Refund(ctx context.Context, booking *models.Booking, amount float64) (*models.RefundResult, error)
}
