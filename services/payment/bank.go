package payment

import (
	"context"

	"travelgo/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BankTransferGateway is a placeholder behind the Gateway abstraction: it
// fabricates transfer references until a real banking rail is integrated.
// Keeping it a Gateway means the integration replaces this type only.
type BankTransferGateway struct {
	Logger *zap.Logger
}

// Charge fabricates a successful transfer reference.
func (g *BankTransferGateway) Charge(ctx context.Context, booking *models.Booking, amount float64) (*ChargeResult, error) {
	ref := "bank_" + uuid.New().String()
	g.Logger.Info("bank transfer recorded",
		zap.String("bookingID", booking.ID), zap.String("reference", ref))
	return &ChargeResult{PaymentID: ref}, nil
}

// Refund fabricates a successful refund reference.
func (g *BankTransferGateway) Refund(ctx context.Context, booking *models.Booking, amount float64) (*models.RefundResult, error) {
	ref := "bankrefund_" + uuid.New().String()
	g.Logger.Info("bank refund recorded",
		zap.String("bookingID", booking.ID), zap.String("reference", ref))
	return &models.RefundResult{RefundID: ref, Amount: amount}, nil
}
