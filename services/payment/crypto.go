package payment

import (
	"context"
	"fmt"

	"travelgo/models"
	"travelgo/services/chain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CryptoGateway settles crypto payments by verifying the client wallet's
// transaction against the booking contract. The server never moves funds:
// it confirms the receipt the client already produced.
type CryptoGateway struct {
	Chain  chain.ChainClient
	Logger *zap.Logger
}

// Charge verifies the booking's transaction hash has a successful receipt.
func (g *CryptoGateway) Charge(ctx context.Context, booking *models.Booking, amount float64) (*ChargeResult, error) {
	if booking.TransactionHash == "" {
		return nil, ErrMissingTransaction
	}
	if g.Chain == nil || !g.Chain.Enabled() {
		return nil, fmt.Errorf("chain integration is not configured")
	}

	ok, err := g.Chain.VerifyTransaction(ctx, booking.TransactionHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify transaction %s: %w", booking.TransactionHash, err)
	}
	if !ok {
		return nil, ErrTransactionFailed
	}

	g.Logger.Info("crypto payment verified",
		zap.String("bookingID", booking.ID), zap.String("txHash", booking.TransactionHash))
	return &ChargeResult{
		PaymentID:       "chain_" + booking.TransactionHash,
		TransactionHash: booking.TransactionHash,
	}, nil
}

// Refund records the refund intent only. The actual fund movement is a
// client-initiated wallet transaction against the contract; the server has
// no key to move escrowed value.
func (g *CryptoGateway) Refund(ctx context.Context, booking *models.Booking, amount float64) (*models.RefundResult, error) {
	g.Logger.Info("crypto refund recorded, awaiting client wallet transaction",
		zap.String("bookingID", booking.ID))
	return &models.RefundResult{RefundID: "chainrefund_" + uuid.New().String(), Amount: amount}, nil
}
