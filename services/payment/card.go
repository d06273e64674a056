package payment

import (
	"context"
	"fmt"

	"travelgo/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// StripeCardGateway charges cards through Stripe PaymentIntents. The global
// stripe.Key is set at startup from configuration.
type StripeCardGateway struct {
	Currency string
	Logger   *zap.Logger
}

// Charge creates and confirms a PaymentIntent for the amount.
func (g *StripeCardGateway) Charge(ctx context.Context, booking *models.Booking, amount float64) (*ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(g.currency()),
		Confirm:  stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
		Description: stripe.String(fmt.Sprintf("Travel.Go booking %s", booking.ID)),
	}
	params.Context = ctx
	params.AddMetadata("bookingId", booking.ID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe charge failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded && pi.Status != stripe.PaymentIntentStatusRequiresCapture {
		return nil, fmt.Errorf("stripe payment intent ended in status %s", pi.Status)
	}

	g.Logger.Info("card payment succeeded",
		zap.String("bookingID", booking.ID), zap.String("paymentIntent", pi.ID))
	return &ChargeResult{PaymentID: pi.ID}, nil
}

// Refund reverses the booking's PaymentIntent. Card bookings store the
// PaymentIntent ID in the booking's transaction-hash field after checkout.
func (g *StripeCardGateway) Refund(ctx context.Context, booking *models.Booking, amount float64) (*models.RefundResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(booking.TransactionHash),
		Amount:        stripe.Int64(toMinorUnits(amount)),
	}
	params.Context = ctx

	r, err := refund.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe refund failed: %w", err)
	}

	g.Logger.Info("card refund succeeded",
		zap.String("bookingID", booking.ID), zap.String("refund", r.ID))
	return &models.RefundResult{RefundID: r.ID, Amount: amount}, nil
}

func (g *StripeCardGateway) currency() string {
	if g.Currency == "" {
		return "usd"
	}
	return g.Currency
}

func toMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
