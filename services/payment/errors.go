package payment

import "errors"

var (
	// ErrInvalidMethod rejects a payment method outside {crypto, card, bank}.
	// Raised synchronously, before any job is enqueued.
	ErrInvalidMethod = errors.New("unsupported payment method")

	// ErrRefundWindowExpired rejects refunds requested after the configured
	// window past booking creation.
	ErrRefundWindowExpired = errors.New("refund window has expired")

	// ErrServiceStopped is returned when a job is submitted after Stop.
	ErrServiceStopped = errors.New("payment service is stopped")

	// ErrMissingTransaction rejects crypto charges for bookings that carry
	// no client-submitted transaction hash.
	ErrMissingTransaction = errors.New("booking has no transaction hash to verify")

	// ErrTransactionFailed is returned when the on-chain receipt exists but
	// reports a failed execution.
	ErrTransactionFailed = errors.New("on-chain transaction was not successful")
)
