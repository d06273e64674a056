package models

// Supported payment methods.
const (
	PaymentMethodCrypto = "crypto"
	PaymentMethodCard   = "card"
	PaymentMethodBank   = "bank"
)

// IsValidPaymentMethod reports whether method is one of crypto, card or bank.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCrypto, PaymentMethodCard, PaymentMethodBank:
		return true
	}
	return false
}

// PaymentResult is what a completed payment job resolves with.
type PaymentResult struct {
	PaymentID       string  `json:"paymentId"`
	InvoiceNumber   string  `json:"invoiceNumber"`
	TransactionHash string  `json:"transactionHash,omitempty"`
	AmountCharged   float64 `json:"amountCharged"` // booking total plus the processing fee
}

// RefundResult is what a completed refund job resolves with.
type RefundResult struct {
	RefundID string  `json:"refundId"`
	Amount   float64 `json:"amount"`
}
