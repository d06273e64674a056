package invoice

import (
	"os"
	"testing"
	"time"

	"travelgo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedDate = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	return &Generator{
		Dir:    t.TempDir(),
		Logger: zap.NewNop(),
		Now:    func() time.Time { return fixedDate },
	}
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:         "bk-42",
		GuestName:  "Ada Wanjiru",
		GuestEmail: "ada@example.com",
		CheckIn:    fixedDate.AddDate(0, 0, 10),
		CheckOut:   fixedDate.AddDate(0, 0, 12),
		Guests:     2,
		TotalPrice: 200,
	}
}

func TestNumberFormat(t *testing.T) {
	g := newTestGenerator(t)
	assert.Equal(t, "INV-20250601-bk-42", g.Number("bk-42"))
}

func TestGenerateWritesPDF(t *testing.T) {
	g := newTestGenerator(t)

	result := &models.PaymentResult{
		PaymentID:     "pay_123",
		AmountCharged: 205,
	}
	inv, err := g.Generate(sampleBooking(), result)
	require.NoError(t, err)

	assert.Equal(t, "INV-20250601-bk-42", inv.Number)
	assert.Equal(t, "bk-42", inv.BookingID)
	assert.Equal(t, 205.0, inv.Amount)

	info, err := os.Stat(inv.Path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateIsIdempotentPerDay(t *testing.T) {
	g := newTestGenerator(t)
	result := &models.PaymentResult{PaymentID: "pay_123", AmountCharged: 205}

	first, err := g.Generate(sampleBooking(), result)
	require.NoError(t, err)
	second, err := g.Generate(sampleBooking(), result)
	require.NoError(t, err)

	// Same booking, same day: the number and path are stable.
	assert.Equal(t, first.Number, second.Number)
	assert.Equal(t, first.Path, second.Path)
}

func TestLookup(t *testing.T) {
	g := newTestGenerator(t)
	result := &models.PaymentResult{PaymentID: "pay_123", AmountCharged: 205}

	inv, err := g.Generate(sampleBooking(), result)
	require.NoError(t, err)

	assert.Equal(t, inv.Path, g.Lookup(inv.Number))
	assert.Empty(t, g.Lookup("INV-20250601-unknown"))
}

func TestLookupByBooking(t *testing.T) {
	g := newTestGenerator(t)
	result := &models.PaymentResult{PaymentID: "pay_123", AmountCharged: 205}

	inv, err := g.Generate(sampleBooking(), result)
	require.NoError(t, err)

	number, path := g.LookupByBooking("bk-42")
	assert.Equal(t, inv.Number, number)
	assert.Equal(t, inv.Path, path)

	number, path = g.LookupByBooking("bk-missing")
	assert.Empty(t, number)
	assert.Empty(t, path)
}
