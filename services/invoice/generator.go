package invoice

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"travelgo/models"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// Generator renders PDF receipts into a local directory. Invoice numbers
// embed the booking ID, so they are naturally unique per booking per day.
type Generator struct {
	Dir    string
	Logger *zap.Logger

	// Now is swapped in tests; defaults to time.Now.
	Now func() time.Time
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Number builds the deterministic invoice number for a booking on the
// current date: INV-YYYYMMDD-<bookingID>.
func (g *Generator) Number(bookingID string) string {
	return fmt.Sprintf("INV-%s-%s", g.now().Format("20060102"), bookingID)
}

// Generate renders the fixed-layout receipt and returns the invoice record.
func (g *Generator) Generate(booking *models.Booking, result *models.PaymentResult) (*models.Invoice, error) {
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create invoice directory: %w", err)
	}

	number := g.Number(booking.ID)
	path := filepath.Join(g.Dir, number+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header.
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "Travel.Go Booking Invoice")
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice %s", number))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Issued %s", g.now().Format("2 January 2006")))
	pdf.Ln(12)

	// Guest info.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Guest")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, booking.GuestName)
	pdf.Ln(6)
	pdf.Cell(0, 6, booking.GuestEmail)
	if booking.GuestPhone != "" {
		pdf.Ln(6)
		pdf.Cell(0, 6, booking.GuestPhone)
	}
	pdf.Ln(12)

	// Stay details.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Stay")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Booking %s", booking.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Check-in: %s", booking.CheckIn.Format("2 January 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Check-out: %s", booking.CheckOut.Format("2 January 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Guests: %d", booking.Guests))
	pdf.Ln(12)

	// Payment info.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Payment")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Amount charged: %.2f", result.AmountCharged))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Payment reference: %s", result.PaymentID))
	if result.TransactionHash != "" {
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Transaction hash: %s", result.TransactionHash))
	}
	pdf.Ln(14)

	// Blockchain-verification footer.
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, "Bookings paid on-chain can be independently verified against the Travel.Go booking contract.")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", number, err)
	}

	g.Logger.Info("invoice rendered", zap.String("number", number), zap.String("path", path))
	return &models.Invoice{
		Number:    number,
		BookingID: booking.ID,
		Amount:    result.AmountCharged,
		Path:      path,
		CreatedAt: g.now(),
	}, nil
}

// Lookup returns the path of a rendered invoice, or the empty string when no
// file exists for the number.
func (g *Generator) Lookup(number string) string {
	path := filepath.Join(g.Dir, number+".pdf")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// LookupByBooking finds the invoice rendered for a booking regardless of the
// date it was issued. Returns the number and path, or empty strings.
func (g *Generator) LookupByBooking(bookingID string) (string, string) {
	matches, err := filepath.Glob(filepath.Join(g.Dir, "INV-*-"+bookingID+".pdf"))
	if err != nil || len(matches) == 0 {
		return "", ""
	}
	path := matches[len(matches)-1]
	number := strings.TrimSuffix(filepath.Base(path), ".pdf")
	return number, path
}
