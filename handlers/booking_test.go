package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"travelgo/models"
	"travelgo/services/booking"
	"travelgo/services/invoice"
	"travelgo/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookingService returns canned bookings and errors per method.
type stubBookingService struct {
	booking *models.Booking
	getErr  error
	editErr error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, userID string, input models.BookingInput) (*models.Booking, error) {
	return s.booking, nil
}

func (s *stubBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.booking, nil
}

func (s *stubBookingService) EditBooking(ctx context.Context, bookingID string, input models.BookingEditInput) (*models.Booking, error) {
	if s.editErr != nil {
		return nil, s.editErr
	}
	return s.booking, nil
}

func (s *stubBookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	bk := *s.booking
	bk.Status = models.BookingStatusCancelled
	return &bk, nil
}

func (s *stubBookingService) AttachTransaction(ctx context.Context, bookingID, txHash, approvalHash string) (*models.Booking, error) {
	return s.booking, nil
}

func (s *stubBookingService) MarkRefunded(ctx context.Context, bookingID string) (*models.Booking, error) {
	bk := *s.booking
	bk.Refunded = true
	return &bk, nil
}

func (s *stubBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, nil
}

type okGateway struct{}

func (okGateway) Charge(ctx context.Context, b *models.Booking, amount float64) (*payment.ChargeResult, error) {
	return &payment.ChargeResult{PaymentID: "pay_1"}, nil
}

func (okGateway) Refund(ctx context.Context, b *models.Booking, amount float64) (*models.RefundResult, error) {
	return &models.RefundResult{RefundID: "re_1", Amount: amount}, nil
}

type dropNotifier struct{}

func (dropNotifier) SendPaymentSuccess(*models.Booking, *models.PaymentResult) bool { return true }
func (dropNotifier) SendPaymentFailure(*models.Booking, string) bool                { return true }
func (dropNotifier) SendRefundNotice(*models.Booking, *models.RefundResult) bool    { return true }
func (dropNotifier) SendCheckInReminder(*models.Booking) bool                       { return true }

func newTestRouter(t *testing.T, svc booking.BookingService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gateways := map[string]payment.Gateway{
		models.PaymentMethodCard: okGateway{},
		models.PaymentMethodBank: okGateway{},
	}
	invoices := &invoice.Generator{Dir: t.TempDir(), Logger: zap.NewNop()}
	payments := payment.NewService(payment.DefaultConfig(), gateways, invoices, dropNotifier{}, zap.NewNop())
	t.Cleanup(payments.Stop)

	h := NewBookingHandler(svc, payments, invoices, nil, zap.NewNop())

	r := gin.New()
	r.GET("/api/bookings/:id", h.GetBookingHandler)
	r.PUT("/api/bookings/:id", h.EditBookingHandler)
	r.DELETE("/api/bookings/:id", h.CancelBookingHandler)
	r.POST("/api/bookings/:id/payment", h.PayBookingHandler)
	r.POST("/api/bookings/:id/refund", h.RefundBookingHandler)
	r.GET("/api/bookings/:id/confirmation", h.BookingConfirmationHandler)
	r.GET("/api/hotels/booking-confirmation/:id", h.BookingConfirmationHandler)
	return r
}

func confirmedBooking() *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		UserID:        "user-1",
		TotalPrice:    200,
		Status:        models.BookingStatusConfirmed,
		PaymentMethod: models.PaymentMethodCard,
		CheckIn:       time.Now().Add(48 * time.Hour),
		CheckOut:      time.Now().Add(96 * time.Hour),
		CreatedAt:     time.Now(),
	}
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetBooking_NotFoundMapsTo404(t *testing.T) {
	svc := &stubBookingService{getErr: &booking.BookingError{Code: booking.CodeNotFound, Message: "booking not found"}}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodGet, "/api/bookings/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditBooking_AlreadyEditedMapsTo400(t *testing.T) {
	svc := &stubBookingService{
		booking: confirmedBooking(),
		editErr: &booking.BookingError{Code: booking.CodeAlreadyEdited, Message: "edit already requested"},
	}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodPut, "/api/bookings/bk-1", `{"guests":3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditBooking_ConflictMapsTo409(t *testing.T) {
	svc := &stubBookingService{
		booking: confirmedBooking(),
		editErr: &booking.BookingError{Code: booking.CodeConflict, Message: "retry"},
	}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodPut, "/api/bookings/bk-1", `{"guests":3}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEditBooking_RejectsUnknownFields(t *testing.T) {
	svc := &stubBookingService{booking: confirmedBooking()}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodPut, "/api/bookings/bk-1", `{"guests":3,"totalPrice":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayBooking_Success(t *testing.T) {
	svc := &stubBookingService{booking: confirmedBooking()}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodPost, "/api/bookings/bk-1/payment", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"invoiceNumber"`)
}

func TestPayBooking_UnsupportedMethodMapsTo400(t *testing.T) {
	bk := confirmedBooking()
	bk.PaymentMethod = "cheque"
	svc := &stubBookingService{booking: bk}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodPost, "/api/bookings/bk-1/payment", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelBooking_ReturnsCancelledBooking(t *testing.T) {
	svc := &stubBookingService{booking: confirmedBooking()}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodDelete, "/api/bookings/bk-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
}

// Cancellation is a status transition only; a booking far past the refund
// window still cancels cleanly, it just stays unrefunded.
func TestCancelBooking_PastRefundWindowStillSucceeds(t *testing.T) {
	bk := confirmedBooking()
	bk.CreatedAt = time.Now().Add(-72 * time.Hour)
	bk.CheckIn = time.Now().Add(14 * 24 * time.Hour)
	svc := &stubBookingService{booking: bk}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodDelete, "/api/bookings/bk-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"refunded":false`)
}

func TestRefundBooking_NotCancelledMapsTo400(t *testing.T) {
	svc := &stubBookingService{booking: confirmedBooking()}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodPost, "/api/bookings/bk-1/refund", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "only cancelled bookings")
}

func TestRefundBooking_AlreadyRefundedMapsTo400(t *testing.T) {
	bk := confirmedBooking()
	bk.Status = models.BookingStatusCancelled
	bk.Refunded = true
	svc := &stubBookingService{booking: bk}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodPost, "/api/bookings/bk-1/refund", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already refunded")
}

func TestRefundBooking_WindowExpiredMapsTo400(t *testing.T) {
	bk := confirmedBooking()
	bk.Status = models.BookingStatusCancelled
	bk.CreatedAt = time.Now().Add(-48 * time.Hour)
	svc := &stubBookingService{booking: bk}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodPost, "/api/bookings/bk-1/refund", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "refund window")
}

func TestRefundBooking_SuccessMarksRefunded(t *testing.T) {
	bk := confirmedBooking()
	bk.Status = models.BookingStatusCancelled
	svc := &stubBookingService{booking: bk}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodPost, "/api/bookings/bk-1/refund", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"refund"`)
	assert.Contains(t, w.Body.String(), `"refunded":true`)
}

func TestBookingConfirmation_IncludesBooking(t *testing.T) {
	svc := &stubBookingService{booking: confirmedBooking()}
	r := newTestRouter(t, svc)

	w := doJSON(r, http.MethodGet, "/api/bookings/bk-1/confirmation", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"booking"`)
}
