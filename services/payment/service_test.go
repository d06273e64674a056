package payment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"travelgo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- fakes ----

// recordingGateway tracks the peak number of simultaneous Charge calls.
type recordingGateway struct {
	delay      time.Duration
	chargeErr  error
	refundErr  error
	inFlight   int64
	maxFlight  int64
	chargeSeen int64
}

func (g *recordingGateway) Charge(ctx context.Context, booking *models.Booking, amount float64) (*ChargeResult, error) {
	cur := atomic.AddInt64(&g.inFlight, 1)
	defer atomic.AddInt64(&g.inFlight, -1)
	for {
		max := atomic.LoadInt64(&g.maxFlight)
		if cur <= max || atomic.CompareAndSwapInt64(&g.maxFlight, max, cur) {
			break
		}
	}
	atomic.AddInt64(&g.chargeSeen, 1)

	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if g.chargeErr != nil {
		return nil, g.chargeErr
	}
	return &ChargeResult{PaymentID: "pay_" + booking.ID}, nil
}

func (g *recordingGateway) Refund(ctx context.Context, booking *models.Booking, amount float64) (*models.RefundResult, error) {
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	return &models.RefundResult{RefundID: "re_" + booking.ID, Amount: amount}, nil
}

type fakeInvoices struct {
	err error
}

func (f *fakeInvoices) Generate(booking *models.Booking, result *models.PaymentResult) (*models.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Invoice{Number: "INV-20250601-" + booking.ID, BookingID: booking.ID}, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
	refunds   []string
	reminders []string
}

func (f *fakeNotifier) SendPaymentSuccess(b *models.Booking, r *models.PaymentResult) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes = append(f.successes, b.ID)
	return true
}

func (f *fakeNotifier) SendPaymentFailure(b *models.Booking, reason string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, b.ID)
	return true
}

func (f *fakeNotifier) SendRefundNotice(b *models.Booking, r *models.RefundResult) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunds = append(f.refunds, b.ID)
	return true
}

func (f *fakeNotifier) SendCheckInReminder(b *models.Booking) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminders = append(f.reminders, b.ID)
	return true
}

// ---- helpers ----

func testBooking(id string) *models.Booking {
	return &models.Booking{
		ID:            id,
		UserID:        "user-1",
		TotalPrice:    200,
		Status:        models.BookingStatusConfirmed,
		GuestEmail:    "guest@example.com",
		PaymentMethod: models.PaymentMethodCard,
		CreatedAt:     time.Now(),
	}
}

func newTestService(cfg Config, gw Gateway) (*Service, *fakeNotifier) {
	notifier := &fakeNotifier{}
	gateways := map[string]Gateway{
		models.PaymentMethodCard:   gw,
		models.PaymentMethodCrypto: gw,
		models.PaymentMethodBank:   gw,
	}
	svc := NewService(cfg, gateways, &fakeInvoices{}, notifier, zap.NewNop())
	return svc, notifier
}

// ---- tests ----

func TestProcessPayment_RejectsInvalidMethodSynchronously(t *testing.T) {
	gw := &recordingGateway{}
	svc, _ := newTestService(DefaultConfig(), gw)
	defer svc.Stop()

	_, err := svc.ProcessPayment(context.Background(), testBooking("b1"), "cheque")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMethod)
	assert.Zero(t, atomic.LoadInt64(&gw.chargeSeen)) // never reached the queue
}

func TestProcessPayment_AppliesProcessingFee(t *testing.T) {
	gw := &recordingGateway{}
	cfg := DefaultConfig()
	cfg.FeeRate = 0.025
	svc, notifier := newTestService(cfg, gw)
	defer svc.Stop()

	result, err := svc.ProcessPayment(context.Background(), testBooking("b1"), models.PaymentMethodCard)
	require.NoError(t, err)

	assert.InDelta(t, 205.0, result.AmountCharged, 0.0001) // 200 * 1.025
	assert.Equal(t, "INV-20250601-b1", result.InvoiceNumber)
	assert.Equal(t, []string{"b1"}, notifier.successes)
}

func TestProcessPayment_ConcurrencyCap(t *testing.T) {
	gw := &recordingGateway{delay: 30 * time.Millisecond}
	cfg := DefaultConfig()
	cfg.Concurrency = 3
	svc, _ := newTestService(cfg, gw)
	defer svc.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.ProcessPayment(context.Background(), testBooking("b"), models.PaymentMethodCard)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt64(&gw.maxFlight), int64(3))
	assert.Equal(t, int64(12), atomic.LoadInt64(&gw.chargeSeen))
}

func TestProcessPayment_GatewayFailureSendsFailureEmail(t *testing.T) {
	gw := &recordingGateway{chargeErr: errors.New("card declined")}
	svc, notifier := newTestService(DefaultConfig(), gw)
	defer svc.Stop()

	_, err := svc.ProcessPayment(context.Background(), testBooking("b1"), models.PaymentMethodCard)
	require.Error(t, err)
	assert.Equal(t, []string{"b1"}, notifier.failures)
	assert.Empty(t, notifier.successes)
}

func TestProcessPayment_InvoiceFailureSendsFailureEmail(t *testing.T) {
	gw := &recordingGateway{}
	notifier := &fakeNotifier{}
	gateways := map[string]Gateway{models.PaymentMethodCard: gw}
	svc := NewService(DefaultConfig(), gateways, &fakeInvoices{err: errors.New("disk full")}, notifier, zap.NewNop())
	defer svc.Stop()

	_, err := svc.ProcessPayment(context.Background(), testBooking("b1"), models.PaymentMethodCard)
	require.Error(t, err)
	assert.Equal(t, []string{"b1"}, notifier.failures)
}

func TestProcessRefund_WindowExpired(t *testing.T) {
	gw := &recordingGateway{}
	cfg := DefaultConfig()
	cfg.RefundWindow = 24 * time.Hour
	svc, notifier := newTestService(cfg, gw)
	defer svc.Stop()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	bk := testBooking("b1")
	bk.CreatedAt = base.Add(-25 * time.Hour)

	_, err := svc.ProcessRefund(context.Background(), bk)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRefundWindowExpired)
	assert.Empty(t, notifier.refunds) // no side effects past the window
}

func TestProcessRefund_WithinWindow(t *testing.T) {
	gw := &recordingGateway{}
	svc, notifier := newTestService(DefaultConfig(), gw)
	defer svc.Stop()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	bk := testBooking("b1")
	bk.CreatedAt = base.Add(-24 * time.Hour) // exactly on the boundary is allowed

	result, err := svc.ProcessRefund(context.Background(), bk)
	require.NoError(t, err)
	assert.Equal(t, 200.0, result.Amount)
	assert.Equal(t, []string{"b1"}, notifier.refunds)
}

func TestSubmitAfterStop(t *testing.T) {
	gw := &recordingGateway{}
	svc, _ := newTestService(DefaultConfig(), gw)
	svc.Stop()

	_, err := svc.ProcessPayment(context.Background(), testBooking("b1"), models.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrServiceStopped)
}

func TestStopWaitsForInFlightJobs(t *testing.T) {
	gw := &recordingGateway{delay: 20 * time.Millisecond}
	svc, _ := newTestService(DefaultConfig(), gw)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := svc.ProcessPayment(context.Background(), testBooking("b1"), models.PaymentMethodCard)
		assert.NoError(t, err)
	}()

	time.Sleep(5 * time.Millisecond) // let the job reach a worker
	svc.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("payment did not complete after Stop")
	}
}
