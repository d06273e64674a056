package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"travelgo/models"
	"travelgo/services/notification"

	"go.uber.org/zap"
)

// InvoiceGenerator is the slice of the invoice service the orchestrator
// needs; tests substitute a fake.
type InvoiceGenerator interface {
	Generate(booking *models.Booking, result *models.PaymentResult) (*models.Invoice, error)
}

// Config tunes the orchestrator.
type Config struct {
	Concurrency  int           // max payment jobs in flight simultaneously
	JobTimeout   time.Duration // per-job deadline
	FeeRate      float64       // processing fee as a fraction of the amount
	RefundWindow time.Duration // wall-clock window after creation during which refunds run
	QueueSize    int           // buffered FIFO capacity; 0 means unbuffered
}

// DefaultConfig mirrors the documented defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency:  10,
		JobTimeout:   30 * time.Second,
		FeeRate:      0.025,
		RefundWindow: 24 * time.Hour,
		QueueSize:    256,
	}
}

type jobKind int

const (
	jobPayment jobKind = iota
	jobRefund
)

type jobResult struct {
	payment *models.PaymentResult
	refund  *models.RefundResult
	err     error
}

type job struct {
	kind    jobKind
	booking *models.Booking
	method  string
	done    chan jobResult
}

// Service serializes payment and refund attempts through a FIFO queue
// drained by a fixed pool of workers, so no more than Concurrency gateway
// calls run at once no matter how many checkout requests arrive.
type Service struct {
	cfg      Config
	gateways map[string]Gateway
	invoices InvoiceGenerator
	notifier notification.NotificationService
	logger   *zap.Logger

	jobs chan *job
	wg   sync.WaitGroup

	stopMu  sync.Mutex
	stopped bool

	// now is swapped in tests; defaults to time.Now.
	now func() time.Time
}

// NewService builds the orchestrator and starts its worker pool.
func NewService(cfg Config, gateways map[string]Gateway, invoices InvoiceGenerator, notifier notification.NotificationService, logger *zap.Logger) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultConfig().JobTimeout
	}
	if cfg.RefundWindow <= 0 {
		cfg.RefundWindow = DefaultConfig().RefundWindow
	}

	s := &Service{
		cfg:      cfg,
		gateways: gateways,
		invoices: invoices,
		notifier: notifier,
		logger:   logger,
		jobs:     make(chan *job, cfg.QueueSize),
		now:      time.Now,
	}
	for i := 0; i < cfg.Concurrency; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Stop drains the queue and waits for in-flight jobs to finish.
func (s *Service) Stop() {
	s.stopMu.Lock()
	if s.stopped {
		s.stopMu.Unlock()
		return
	}
	s.stopped = true
	close(s.jobs)
	s.stopMu.Unlock()
	s.wg.Wait()
}

// submit enqueues under the stop mutex so a concurrent Stop can never close
// the channel out from under a sender.
func (s *Service) submit(ctx context.Context, j *job) error {
	s.stopMu.Lock()
	defer s.stopMu.Unlock()
	if s.stopped {
		return ErrServiceStopped
	}
	select {
	case s.jobs <- j:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ProcessPayment runs the payment flow for a booking. The method is
// validated synchronously; anything else waits its turn in the queue. The
// call blocks until the job completes, times out, or ctx is cancelled.
func (s *Service) ProcessPayment(ctx context.Context, booking *models.Booking, method string) (*models.PaymentResult, error) {
	if !models.IsValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	j := &job{kind: jobPayment, booking: booking, method: method, done: make(chan jobResult, 1)}
	if err := s.submit(ctx, j); err != nil {
		return nil, err
	}

	select {
	case res := <-j.done:
		return res.payment, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ProcessRefund runs the refund flow. The refund window is checked before
// the job is enqueued, so an expired refund never triggers side effects.
func (s *Service) ProcessRefund(ctx context.Context, booking *models.Booking) (*models.RefundResult, error) {
	if s.now().Sub(booking.CreatedAt) > s.cfg.RefundWindow {
		return nil, ErrRefundWindowExpired
	}
	method := booking.PaymentMethod
	if !models.IsValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	j := &job{kind: jobRefund, booking: booking, method: method, done: make(chan jobResult, 1)}
	if err := s.submit(ctx, j); err != nil {
		return nil, err
	}

	select {
	case res := <-j.done:
		return res.refund, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) worker() {
	defer s.wg.Done()
	for j := range s.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
		switch j.kind {
		case jobPayment:
			result, err := s.runPayment(ctx, j.booking, j.method)
			j.done <- jobResult{payment: result, err: err}
		case jobRefund:
			result, err := s.runRefund(ctx, j.booking, j.method)
			j.done <- jobResult{refund: result, err: err}
		}
		cancel()
	}
}

// runPayment executes one payment job: charge, invoice, success email. Any
// error along the way sends the failure email and rejects.
func (s *Service) runPayment(ctx context.Context, booking *models.Booking, method string) (*models.PaymentResult, error) {
	gw, ok := s.gateways[method]
	if !ok {
		return nil, fmt.Errorf("%w: no gateway for %q", ErrInvalidMethod, method)
	}

	total := booking.TotalPrice * (1 + s.cfg.FeeRate)

	charge, err := gw.Charge(ctx, booking, total)
	if err != nil {
		s.logger.Error("payment charge failed",
			zap.String("bookingID", booking.ID), zap.String("method", method), zap.Error(err))
		s.notifier.SendPaymentFailure(booking, err.Error())
		return nil, err
	}

	result := &models.PaymentResult{
		PaymentID:       charge.PaymentID,
		TransactionHash: charge.TransactionHash,
		AmountCharged:   total,
	}

	inv, err := s.invoices.Generate(booking, result)
	if err != nil {
		s.logger.Error("invoice generation failed",
			zap.String("bookingID", booking.ID), zap.Error(err))
		s.notifier.SendPaymentFailure(booking, "payment captured but invoice generation failed")
		return nil, err
	}
	result.InvoiceNumber = inv.Number

	s.notifier.SendPaymentSuccess(booking, result)

	s.logger.Info("payment processed",
		zap.String("bookingID", booking.ID),
		zap.String("method", method),
		zap.String("invoice", inv.Number),
		zap.Float64("amount", total))
	return result, nil
}

// runRefund executes one refund job and emails the refund notice.
func (s *Service) runRefund(ctx context.Context, booking *models.Booking, method string) (*models.RefundResult, error) {
	gw, ok := s.gateways[method]
	if !ok {
		return nil, fmt.Errorf("%w: no gateway for %q", ErrInvalidMethod, method)
	}

	result, err := gw.Refund(ctx, booking, booking.TotalPrice)
	if err != nil {
		s.logger.Error("refund failed",
			zap.String("bookingID", booking.ID), zap.String("method", method), zap.Error(err))
		return nil, err
	}

	s.notifier.SendRefundNotice(booking, result)

	s.logger.Info("refund processed",
		zap.String("bookingID", booking.ID),
		zap.String("refundID", result.RefundID))
	return result, nil
}
