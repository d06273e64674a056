package cron

import (
	"context"
	"encoding/json"
	"time"

	"travelgo/config"
	bookingRepo "travelgo/database/repository/booking"
	"travelgo/models"
	"travelgo/services/chain"
	"travelgo/services/notification"
	"travelgo/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Task types handled by the background worker.
const (
	TypeCheckInReminder = "booking:reminder"
	TypeChainReconcile  = "chain:reconcile"
)

// reconcileLookback bounds how far back the reconciliation sweep reaches.
const reconcileLookback = 48 * time.Hour

// reminderWindow is how far ahead of check-in the reminder sweep looks.
const reminderWindow = 24 * time.Hour

// ReminderPayload schedules a single check-in reminder email.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
}

// Worker owns the asynq server and its periodic schedule.
type Worker struct {
	srv       *asynq.Server
	scheduler *asynq.Scheduler

	bookings bookingRepo.BookingRepository
	notifier notification.NotificationService
	chain    chain.ChainClient
	logger   *zap.Logger

	// now is swapped in tests; defaults to time.Now.
	now func() time.Time
}

// NewWorker wires the background worker. chainClient may be nil when no
// provider is configured; reconciliation then marks bookings unverified.
func NewWorker(cfg *config.Config, bookings bookingRepo.BookingRepository, notifier notification.NotificationService, chainClient chain.ChainClient) *Worker {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	scheduler := asynq.NewScheduler(redisOpts, nil)

	return &Worker{
		srv:       srv,
		scheduler: scheduler,
		bookings:  bookings,
		notifier:  notifier,
		chain:     chainClient,
		logger:    utils.GetLogger().Named("cron"),
		now:       time.Now,
	}
}

// Start launches the worker and the periodic schedule in the background,
// retrying startup with backoff when Redis is not yet reachable.
func (w *Worker) Start() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCheckInReminder, w.handleReminderTask)
	mux.HandleFunc(TypeChainReconcile, w.handleReconcileTask)

	if _, err := w.scheduler.Register("0 8 * * *", asynq.NewTask(TypeCheckInReminder, nil)); err != nil {
		w.logger.Error("failed to register reminder schedule", zap.Error(err))
	}
	if _, err := w.scheduler.Register("@every 1h", asynq.NewTask(TypeChainReconcile, nil)); err != nil {
		w.logger.Error("failed to register reconcile schedule", zap.Error(err))
	}

	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.logger.Error("scheduler stopped", zap.Error(err))
		}
	}()

	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			w.logger.Info("starting background worker", zap.Int("attempt", attempts))
			err := w.srv.Run(mux)
			if err == nil {
				return
			}
			w.logger.Error("background worker failed to start",
				zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("background worker giving up after max attempts")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Stop shuts the scheduler and server down, waiting for in-flight tasks.
func (w *Worker) Stop() {
	w.scheduler.Shutdown()
	w.srv.Shutdown()
}

// handleReminderTask emails check-in reminders. Without a payload it sweeps
// for confirmed bookings checking in within the next day; with a payload it
// reminds a single booking.
func (w *Worker) handleReminderTask(ctx context.Context, task *asynq.Task) error {
	if len(task.Payload()) > 0 {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			w.logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}
		bk, err := w.bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			return err
		}
		if bk != nil && bk.IsConfirmed() {
			w.notifier.SendCheckInReminder(bk)
		}
		return nil
	}

	now := w.now()
	candidates, err := w.bookings.ListUpcomingCheckIns(ctx, now, now.Add(reminderWindow))
	if err != nil {
		return err
	}
	sent := 0
	for i := range candidates {
		if w.notifier.SendCheckInReminder(&candidates[i]) {
			sent++
		}
	}
	w.logger.Info("check-in reminder sweep complete", zap.Int("sent", sent))
	return nil
}

// handleReconcileTask compares stored transaction hashes against on-chain
// receipts and records the outcome on each booking. Detection only; it never
// mutates booking state beyond the reconcile status.
func (w *Worker) handleReconcileTask(ctx context.Context, task *asynq.Task) error {
	since := w.now().Add(-reconcileLookback)
	candidates, err := w.bookings.ListRecentWithTransactions(ctx, since)
	if err != nil {
		return err
	}

	for i := range candidates {
		bk := &candidates[i]
		status := w.reconcileOne(ctx, bk)
		if status == bk.ReconcileStatus {
			continue
		}
		if err := w.bookings.SetReconcileStatus(ctx, bk.ID, status); err != nil {
			w.logger.Error("failed to record reconcile status",
				zap.String("bookingID", bk.ID), zap.Error(err))
			continue
		}
		if status == models.ReconcileMismatch {
			w.logger.Warn("on-chain mismatch detected",
				zap.String("bookingID", bk.ID),
				zap.String("txHash", bk.TransactionHash))
		}
	}

	w.logger.Info("reconciliation sweep complete", zap.Int("checked", len(candidates)))
	return nil
}

func (w *Worker) reconcileOne(ctx context.Context, bk *models.Booking) string {
	if w.chain == nil || !w.chain.Enabled() {
		return models.ReconcileUnverified
	}
	ok, err := w.chain.VerifyTransaction(ctx, bk.TransactionHash)
	if err != nil {
		w.logger.Warn("receipt lookup failed",
			zap.String("bookingID", bk.ID), zap.Error(err))
		return models.ReconcileUnverified
	}
	if !ok {
		return models.ReconcileMismatch
	}
	return models.ReconcileOK
}
