package handlers

import (
	"errors"
	"net/http"

	"travelgo/models"
	"travelgo/services/booking"
	"travelgo/services/chain"
	"travelgo/services/invoice"
	"travelgo/services/payment"
	"travelgo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the reservation lifecycle plus the payment and
// refund endpoints that put jobs on the orchestrator queue.
type BookingHandler struct {
	Service  booking.BookingService
	Payments *payment.Service
	Invoices *invoice.Generator
	Chain    chain.ChainClient
	Logger   *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, payments *payment.Service, invoices *invoice.Generator, chainClient chain.ChainClient, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Payments: payments, Invoices: invoices, Chain: chainClient, Logger: logger}
}

// bookingStatus maps booking service error codes onto HTTP statuses.
func bookingStatus(err error) int {
	be, ok := err.(*booking.BookingError)
	if !ok {
		return http.StatusInternalServerError
	}
	switch be.Code {
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeConflict:
		return http.StatusConflict
	case booking.CodeNotConfirmed, booking.CodeAlreadyEdited, booking.CodeAlreadyStarted,
		booking.CodeInvalidDates, booking.CodeRoomUnavailable:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// paymentStatus maps orchestrator errors onto HTTP statuses.
func paymentStatus(err error) int {
	switch {
	case errors.Is(err, payment.ErrInvalidMethod),
		errors.Is(err, payment.ErrMissingTransaction),
		errors.Is(err, payment.ErrRefundWindowExpired):
		return http.StatusBadRequest
	case errors.Is(err, payment.ErrTransactionFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, payment.ErrServiceStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var input models.BookingInput
	if err := utils.BindStrictJSON(c, &input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload", err.Error())
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), userID, input)
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "failed to create booking", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	bk, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "failed to fetch booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, bk)
}

// ListUserBookingsHandler handles GET /api/bookings.
func (h *BookingHandler) ListUserBookingsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	bookings, err := h.Service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// EditBookingHandler handles PUT /api/bookings/:id. A booking can be edited
// exactly once; repeat attempts come back 400 with the alreadyEdited code.
func (h *BookingHandler) EditBookingHandler(c *gin.Context) {
	var input models.BookingEditInput
	if err := utils.BindStrictJSON(c, &input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid edit payload", err.Error())
		return
	}

	updated, err := h.Service.EditBooking(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "failed to edit booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// payRequest optionally carries the client-side transaction hashes produced
// by a wallet checkout. Card bookings leave them empty; the PaymentIntent ID
// is recorded as the transaction reference after the charge.
type payRequest struct {
	TransactionHash string `json:"transactionHash"`
	ApprovalHash    string `json:"approvalHash"`
}

// PayBookingHandler handles POST /api/bookings/:id/payment. The job blocks in
// the orchestrator queue; the response carries the payment result including
// the invoice number.
func (h *BookingHandler) PayBookingHandler(c *gin.Context) {
	var req payRequest
	if err := utils.BindStrictJSON(c, &req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment payload", err.Error())
		return
	}

	bk, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "failed to fetch booking", err.Error())
		return
	}

	if req.TransactionHash != "" {
		bk, err = h.Service.AttachTransaction(c.Request.Context(), bk.ID, req.TransactionHash, req.ApprovalHash)
		if err != nil {
			utils.JSONError(c, bookingStatus(err), "failed to record transaction", err.Error())
			return
		}
	}

	result, err := h.Payments.ProcessPayment(c.Request.Context(), bk, bk.PaymentMethod)
	if err != nil {
		utils.JSONError(c, paymentStatus(err), "payment failed", err.Error())
		return
	}

	// Card charges have no wallet transaction; keep the gateway reference
	// on the booking so refunds can find the PaymentIntent later.
	if bk.TransactionHash == "" && result.PaymentID != "" {
		if _, err := h.Service.AttachTransaction(c.Request.Context(), bk.ID, result.PaymentID, ""); err != nil {
			h.Logger.Error("failed to record payment reference",
				zap.String("bookingID", bk.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, result)
}

// CancelBookingHandler handles DELETE /api/bookings/:id. Cancellation is a
// pure status transition: the room is re-listed and refunded stays false.
// Fund movement happens through the separate refund endpoint or a
// client-initiated wallet transaction.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	bk, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, bk)
}

// RefundBookingHandler handles POST /api/bookings/:id/refund. The booking
// must already be cancelled; the refund window is enforced by the
// orchestrator before any side effects run.
func (h *BookingHandler) RefundBookingHandler(c *gin.Context) {
	bk, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "failed to fetch booking", err.Error())
		return
	}
	if bk.Status != models.BookingStatusCancelled {
		utils.JSONError(c, http.StatusBadRequest, "refund rejected", "only cancelled bookings can be refunded")
		return
	}
	if bk.Refunded {
		utils.JSONError(c, http.StatusBadRequest, "refund rejected", "booking is already refunded")
		return
	}

	refund, err := h.Payments.ProcessRefund(c.Request.Context(), bk)
	if err != nil {
		h.Logger.Error("refund failed",
			zap.String("bookingID", bk.ID), zap.Error(err))
		utils.JSONError(c, paymentStatus(err), "refund failed", err.Error())
		return
	}

	bk, err = h.Service.MarkRefunded(c.Request.Context(), bk.ID)
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "failed to record refund", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": bk, "refund": refund})
}

// BookingConfirmationHandler handles GET /api/bookings/:id/confirmation. It
// combines the stored booking, the invoice on disk, and, when a provider is
// configured, the on-chain receipt status into one view.
func (h *BookingHandler) BookingConfirmationHandler(c *gin.Context) {
	bk, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "failed to fetch booking", err.Error())
		return
	}

	resp := gin.H{"booking": bk}

	if number, path := h.Invoices.LookupByBooking(bk.ID); number != "" {
		resp["invoice"] = gin.H{"number": number, "path": path}
	}

	if h.Chain != nil && h.Chain.Enabled() && bk.TransactionHash != "" {
		verified, err := h.Chain.VerifyTransaction(c.Request.Context(), bk.TransactionHash)
		if err != nil {
			h.Logger.Warn("on-chain verification unavailable",
				zap.String("bookingID", bk.ID), zap.Error(err))
			resp["onChain"] = gin.H{"status": "unverified"}
		} else if verified {
			resp["onChain"] = gin.H{"status": "verified", "transactionHash": bk.TransactionHash}
		} else {
			resp["onChain"] = gin.H{"status": "failed", "transactionHash": bk.TransactionHash}
		}
	}

	c.JSON(http.StatusOK, resp)
}
