package handlers

import (
	"net/http"

	"travelgo/models"
	"travelgo/services/hotel"
	"travelgo/utils"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves privileged operations gated by the Firebase admin claim.
type AdminHandler struct {
	Hotels hotel.HotelService
	Auth   *firebaseauth.Client
	Logger *zap.Logger
}

func NewAdminHandler(hotels hotel.HotelService, authClient *firebaseauth.Client, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Hotels: hotels, Auth: authClient, Logger: logger}
}

// SetHotelOwnerHandler handles POST /api/admin/set-hotel-owner. It grants
// the hotelOwner custom claim to the Firebase account and records the
// ownership on the hotel document. The claim takes effect on the owner's
// next token refresh.
func (h *AdminHandler) SetHotelOwnerHandler(c *gin.Context) {
	var input models.SetHotelOwnerInput
	if err := utils.BindStrictJSON(c, &input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}

	if h.Auth == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "firebase unavailable", "firebase is not configured")
		return
	}

	user, err := h.Auth.GetUser(c.Request.Context(), input.OwnerUID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "user not found", err.Error())
		return
	}

	claims := map[string]interface{}{"hotelOwner": true}
	for k, v := range user.CustomClaims {
		if k != "hotelOwner" {
			claims[k] = v
		}
	}
	if err := h.Auth.SetCustomUserClaims(c.Request.Context(), input.OwnerUID, claims); err != nil {
		h.Logger.Error("failed to set owner claim",
			zap.String("uid", input.OwnerUID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to grant owner role", err.Error())
		return
	}

	if err := h.Hotels.SetOwner(c.Request.Context(), input.HotelID, input.OwnerUID); err != nil {
		utils.JSONError(c, catalogStatus(err), "failed to assign hotel", err.Error())
		return
	}

	h.Logger.Info("hotel owner assigned",
		zap.String("hotelID", input.HotelID), zap.String("uid", input.OwnerUID))
	c.JSON(http.StatusOK, gin.H{
		"message": "owner assigned; claim takes effect on next token refresh",
		"hotelId": input.HotelID,
		"ownerId": input.OwnerUID,
	})
}
