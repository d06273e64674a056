package handlers

import (
	"net/http"
	"time"

	"travelgo/models"
	"travelgo/services/hotel"
	"travelgo/utils"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ownerTokenTTL = 24 * time.Hour

// OwnerHandler serves the hotel-owner dashboard: login and the owner's own
// hotel listings.
type OwnerHandler struct {
	Hotels hotel.HotelService
	Auth   *firebaseauth.Client
	Logger *zap.Logger
}

func NewOwnerHandler(hotels hotel.HotelService, authClient *firebaseauth.Client, logger *zap.Logger) *OwnerHandler {
	return &OwnerHandler{Hotels: hotels, Auth: authClient, Logger: logger}
}

type ownerLoginRequest struct {
	FirebaseToken string `json:"firebaseToken" binding:"required"`
}

// OwnerLoginHandler handles POST /api/owner/login. The client signs in with
// Firebase; the server verifies the ID token, checks the hotelOwner claim,
// and mints the session JWT the owner routes accept.
func (h *OwnerHandler) OwnerLoginHandler(c *gin.Context) {
	var req ownerLoginRequest
	if err := utils.BindStrictJSON(c, &req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid login payload", err.Error())
		return
	}

	if h.Auth == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "authentication unavailable", "firebase is not configured")
		return
	}

	decoded, err := h.Auth.VerifyIDToken(c.Request.Context(), req.FirebaseToken)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "authentication failed", "invalid firebase token")
		return
	}

	if isOwner, _ := decoded.Claims["hotelOwner"].(bool); !isOwner {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "account is not a hotel owner")
		return
	}

	email, _ := decoded.Claims["email"].(string)
	token, err := utils.GenerateToken(decoded.UID, email, ownerTokenTTL)
	if err != nil {
		h.Logger.Error("failed to sign owner token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "authentication failed", "could not issue session token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "ownerId": decoded.UID})
}

// ListOwnerHotelsHandler handles GET /api/owner/hotels.
func (h *OwnerHandler) ListOwnerHotelsHandler(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	hotels, err := h.Hotels.ListOwnerHotels(c.Request.Context(), ownerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list hotels", err.Error())
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// GetOwnerHotelHandler handles GET /api/owner/hotels/:id and enforces that
// the hotel belongs to the caller.
func (h *OwnerHandler) GetOwnerHotelHandler(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	hotelDoc, err := h.Hotels.GetHotel(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, catalogStatus(err), "failed to fetch hotel", err.Error())
		return
	}
	if hotelDoc.OwnerID != ownerID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "hotel belongs to another owner")
		return
	}
	c.JSON(http.StatusOK, hotelDoc)
}

// CreateTestHotelHandler handles POST /api/owner/hotels/test. It seeds a
// minimal hotel under the caller so a fresh owner account has something to
// manage in the dashboard.
func (h *OwnerHandler) CreateTestHotelHandler(c *gin.Context) {
	ownerID := c.GetString("ownerID")

	input := models.HotelInput{
		Name:        "Test Hotel " + uuid.NewString()[:8],
		Description: "Seeded hotel for dashboard testing.",
		Location: models.Location{
			Address: "1 Demo Street",
			City:    "Nairobi",
			Country: "Kenya",
		},
		Amenities:  []string{"wifi", "parking"},
		StarRating: 3,
		MaxGuests:  2,
		Rooms: []models.Room{
			{
				ID:            uuid.NewString(),
				Type:          "standard",
				Beds:          "1 double",
				PricePerNight: 80,
				Available:     true,
			},
		},
	}

	created, err := h.Hotels.RegisterHotel(c.Request.Context(), ownerID, input)
	if err != nil {
		utils.JSONError(c, catalogStatus(err), "failed to create test hotel", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}
