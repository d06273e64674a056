package handlers

import (
	"net/http"

	"travelgo/models"
	"travelgo/services/hotel"
	"travelgo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HotelHandler serves the public catalog and the owner-facing mutations.
type HotelHandler struct {
	Service hotel.HotelService
	Logger  *zap.Logger
}

func NewHotelHandler(svc hotel.HotelService, logger *zap.Logger) *HotelHandler {
	return &HotelHandler{Service: svc, Logger: logger}
}

// catalogStatus maps catalog service errors onto HTTP statuses.
func catalogStatus(err error) int {
	switch {
	case hotel.ErrNotFound(err):
		return http.StatusNotFound
	case hotel.ErrValidation(err):
		return http.StatusBadRequest
	case hotel.ErrForbidden(err):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ListHotelsHandler handles GET /api/hotels with optional city/country filters.
func (h *HotelHandler) ListHotelsHandler(c *gin.Context) {
	filter := models.HotelFilter{
		City:    c.Query("city"),
		Country: c.Query("country"),
	}
	hotels, err := h.Service.ListHotels(c.Request.Context(), filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list hotels", err.Error())
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// GetHotelHandler handles GET /api/hotels/:id.
func (h *HotelHandler) GetHotelHandler(c *gin.Context) {
	hotelDoc, err := h.Service.GetHotel(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, catalogStatus(err), "failed to fetch hotel", err.Error())
		return
	}
	c.JSON(http.StatusOK, hotelDoc)
}

// CreateHotelHandler handles POST /api/hotels (owner registration).
func (h *HotelHandler) CreateHotelHandler(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	var input models.HotelInput
	if err := utils.BindStrictJSON(c, &input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel payload", err.Error())
		return
	}

	created, err := h.Service.RegisterHotel(c.Request.Context(), ownerID, input)
	if err != nil {
		utils.JSONError(c, catalogStatus(err), "failed to register hotel", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateHotelHandler handles PUT /api/hotels/:id. The payload is partial;
// omitted fields keep their stored values.
func (h *HotelHandler) UpdateHotelHandler(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	var input models.HotelUpdateInput
	if err := utils.BindStrictJSON(c, &input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel payload", err.Error())
		return
	}

	updated, err := h.Service.UpdateHotel(c.Request.Context(), c.Param("id"), ownerID, input)
	if err != nil {
		utils.JSONError(c, catalogStatus(err), "failed to update hotel", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteHotelHandler handles DELETE /api/hotels/:id.
func (h *HotelHandler) DeleteHotelHandler(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	if err := h.Service.DeleteHotel(c.Request.Context(), c.Param("id"), ownerID); err != nil {
		utils.JSONError(c, catalogStatus(err), "failed to delete hotel", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hotel deleted"})
}

// UpdateRoomHandler handles PUT /api/hotels/:id/rooms/:roomID.
func (h *HotelHandler) UpdateRoomHandler(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	var input models.RoomUpdateInput
	if err := utils.BindStrictJSON(c, &input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room payload", err.Error())
		return
	}

	updated, err := h.Service.UpdateRoom(c.Request.Context(), c.Param("id"), ownerID, c.Param("roomID"), input)
	if err != nil {
		utils.JSONError(c, catalogStatus(err), "failed to update room", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddReviewHandler handles POST /api/hotels/:id/reviews.
func (h *HotelHandler) AddReviewHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var input models.ReviewInput
	if err := utils.BindStrictJSON(c, &input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid review payload", err.Error())
		return
	}

	if err := h.Service.AddReview(c.Request.Context(), c.Param("id"), userID, input); err != nil {
		utils.JSONError(c, catalogStatus(err), "failed to add review", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "review added"})
}

// FeaturedHotelsHandler handles GET /api/hotels/featured.
func (h *HotelHandler) FeaturedHotelsHandler(c *gin.Context) {
	hotels, err := h.Service.ListFeatured(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list featured hotels", err.Error())
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// FacilitiesCountHandler handles GET /api/hotels/facilities/count.
func (h *HotelHandler) FacilitiesCountHandler(c *gin.Context) {
	counts, err := h.Service.FacilitiesCount(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to count facilities", err.Error())
		return
	}
	c.JSON(http.StatusOK, counts)
}
