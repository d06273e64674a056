package handlers

import (
	"net/http"

	"travelgo/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the per-domain handlers so route registration takes a
// single dependency.
type HandlerBundle struct {
	Hotel   *HotelHandler
	Booking *BookingHandler
	Owner   *OwnerHandler
	Admin   *AdminHandler
	IPFS    *IPFSHandler
}

// HealthHandler reports the latest dependency snapshot. It returns 503 when
// either backing store was unreachable at the last check.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo || !status.Redis {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
