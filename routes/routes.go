package routes

import (
	"time"

	"travelgo/config"
	"travelgo/handlers"
	"travelgo/middleware"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHotelRoutes registers the public catalog plus owner mutations.
func RegisterHotelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/hotels")
	{
		// Public catalog endpoints.
		api.GET("", hb.Hotel.ListHotelsHandler)
		api.GET("/featured", hb.Hotel.FeaturedHotelsHandler)
		api.GET("/facilities/count", hb.Hotel.FacilitiesCountHandler)
		// Legacy confirmation path kept alongside the bookings-scoped one.
		api.GET("/booking-confirmation/:id", middleware.JWTAuthUserMiddleware(), hb.Booking.BookingConfirmationHandler)
		api.GET("/:id", hb.Hotel.GetHotelHandler)

		// Reviews require a signed-in guest.
		api.POST("/:id/reviews", middleware.JWTAuthUserMiddleware(), hb.Hotel.AddReviewHandler)

		// Mutations require an owner session.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthOwnerMiddleware())
		protected.POST("", hb.Hotel.CreateHotelHandler)
		protected.PUT("/:id", hb.Hotel.UpdateHotelHandler)
		protected.DELETE("/:id", hb.Hotel.DeleteHotelHandler)
		protected.PUT("/:id/rooms/:roomID", hb.Hotel.UpdateRoomHandler)
	}
}

// RegisterBookingRoutes sets up the reservation lifecycle and payment
// endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthUserMiddleware())
		bookingGroup.POST("", hb.Booking.CreateBookingHandler)
		bookingGroup.GET("", hb.Booking.ListUserBookingsHandler)
		bookingGroup.GET("/:id", hb.Booking.GetBookingHandler)
		bookingGroup.PUT("/:id", hb.Booking.EditBookingHandler)
		bookingGroup.DELETE("/:id", hb.Booking.CancelBookingHandler)
		bookingGroup.POST("/:id/payment", hb.Booking.PayBookingHandler)
		bookingGroup.POST("/:id/refund", hb.Booking.RefundBookingHandler)
		bookingGroup.GET("/:id/confirmation", hb.Booking.BookingConfirmationHandler)
	}
}

// RegisterOwnerRoutes sets up the owner dashboard endpoints.
func RegisterOwnerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/owner")
	{
		api.POST("/login", hb.Owner.OwnerLoginHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthOwnerMiddleware())
		protected.GET("/hotels", hb.Owner.ListOwnerHotelsHandler)
		protected.GET("/hotels/:id", hb.Owner.GetOwnerHotelHandler)
		protected.POST("/hotels/test", hb.Owner.CreateTestHotelHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations. Admin access
// is proven with a Firebase ID token carrying the admin custom claim.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authClient *firebaseauth.Client) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.FirebaseAdminMiddleware(authClient))
		adminGroup.POST("/set-hotel-owner", hb.Admin.SetHotelOwnerHandler)
	}
}

// RegisterIPFSRoutes sets up the pinning proxy endpoints.
func RegisterIPFSRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ipfs")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/upload", hb.IPFS.UploadHandler)
		api.GET("/metadata/:hash", hb.IPFS.MetadataHandler)
		api.GET("/files", hb.IPFS.ListFilesHandler)
		api.DELETE("/:hash", hb.IPFS.UnpinHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, cfg *config.Config, authClient *firebaseauth.Client) {
	allowOrigins := []string{"*"}
	if cfg.FrontendURL != "" {
		allowOrigins = []string{cfg.FrontendURL}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	RegisterHotelRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterOwnerRoutes(r, hb)
	RegisterAdminRoutes(r, hb, authClient)
	RegisterIPFSRoutes(r, hb)
	RegisterHealthRoute(r)
}
