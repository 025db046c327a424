package api

import (
	"log/slog"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	h "hotelbooking/internal/http/handlers"
	"hotelbooking/internal/http/middleware"
)

// Deps wires the router. RoleLookup is optional; when set, admin routes
// re-read the caller's role from the store.
type Deps struct {
	Handler     *h.Handler
	Tokens      middleware.TokenVerifier
	RoleLookup  middleware.RoleLookup
	Log         *slog.Logger
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(d.Log), gin.Recovery(), middleware.CORS(d.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		d.Log.Warn("failed to set trusted proxies", slog.String("error", err.Error()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	hd := d.Handler
	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", routes(r))

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", hd.Login)
		auth.POST("/register", hd.Register)

		// Hotels & rooms
		api.GET("/hotels", hd.SearchHotels)
		api.GET("/hotels/:id", hd.GetHotel)
		api.GET("/rooms/:id/availability", hd.RoomAvailability)

		// Bookings
		bookings := api.Group("/bookings")
		bookings.POST("", hd.CreateBooking)
		bookings.GET("/user/:email", hd.UserBookings)
		bookings.DELETE("/:id", hd.CancelBooking)
		bookings.GET("/:id/invoice", hd.BookingInvoice)

		// Users
		users := api.Group("/users")
		users.GET("/profile/:email", hd.GetProfile)
		users.PUT("/profile/:email", hd.UpdateProfile)

		// Admin
		gate := []gin.HandlerFunc{middleware.RequireAuth(d.Tokens)}
		if d.RoleLookup != nil {
			gate = append(gate, middleware.LiveRole(d.RoleLookup))
		}
		gate = append(gate, middleware.RequireAdmin())

		admin := api.Group("/admin", gate...)
		admin.GET("/stats", hd.AdminStats)
		admin.GET("/bookings", hd.AdminBookings)
		admin.GET("/bookings/export", hd.AdminExportBookings)
		admin.PUT("/bookings/:id/status", hd.AdminSetBookingStatus)
		admin.POST("/hotels", hd.AdminCreateHotel)
		admin.DELETE("/hotels/:id", hd.AdminDeleteHotel)
		admin.POST("/rooms", hd.AdminCreateRoom)
	}

	return r
}

func routes(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := r.Routes()
		out := make([]gin.H, 0, len(list))
		for _, rt := range list {
			out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
		}
		c.JSON(stdhttp.StatusOK, gin.H{"routes": out})
	}
}
