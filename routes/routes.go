package routes

import (
	"net/http"
	"time"

	"schoolhealth/handlers"
	"schoolhealth/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAppointmentRoutes registers the appointment endpoints. Validation
// and slot listing are public; booking requires a parent token.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.POST("/validate", hb.ValidateAppointmentHandler)
		api.GET("/slots", hb.GetSlotsHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		if hb.ParentAuth != nil {
			protected.Use(hb.ParentAuth)
		}
		protected.POST("", hb.CreateAppointmentHandler)
		protected.GET("", hb.ListAppointmentsHandler)
		protected.DELETE("/:id", hb.CancelAppointmentHandler)
	}
}

// RegisterHolidayRoutes registers the holiday table endpoint.
func RegisterHolidayRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/holidays", hb.GetHolidaysHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm the school health service",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
	RegisterHolidayRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
}
