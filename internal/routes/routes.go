package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/palfi-booking/internal/audit"
	"github.com/BruksfildServices01/palfi-booking/internal/auth"
	"github.com/BruksfildServices01/palfi-booking/internal/catalog"
	"github.com/BruksfildServices01/palfi-booking/internal/config"
	"github.com/BruksfildServices01/palfi-booking/internal/handlers"
	"github.com/BruksfildServices01/palfi-booking/internal/middleware"
	"github.com/BruksfildServices01/palfi-booking/internal/session"
	ucAppointment "github.com/BruksfildServices01/palfi-booking/internal/usecase/appointment"
)

// Deps are the singletons the routes are built from. main owns their
// lifecycle.
type Deps struct {
	Config        *config.Config
	Catalog       *catalog.Catalog
	Location      *time.Location
	Registry      *session.Registry
	Authenticator auth.Authenticator
	Tokens        *auth.TokenIssuer
	Audit         *audit.Dispatcher
	Log           zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(ucAppointment.CreateAppointmentDeps{
		Catalog:     d.Catalog,
		Location:    d.Location,
		FeedbackTTL: d.Config.FeedbackDismiss,
		Audit:       d.Audit,
		Log:         d.Log,
	})

	availabilityUC := ucAppointment.NewGetAvailability(d.Catalog, d.Log)

	listAppointmentsUC := ucAppointment.NewListAppointments(
		d.Location,
		d.Config.AdminFeedbackDismiss,
		d.Log,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		listAppointmentsUC,
		d.Audit,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		d.Catalog,
		d.Location,
		createAppointmentUC,
		availabilityUC,
	)

	adminHandler := handlers.NewAdminHandler(handlers.AdminHandlerDeps{
		Authenticator: d.Authenticator,
		Tokens:        d.Tokens,
		List:          listAppointmentsUC,
		Delete:        deleteAppointmentUC,
		Audit:         d.Audit,
		Log:           d.Log,
	})

	loginLimiter := middleware.NewIPRateLimiter(d.Config.LoginPerMin)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.SessionMiddleware(d.Registry))
	{
		booking := api.Group("/booking")
		{
			booking.GET("/form", bookingHandler.Form)
			booking.GET("/availability", bookingHandler.Availability)
			booking.POST("/appointments", bookingHandler.Create)
			booking.GET("/feedback", bookingHandler.Feedback)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/login", middleware.RateLimitMiddleware(loginLimiter, d.Log), adminHandler.Login)
			admin.POST("/logout", adminHandler.Logout)
			admin.GET("/session", adminHandler.Session)

			secured := admin.Group("/")
			secured.Use(middleware.AdminMiddleware(d.Tokens))
			{
				secured.GET("/appointments", adminHandler.List)
				secured.POST("/appointments/refresh", adminHandler.Refresh)
				secured.GET("/appointments/export", adminHandler.Export)
				secured.DELETE("/appointments/:id", adminHandler.Delete)
			}
		}
	}
}
