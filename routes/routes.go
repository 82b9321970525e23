package routes

import (
	"time"

	"cleanslate/handlers"
	"cleanslate/middleware"
	"cleanslate/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterPublicRoutes registers endpoints that need no token.
func RegisterPublicRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.POST("/auth/demo-login", hb.Auth.DemoLogin)

	catalog := api.Group("/catalog")
	{
		catalog.GET("/services", hb.Catalog.GetServices)
		catalog.POST("/quote", hb.Catalog.Quote)
	}

	api.POST("/customers", hb.Customer.Signup)
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	{
		bookings.POST("", middleware.JWTAuth(utils.RoleCustomer, utils.RoleAdmin), hb.Booking.CreateBooking)
		bookings.GET("/:id", middleware.JWTAuth(), hb.Booking.GetBooking)
		bookings.PATCH("/:id/status", middleware.JWTAuth(utils.RoleCustomer, utils.RoleWorker, utils.RoleAdmin), hb.Booking.UpdateStatus)
		bookings.POST("/:id/review", middleware.JWTAuth(utils.RoleCustomer, utils.RoleAdmin), hb.Booking.SubmitReview)
	}

	customers := api.Group("/customers")
	customers.Use(middleware.JWTAuth(utils.RoleCustomer, utils.RoleAdmin))
	{
		customers.GET("/:id", hb.Customer.GetCustomer)
		customers.GET("/:id/bookings", hb.Booking.ListCustomerBookings)
	}

	api.POST("/matching", middleware.JWTAuth(utils.RoleCustomer, utils.RoleAdmin), hb.Matching.Match)
	api.POST("/payments/initiate", middleware.JWTAuth(utils.RoleCustomer, utils.RoleAdmin), hb.Payment.Initiate)
}

// RegisterWorkerRoutes sets up applications, public listings and worker self-service.
func RegisterWorkerRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	workers := api.Group("/workers")
	{
		workers.POST("/apply", hb.Worker.Apply)
		workers.GET("", hb.Worker.ListActive)
		workers.GET("/nearby", hb.Worker.Nearby)
		workers.GET("/:id", middleware.OptionalJWTAuth(), hb.Worker.GetWorker)
		workers.GET("/:id/availability", hb.Worker.Availability)

		self := workers.Group("")
		self.Use(middleware.JWTAuth(utils.RoleWorker, utils.RoleAdmin))
		self.GET("/:id/bookings", hb.Booking.ListWorkerBookings)
		self.PUT("/:id/unavailable-dates", hb.Worker.SetUnavailableDates)
		self.GET("/:id/earnings", hb.Worker.Earnings)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	// Workers report their own training progress on the same path admins use.
	api.PATCH("/admin/workers/:id/training/:moduleId",
		middleware.JWTAuth(utils.RoleAdmin, utils.RoleWorker), hb.Worker.UpdateTrainingStatus)

	adminGroup := api.Group("/admin")
	{
		adminGroup.Use(middleware.JWTAuth(utils.RoleAdmin))
		adminGroup.GET("/bookings", hb.Admin.ListBookings)
		adminGroup.GET("/workers", hb.Admin.ListWorkers)
		adminGroup.PATCH("/workers/:id/status", hb.Admin.UpdateWorkerStatus)
		adminGroup.PATCH("/workers/:id/onboarding/:stepId", hb.Admin.UpdateOnboardingStep)
		adminGroup.POST("/workers/:id/training", hb.Admin.AssignTraining)
		adminGroup.GET("/training-modules", hb.Admin.ListTrainingModules)
		adminGroup.POST("/training-modules", hb.Admin.AddTrainingModule)
		adminGroup.GET("/payroll", hb.Admin.Payroll)
		adminGroup.GET("/analytics", hb.Admin.Analytics)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	RegisterPublicRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterWorkerRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
