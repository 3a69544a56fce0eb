package routes

import (
	"catering-backend/config"
	"catering-backend/controllers"
	"catering-backend/models"
	"catering-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies holds everything the router hands to its handlers.
type Dependencies struct {
	Log         *zap.Logger
	Observer    config.RequestObserver
	Gatherer    prometheus.Gatherer
	Tokens      *utils.TokenIssuer
	CORSOrigins []string

	Auth         *controllers.AuthController
	Bookings     *controllers.BookingController
	Availability *controllers.AvailabilityController
	Payments     *controllers.PaymentController
	Items        *controllers.ItemController
	Packages     *controllers.PackageController
	Feedback     *controllers.FeedbackController
	Dashboard    *controllers.DashboardController
	Reports      *controllers.ReportController
	Exports      *controllers.ExportController
	Health       *controllers.HealthController
}

func SetupRouter(d Dependencies) (*gin.Engine, error) {
	if err := utils.RegisterValidators(models.BookingStatuses); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(config.Recovery(d.Log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(d.Log, d.Observer))

	r.GET("/health", d.Health.Check)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	authMiddleware := utils.AuthMiddleware(d.Tokens)

	auth := r.Group("/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.GET("/me", authMiddleware, d.Auth.Me)
	}

	api := r.Group("/api")
	{
		// Public routes
		api.GET("/items", d.Items.ListActive)
		api.GET("/items/:id", d.Items.GetActive)
		api.GET("/packages", d.Packages.ListActive)
		api.GET("/packages/:id", d.Packages.GetActive)
		api.GET("/feedback", d.Feedback.ListPublished)
		api.GET("/availability", d.Availability.Month)
		api.GET("/availability/occupied", d.Availability.Occupied)
		api.GET("/payments/preview", d.Payments.Preview)
	}

	customer := api.Group("", authMiddleware)
	{
		bookings := customer.Group("/bookings")
		{
			bookings.POST("", d.Bookings.Create)
			bookings.GET("/mine", d.Bookings.Mine)
			bookings.GET("/:id", d.Bookings.Get)
			bookings.PUT("/:id/cancel", d.Bookings.Cancel)
			bookings.GET("/:id/payment", d.Bookings.Payment)
		}
		customer.POST("/feedback", d.Feedback.Create)
	}

	admin := api.Group("/admin", authMiddleware, utils.RequireRole(utils.RoleAdmin))
	{
		bookings := admin.Group("/bookings")
		{
			bookings.GET("", d.Bookings.List)
			bookings.GET("/:id", d.Bookings.Get)
			bookings.PUT("/:id/status", d.Bookings.UpdateStatus)
			bookings.DELETE("/:id", d.Bookings.Delete)
		}

		payments := admin.Group("/payments")
		{
			payments.GET("", d.Payments.List)
			payments.POST("/reconcile", d.Payments.Reconcile)
			payments.GET("/:id", d.Payments.Get)
			payments.PUT("/:id", d.Payments.Update)
		}

		items := admin.Group("/items")
		{
			items.GET("", d.Items.List)
			items.POST("", d.Items.Create)
			items.PUT("/:id", d.Items.Update)
			items.DELETE("/:id", d.Items.Delete)
			items.POST("/:id/image", d.Items.UploadImage)
		}

		packages := admin.Group("/packages")
		{
			packages.GET("", d.Packages.List)
			packages.POST("", d.Packages.Create)
			packages.PUT("/:id", d.Packages.Update)
			packages.DELETE("/:id", d.Packages.Delete)
		}

		feedback := admin.Group("/feedback")
		{
			feedback.GET("", d.Feedback.List)
			feedback.PUT("/:id/publish", d.Feedback.Publish)
			feedback.DELETE("/:id", d.Feedback.Delete)
		}

		admin.GET("/dashboard", d.Dashboard.Overview)
		admin.GET("/reports", d.Reports.GetReportAnalytics)
		admin.GET("/export/bookings.xlsx", d.Exports.Bookings)
	}

	return r, nil
}
