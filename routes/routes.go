package routes

import (
	"net/http"
	"time"

	"viacampo/handlers"
	"viacampo/middleware"
	"viacampo/models"
	"viacampo/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login/logout endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.LoginHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.DirectoryRepo))
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterTrayRoutes registers the shared tray queue endpoints. All of them
// require the tray capability.
func RegisterTrayRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tray")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.DirectoryRepo))
		api.Use(middleware.RequireCapability(models.PermTray))
		api.GET("", hb.Tray.ListHandler)
		api.GET("/stream", hb.Tray.StreamHandler)
		api.POST("", hb.Tray.AddHandler)
		api.PATCH("/:id", hb.Tray.UpdateHandler)
		api.DELETE("/:id", hb.Tray.RemoveHandler)
		api.PUT("/order", hb.Tray.UpdateOrderHandler)
	}
}

// RegisterTripRoutes registers trip lifecycle endpoints. Creating, linking
// and closing need the tray capability; browsing history needs the history
// capability.
func RegisterTripRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/trips")
	api.Use(middleware.JWTAuthMiddleware(hb.DirectoryRepo))
	{
		work := api.Group("")
		work.Use(middleware.RequireCapability(models.PermTray))
		work.POST("", hb.Trip.CreateHandler)
		work.PUT("/:id/assign", hb.Trip.AssignHandler)
		work.POST("/:id/close", hb.Trip.CloseHandler)

		history := api.Group("")
		history.Use(middleware.RequireCapability(models.PermHistory))
		history.GET("", hb.Trip.ListHandler)
		history.GET("/:id", hb.Trip.GetHandler)
	}
}

// RegisterReportRoutes registers the closure report archive endpoints.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.DirectoryRepo))
		api.Use(middleware.RequireCapability(models.PermHistory))
		api.GET("", hb.Reports.ListHandler)
		api.GET("/trip/:tripId", hb.Reports.ByTripHandler)
		api.GET("/:id", hb.Reports.ByIDHandler)
	}
}

// RegisterAdminRoutes registers the user directory endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.DirectoryRepo))
		api.Use(middleware.RequireCapability(models.PermAdmin))
		api.GET("/users", hb.Admin.ListUsersHandler)
		api.GET("/users/stream", hb.Admin.StreamUsersHandler)
		api.PUT("/users/:uid/active", hb.Admin.SetActiveHandler)
		api.PUT("/users/:uid/profile", hb.Admin.SetProfileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterTrayRoutes(r, hb)
	RegisterTripRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
