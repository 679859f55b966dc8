package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"marketmuse_backend/admin"
	"marketmuse_backend/controllers"
	"marketmuse_backend/middleware"
	"marketmuse_backend/scheduler"
	"marketmuse_backend/services"
	"marketmuse_backend/services/stockcache"
)

// Deps are the components the HTTP layer is built from
type Deps struct {
	DB        *gorm.DB
	Stocks    *services.StockService
	Watchlist *services.WatchlistService
	Users     *services.UserService
	Auth      *middleware.Auth
	AuditLog  *stockcache.RefreshLog
	Refresher *scheduler.Refresher
}

// SetupRoutes sets up all API routes
func SetupRoutes(router *gin.Engine, deps Deps) {
	setupHealthEndpoints(router, deps.DB)

	// Initialize controllers
	stockController := controllers.NewStockController(deps.Stocks)
	watchlistController := controllers.NewWatchlistController(deps.Watchlist)
	userController := controllers.NewUserController()
	adminController := admin.NewAdminController(deps.DB, deps.Stocks, deps.AuditLog, deps.Refresher)
	userManagementController := admin.NewUserManagementController(deps.Users)

	// Unversioned paths used by the bundled web client
	router.GET("/stocks", stockController.ListStocks)
	legacy := router.Group("")
	legacy.Use(deps.Auth.JWTAuthMiddleware())
	{
		legacy.GET("/users/me", userController.Me)
		legacy.GET("/watchlist", watchlistController.ListWatched)
		legacy.POST("/watchlist/add/:symbol", watchlistController.Watch)
		legacy.POST("/watchlist/remove/:symbol", watchlistController.Unwatch)
	}

	// API v1 group
	api := router.Group("/api/v1")
	{
		// Public stock routes, served from the cache only
		stocks := api.Group("/stocks")
		{
			stocks.GET("", stockController.GetStocks)
			stocks.GET("/:symbol", stockController.GetStock)
		}

		// Authenticated routes
		authed := api.Group("")
		authed.Use(deps.Auth.JWTAuthMiddleware())
		{
			authed.GET("/users/me", userController.GetMe)

			watchlist := authed.Group("/watchlist")
			{
				watchlist.GET("", watchlistController.GetWatchlist)
				watchlist.POST("/:symbol", watchlistController.AddToWatchlist)
				watchlist.DELETE("/:symbol", watchlistController.RemoveFromWatchlist)
			}

			// Admin routes
			adminGroup := authed.Group("/admin")
			adminGroup.Use(deps.Auth.AdminRoleMiddleware())
			{
				adminGroup.GET("/stats", adminController.Stats)
				adminGroup.GET("/refresh-log", adminController.GetRefreshLog)
				adminGroup.GET("/refresher", adminController.GetRefresherStatus)
				adminGroup.POST("/stocks/:symbol", adminController.AddStock)
				adminGroup.DELETE("/stocks/:symbol", adminController.RemoveStock)
				adminGroup.GET("/users", userManagementController.ListUsers)
				adminGroup.GET("/users/:id", userManagementController.GetUser)
			}
		}
	}
}
