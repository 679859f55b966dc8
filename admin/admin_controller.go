package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"marketmuse_backend/controllers"
	"marketmuse_backend/models"
	"marketmuse_backend/scheduler"
	"marketmuse_backend/services"
)

const maxRefreshLogLimit = 500

// RefreshLogReader reads the refresh audit log
type RefreshLogReader interface {
	Latest(ctx context.Context, limit int) ([]models.RefreshLog, error)
}

// RefresherStatusProvider exposes the refresh loop state
type RefresherStatusProvider interface {
	Status() scheduler.RefresherStatus
}

// AdminController handles admin API requests
type AdminController struct {
	db        *gorm.DB
	stocks    *services.StockService
	auditLog  RefreshLogReader
	refresher RefresherStatusProvider
}

// NewAdminController creates a new admin controller
func NewAdminController(db *gorm.DB, stocks *services.StockService, auditLog RefreshLogReader, refresher RefresherStatusProvider) *AdminController {
	return &AdminController{
		db:        db,
		stocks:    stocks,
		auditLog:  auditLog,
		refresher: refresher,
	}
}

// Stats returns table counts for the admin dashboard
// GET /api/v1/admin/stats
func (ac *AdminController) Stats(c *gin.Context) {
	db := ac.db.WithContext(c.Request.Context())

	var stockCount, userCount, watchCount int64
	if err := db.Model(&models.StockCache{}).Count(&stockCount).Error; err != nil {
		controllers.RespondError(c, err, "Failed to count stocks")
		return
	}
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		controllers.RespondError(c, err, "Failed to count users")
		return
	}
	if err := db.Model(&models.Watchlist{}).Count(&watchCount).Error; err != nil {
		controllers.RespondError(c, err, "Failed to count watchlist entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stockCount":     stockCount,
		"userCount":      userCount,
		"watchlistCount": watchCount,
	})
}

// GetRefreshLog returns the newest refresh attempts
// GET /api/v1/admin/refresh-log?limit=N
func (ac *AdminController) GetRefreshLog(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	if limit > maxRefreshLogLimit {
		limit = maxRefreshLogLimit
	}

	entries, err := ac.auditLog.Latest(c.Request.Context(), limit)
	if err != nil {
		controllers.RespondError(c, err, "Failed to fetch refresh log")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries, "count": len(entries)})
}

// GetRefresherStatus returns the refresh loop state
// GET /api/v1/admin/refresher
func (ac *AdminController) GetRefresherStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": ac.refresher.Status()})
}

// AddStock adds a symbol to the refresh rotation after one initial fetch
// POST /api/v1/admin/stocks/:symbol
func (ac *AdminController) AddStock(c *gin.Context) {
	record, err := ac.stocks.AddSymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		controllers.RespondError(c, err, "Failed to add stock")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": record})
}

// RemoveStock removes a symbol from the cache and every watchlist
// DELETE /api/v1/admin/stocks/:symbol
func (ac *AdminController) RemoveStock(c *gin.Context) {
	if err := ac.stocks.RemoveSymbol(c.Request.Context(), c.Param("symbol")); err != nil {
		controllers.RespondError(c, err, "Failed to remove stock")
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
