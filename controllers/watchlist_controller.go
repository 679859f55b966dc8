package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketmuse_backend/middleware"
	"marketmuse_backend/services"
)

// WatchlistController handles the caller's watchlist
type WatchlistController struct {
	watchlist *services.WatchlistService
}

// NewWatchlistController creates a new watchlist controller
func NewWatchlistController(watchlist *services.WatchlistService) *WatchlistController {
	return &WatchlistController{watchlist: watchlist}
}

// GetWatchlist returns the cached records the caller watches
// GET /api/v1/watchlist
func (wc *WatchlistController) GetWatchlist(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := wc.watchlist.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err, "Failed to fetch watchlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records, "count": len(records)})
}

// AddToWatchlist watches a cached symbol
// POST /api/v1/watchlist/:symbol
func (wc *WatchlistController) AddToWatchlist(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	added, err := wc.watchlist.Add(c.Request.Context(), userID, c.Param("symbol"))
	if err != nil {
		RespondError(c, err, "Failed to update watchlist")
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"added": added})
}

// RemoveFromWatchlist stops watching a symbol
// DELETE /api/v1/watchlist/:symbol
func (wc *WatchlistController) RemoveFromWatchlist(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := wc.watchlist.Remove(c.Request.Context(), userID, c.Param("symbol")); err != nil {
		RespondError(c, err, "Failed to update watchlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
