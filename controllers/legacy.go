package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketmuse_backend/middleware"
	"marketmuse_backend/services"
)

// Unversioned handlers kept for the bundled web client. They answer with
// bare arrays and message objects instead of the {"data": ...} envelope.

// ListStocks returns every cached stock as a bare array
// GET /stocks
func (sc *StockController) ListStocks(c *gin.Context) {
	records, err := sc.stocks.List(c.Request.Context())
	if err != nil {
		RespondError(c, err, "Failed to fetch stocks")
		return
	}
	c.JSON(http.StatusOK, records)
}

// Me returns the authenticated user without an envelope
// GET /users/me
func (uc *UserController) Me(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListWatched returns the watched records as a bare array
// GET /watchlist
func (wc *WatchlistController) ListWatched(c *gin.Context) {
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
	c.JSON(http.StatusOK, records)
}

// Watch adds a cached symbol to the caller's watchlist
// POST /watchlist/add/:symbol
func (wc *WatchlistController) Watch(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	symbol, err := services.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		RespondError(c, err, "Failed to update watchlist")
		return
	}

	added, err := wc.watchlist.Add(c.Request.Context(), userID, symbol)
	if err != nil {
		RespondError(c, err, "Failed to update watchlist")
		return
	}
	if !added {
		c.JSON(http.StatusOK, gin.H{"message": "Already in watchlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Added %s to watchlist", symbol)})
}

// Unwatch removes a symbol from the caller's watchlist
// POST /watchlist/remove/:symbol
func (wc *WatchlistController) Unwatch(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	symbol, err := services.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		RespondError(c, err, "Failed to update watchlist")
		return
	}

	if err := wc.watchlist.Remove(c.Request.Context(), userID, symbol); err != nil {
		RespondError(c, err, "Failed to update watchlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Removed %s from watchlist", symbol)})
}
