package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketmuse_backend/services"
	"marketmuse_backend/services/finnhub"
)

// RespondError maps service errors to HTTP answers
func RespondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSymbolNotCached):
		c.JSON(http.StatusNotFound, gin.H{"error": "Symbol not found"})
	case errors.Is(err, services.ErrNotInWatchlist):
		c.JSON(http.StatusNotFound, gin.H{"error": "Symbol not in watchlist"})
	case errors.Is(err, finnhub.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": "No market data for symbol"})
	case errors.Is(err, services.ErrFetchFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
