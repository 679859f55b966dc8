package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketmuse_backend/models"
	"marketmuse_backend/services"
)

// StockController handles stock-related requests
type StockController struct {
	stocks *services.StockService
}

// NewStockController creates a new stock controller
func NewStockController(stocks *services.StockService) *StockController {
	return &StockController{stocks: stocks}
}

// GetStocks returns every cached stock, optionally filtered by ?symbols=A,B
// GET /api/v1/stocks
func (sc *StockController) GetStocks(c *gin.Context) {
	var (
		records []models.CacheRecord
		err     error
	)
	if raw := c.Query("symbols"); raw != "" {
		records, err = sc.stocks.ListSymbols(c.Request.Context(), strings.Split(raw, ","))
	} else {
		records, err = sc.stocks.List(c.Request.Context())
	}
	if err != nil {
		RespondError(c, err, "Failed to fetch stocks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  records,
		"count": len(records),
	})
}

// GetStock returns a single cached stock
// GET /api/v1/stocks/:symbol
func (sc *StockController) GetStock(c *gin.Context) {
	record, err := sc.stocks.Get(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		RespondError(c, err, "Failed to fetch stock")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}
