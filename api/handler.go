// Package api exposes a small read-side REST surface over the persisted
// trades and indicators tables. It is a thin collaborator outside the
// pipeline's hard core: the pipeline never calls it, and it never writes.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikhilTalatule/MarketStream-ETL/models"
)

// Handler bundles the database handle the routes read from.
type Handler struct {
	db *gorm.DB
}

type statsQuery struct {
	Symbol string `form:"symbol" binding:"required"`
}

type tradeStats struct {
	Symbol     string  `json:"symbol"`
	TradeCount int64   `json:"trade_count"`
	MaxPrice   float64 `json:"max_price"`
	MinPrice   float64 `json:"min_price"`
}

// GetTradeStats returns the trade count and price range for one symbol.
func (h *Handler) GetTradeStats(c *gin.Context) {
	var q statsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var stats tradeStats
	err := h.db.Raw(`
		SELECT
			COUNT(*) AS trade_count,
			COALESCE(MAX(price), 0) AS max_price,
			COALESCE(MIN(price), 0) AS min_price
		FROM trades
		WHERE symbol = ?
	`, q.Symbol).Scan(&stats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	stats.Symbol = q.Symbol

	c.JSON(http.StatusOK, stats)
}

// GetLatestIndicators returns the most recently computed IndicatorRow for
// one symbol.
func (h *Handler) GetLatestIndicators(c *gin.Context) {
	var q statsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var row models.IndicatorRow
	err := h.db.Where("symbol = ?", q.Symbol).Order("computed_at DESC").First(&row).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no indicators for symbol " + q.Symbol})
		return
	}

	c.JSON(http.StatusOK, row)
}

// SetupRoutes wires the health check and read endpoints against db.
func SetupRoutes(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	h := &Handler{db: db}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/trades/stats", h.GetTradeStats)
	r.GET("/api/indicators/latest", h.GetLatestIndicators)

	return r
}
