package handlers

import "github.com/gin-gonic/gin"

// Register wires every API route onto the engine.
func Register(r *gin.Engine, h *Handler) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	api.GET("/quotes/:class/:symbol", h.GetQuote)
	api.GET("/quotes/:class/:symbol/history", h.GetQuoteHistory)
	api.GET("/portfolio", h.GetPortfolio)
	api.GET("/transactions", h.GetTransactions)
	api.POST("/trades", h.PostTrade)
	api.GET("/profile", h.GetProfile)
	api.PUT("/profile", h.PutProfile)
}
