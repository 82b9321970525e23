package handlers

import (
	"net/http"

	"cleanslate/models"
	"cleanslate/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MatchingHandler struct {
	matcher booking.MatchingService
}

func NewMatchingHandler(matcher booking.MatchingService) *MatchingHandler {
	return &MatchingHandler{matcher: matcher}
}

func (h *MatchingHandler) Match(c *gin.Context) {
	var req models.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.matcher.Match(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	zap.L().Debug("worker matched", zap.String("workerId", res.WorkerID), zap.String("source", res.Source))
	c.JSON(http.StatusOK, res)
}
