package handlers

import (
	"net/http"

	"cleanslate/models"
	"cleanslate/services/booking"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	bookings booking.BookingService
}

func NewCatalogHandler(bookings booking.BookingService) *CatalogHandler {
	return &CatalogHandler{bookings: bookings}
}

func (h *CatalogHandler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, booking.Catalog())
}

func (h *CatalogHandler) Quote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	q, err := h.bookings.Quote(c.Request.Context(), req.WorkerID, req.ServiceItemIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}
