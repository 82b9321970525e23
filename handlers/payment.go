package handlers

import (
	"net/http"

	"cleanslate/models"
	"cleanslate/services/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments *payment.PaymentService
}

func NewPaymentHandler(payments *payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.payments.InitiateForBooking(c.Request.Context(), callerFrom(c), req.BookingID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
