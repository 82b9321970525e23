package handlers

import (
	"net/http"

	"cleanslate/models"
	"cleanslate/services/booking"
	"cleanslate/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookings booking.BookingService
}

func NewBookingHandler(bookings booking.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// CreateBooking books for the calling customer. Admins may book on behalf of any customer.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var in models.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	caller := callerFrom(c)
	if caller.Role != booking.ActorAdmin || in.CustomerID == "" {
		in.CustomerID = caller.ID
	}

	b, err := h.bookings.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !booking.CanView(callerFrom(c), b) {
		forbidden(c)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, callerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SubmitReview lets the booking's customer rate it, which also confirms completion.
func (h *BookingHandler) SubmitReview(c *gin.Context) {
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	existing, err := h.bookings.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if caller := callerFrom(c); caller.Role != booking.ActorAdmin && existing.CustomerID != caller.ID {
		forbidden(c)
		return
	}

	b, err := h.bookings.AttachReview(ctx, existing.ID, req.Rating, req.Review)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) ListCustomerBookings(c *gin.Context) {
	id := c.Param("id")
	if !isSelfOrAdmin(c, utils.RoleCustomer, id) {
		forbidden(c)
		return
	}
	list, err := h.bookings.ListForCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) ListWorkerBookings(c *gin.Context) {
	id := c.Param("id")
	if !isSelfOrAdmin(c, utils.RoleWorker, id) {
		forbidden(c)
		return
	}
	list, err := h.bookings.ListForWorker(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
