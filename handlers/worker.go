package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cleanslate/database/repository"
	"cleanslate/models"
	"cleanslate/services/booking"
	"cleanslate/services/geo"
	"cleanslate/services/reports"
	"cleanslate/services/worker"
	"cleanslate/utils"

	"github.com/gin-gonic/gin"
)

type WorkerHandler struct {
	workers       worker.WorkerService
	bookings      booking.BookingService
	locator       geo.Locator
	reports       *reports.ReportService
	defaultRadius float64
}

func NewWorkerHandler(
	workers worker.WorkerService,
	bookings booking.BookingService,
	locator geo.Locator,
	reports *reports.ReportService,
	defaultRadiusKm float64,
) *WorkerHandler {
	return &WorkerHandler{
		workers:       workers,
		bookings:      bookings,
		locator:       locator,
		reports:       reports,
		defaultRadius: defaultRadiusKm,
	}
}

// Apply accepts a public worker application.
func (h *WorkerHandler) Apply(c *gin.Context) {
	var app models.WorkerApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.workers.Register(c.Request.Context(), app)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": w.ID, "status": w.Status})
}

// ListActive returns the public profiles of workers customers can book.
func (h *WorkerHandler) ListActive(c *gin.Context) {
	list, err := h.workers.List(c.Request.Context(), models.WorkerActive)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]models.PublicWorker, 0, len(list))
	for i := range list {
		out = append(out, list[i].Public())
	}
	c.JSON(http.StatusOK, out)
}

// GetWorker returns the full profile to the worker and admins, the public one to everybody else.
func (h *WorkerHandler) GetWorker(c *gin.Context) {
	w, err := h.workers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if isSelfOrAdmin(c, utils.RoleWorker, w.ID) {
		c.JSON(http.StatusOK, w)
		return
	}
	if w.Status != models.WorkerActive {
		respondError(c, errWorkerNotPublic(w.ID))
		return
	}
	c.JSON(http.StatusOK, w.Public())
}

func (h *WorkerHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid coordinates", "lat and lng query parameters are required")
		return
	}
	radius := h.defaultRadius
	if r := c.Query("radiusKm"); r != "" {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil || v <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid radius", "radiusKm must be a positive number")
			return
		}
		radius = v
	}
	ids, err := h.locator.FindWorkersNear(c.Request.Context(), models.GeoLocation{Lat: lat, Lng: lng}, radius)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workerIds": ids, "radiusKm": radius})
}

func (h *WorkerHandler) Availability(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid start", "start must be an RFC 3339 timestamp")
		return
	}
	duration, err := strconv.Atoi(c.Query("durationMinutes"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid duration", "durationMinutes must be an integer")
		return
	}
	ok, err := h.bookings.IsAvailable(c.Request.Context(), c.Param("id"), start, duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workerId": c.Param("id"), "start": start, "durationMinutes": duration, "available": ok})
}

func (h *WorkerHandler) SetUnavailableDates(c *gin.Context) {
	id := c.Param("id")
	if !isSelfOrAdmin(c, utils.RoleWorker, id) {
		forbidden(c)
		return
	}
	var req models.UnavailableDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.workers.SetUnavailableDates(c.Request.Context(), id, req.Dates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workerId": w.ID, "unavailableDates": w.UnavailableDates})
}

func (h *WorkerHandler) Earnings(c *gin.Context) {
	id := c.Param("id")
	if !isSelfOrAdmin(c, utils.RoleWorker, id) {
		forbidden(c)
		return
	}
	sum, err := h.reports.Earnings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// UpdateTrainingStatus records training progress; workers may only update their own modules.
func (h *WorkerHandler) UpdateTrainingStatus(c *gin.Context) {
	id := c.Param("id")
	if !isSelfOrAdmin(c, utils.RoleWorker, id) {
		forbidden(c)
		return
	}
	var req models.TrainingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.workers.UpdateTrainingModuleStatus(c.Request.Context(), id, c.Param("moduleId"), req.Status, req.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func errWorkerNotPublic(id string) error {
	return fmt.Errorf("worker %s: %w", id, repository.ErrNotFound)
}
