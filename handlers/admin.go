package handlers

import (
	"net/http"
	"time"

	"cleanslate/models"
	"cleanslate/services/booking"
	"cleanslate/services/reports"
	"cleanslate/services/worker"
	"cleanslate/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes back-office operations.
type AdminHandler struct {
	bookings booking.BookingService
	workers  worker.WorkerService
	reports  *reports.ReportService
}

func NewAdminHandler(bookings booking.BookingService, workers worker.WorkerService, reports *reports.ReportService) *AdminHandler {
	return &AdminHandler{bookings: bookings, workers: workers, reports: reports}
}

// ListBookings returns all bookings, optionally filtered with ?status=.
func (ah *AdminHandler) ListBookings(c *gin.Context) {
	list, err := ah.bookings.ListAll(c.Request.Context(), models.BookingStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListWorkers returns all workers, optionally filtered with repeated ?status=.
func (ah *AdminHandler) ListWorkers(c *gin.Context) {
	var statuses []models.WorkerStatus
	for _, s := range c.QueryArray("status") {
		statuses = append(statuses, models.WorkerStatus(s))
	}
	list, err := ah.workers.List(c.Request.Context(), statuses...)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ah *AdminHandler) UpdateWorkerStatus(c *gin.Context) {
	var req models.WorkerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w, err := ah.workers.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (ah *AdminHandler) UpdateOnboardingStep(c *gin.Context) {
	var req models.OnboardingStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w, err := ah.workers.UpdateOnboardingStep(c.Request.Context(), c.Param("id"), c.Param("stepId"), req.Completed, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (ah *AdminHandler) AssignTraining(c *gin.Context) {
	var req models.AssignTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w, err := ah.workers.AssignTrainingModule(c.Request.Context(), c.Param("id"), req.ModuleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (ah *AdminHandler) ListTrainingModules(c *gin.Context) {
	list, err := ah.workers.ListModules(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ah *AdminHandler) AddTrainingModule(c *gin.Context) {
	var req models.NewTrainingModule
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := ah.workers.AddModule(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Payroll runs payroll for ?month=YYYY-MM, defaulting to the current month.
func (ah *AdminHandler) Payroll(c *gin.Context) {
	var at time.Time
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid month", "month must be YYYY-MM")
			return
		}
		at = parsed.AddDate(0, 0, 14)
	}
	run, err := ah.reports.Payroll(c.Request.Context(), at)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (ah *AdminHandler) Analytics(c *gin.Context) {
	stats, err := ah.reports.BookingStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
