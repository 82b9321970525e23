package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cleanslate/config"
	bookingRepo "cleanslate/database/repository/booking"
	customerRepo "cleanslate/database/repository/customer"
	trainingRepo "cleanslate/database/repository/training"
	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/database/seed"
	"cleanslate/handlers"
	"cleanslate/models"
	"cleanslate/services/booking"
	"cleanslate/services/customer"
	"cleanslate/services/geo"
	"cleanslate/services/payment"
	"cleanslate/services/reports"
	"cleanslate/services/worker"
	"cleanslate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "routes-test-secret"
	logger := zap.NewNop()
	ctx := context.Background()

	bookings := bookingRepo.NewMemoryBookingRepo()
	workers := workerRepo.NewMemoryWorkerRepo()
	customers := customerRepo.NewMemoryCustomerRepo()
	modules := trainingRepo.NewMemoryTrainingRepo()
	if err := seed.Load(ctx, seed.Repos{Bookings: bookings, Workers: workers, Customers: customers, Modules: modules}, time.Now(), "ZAR", logger); err != nil {
		t.Fatalf("seed: %v", err)
	}

	locks := utils.NewKeyedMutex()
	bookingSvc := booking.NewBookingService(bookings, workers, customers, nil, nil, logger, booking.Settings{
		Currency: "ZAR", Location: time.UTC, ReminderLead: time.Hour, WorkerLocks: locks,
	})
	workerSvc, err := worker.NewDefaultWorkerService(workers, modules, nil, logger, []string{"train002", "train003"}, locks)
	if err != nil {
		t.Fatalf("worker service: %v", err)
	}
	locator := geo.NewHaversineLocator(workers)
	reportSvc := reports.NewReportService(bookings, workers, "ZAR", time.UTC, 0)

	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Auth:     handlers.NewAuthHandler(workerSvc),
		Catalog:  handlers.NewCatalogHandler(bookingSvc),
		Booking:  handlers.NewBookingHandler(bookingSvc),
		Worker:   handlers.NewWorkerHandler(workerSvc, bookingSvc, locator, reportSvc, 10),
		Admin:    handlers.NewAdminHandler(bookingSvc, workerSvc, reportSvc),
		Matching: handlers.NewMatchingHandler(booking.NewMatchingService(bookingSvc, workers, locator, nil, nil, logger, 10)),
		Payment:  handlers.NewPaymentHandler(payment.NewPaymentService(payment.NewStubGateway(logger), bookingSvc, logger)),
		Customer: handlers.NewCustomerHandler(customer.NewDefaultCustomerService(customers, nil, logger)),
	})
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, role, workerID string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/auth/demo-login", "", models.DemoLoginRequest{Role: role, WorkerID: workerID})
	if w.Code != http.StatusOK {
		t.Fatalf("login as %s: %d %s", role, w.Code, w.Body.String())
	}
	var resp models.DemoLoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Token
}

func TestPublicEndpoints(t *testing.T) {
	r := newTestApp(t)

	if w := do(t, r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected healthy, got %d", w.Code)
	}

	w := do(t, r, http.MethodGet, "/api/catalog/services", "", nil)
	var catalog []models.ServiceCategory
	if err := json.Unmarshal(w.Body.Bytes(), &catalog); err != nil || len(catalog) != 4 {
		t.Fatalf("expected 4 categories, got %d (%v)", len(catalog), err)
	}

	w = do(t, r, http.MethodGet, "/api/workers", "", nil)
	var active []models.PublicWorker
	if err := json.Unmarshal(w.Body.Bytes(), &active); err != nil || len(active) != 2 {
		t.Fatalf("expected 2 active workers, got %s", w.Body.String())
	}

	if w := do(t, r, http.MethodGet, "/api/workers/worker-pending", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected pending worker to be hidden, got %d", w.Code)
	}
	admin := login(t, r, utils.RoleAdmin, "")
	if w := do(t, r, http.MethodGet, "/api/workers/worker-pending", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("expected admin to see pending worker, got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/catalog/quote", "", models.QuoteRequest{WorkerID: "worker1", ServiceItemIDs: []string{"et-sweep-mop", "ll-wash-dry-fold"}})
	var q models.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil || q.TotalCents != 31500 {
		t.Fatalf("expected 31500 quote, got %s", w.Body.String())
	}

	if w := do(t, r, http.MethodGet, "/api/workers/nearby?lat=-26.2&lng=28.04", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected nearby search to succeed, got %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/workers/nearby?lat=north", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected bad coordinates to fail, got %d", w.Code)
	}
}

func TestBookingFlow(t *testing.T) {
	r := newTestApp(t)
	customerToken := login(t, r, utils.RoleCustomer, "")
	workerToken := login(t, r, utils.RoleWorker, "worker1")
	otherWorker := login(t, r, utils.RoleWorker, "worker2")
	start := time.Now().UTC().Truncate(time.Hour).AddDate(0, 0, 20)

	w := do(t, r, http.MethodPost, "/api/bookings", customerToken, map[string]interface{}{
		"workerId":       "worker1",
		"serviceItemIds": []string{"et-sweep-mop"},
		"bookingDate":    start.Format(time.RFC3339),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", w.Code, w.Body.String())
	}
	var b models.Booking
	_ = json.Unmarshal(w.Body.Bytes(), &b)
	if b.CustomerID != "customer1" || b.Status != models.StatusAwaitingWorkerConfirmation {
		t.Fatalf("unexpected booking %+v", b)
	}

	w = do(t, r, http.MethodPost, "/api/bookings", customerToken, map[string]interface{}{
		"workerId":       "worker1",
		"serviceItemIds": []string{"et-dusting"},
		"bookingDate":    start.Add(30 * time.Minute).Format(time.RFC3339),
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected overlapping booking to conflict, got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/bookings", customerToken, map[string]interface{}{
		"workerId":       "worker-pending",
		"serviceItemIds": []string{"et-sweep-mop"},
		"bookingDate":    start.Format(time.RFC3339),
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected applicant to be unbookable, got %d", w.Code)
	}

	path := "/api/workers/worker1/availability?durationMinutes=30&start=" + start.Format(time.RFC3339)
	w = do(t, r, http.MethodGet, path, "", nil)
	var avail struct {
		Available bool `json:"available"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &avail); err != nil || avail.Available {
		t.Fatalf("expected worker1 to be busy, got %s", w.Body.String())
	}

	status := "/api/bookings/" + b.ID + "/status"
	confirm := models.StatusUpdateRequest{Status: models.StatusConfirmedByWorker}
	if w := do(t, r, http.MethodPatch, status, customerToken, confirm); w.Code != http.StatusForbidden {
		t.Fatalf("expected customer confirm to be forbidden, got %d", w.Code)
	}
	if w := do(t, r, http.MethodPatch, status, otherWorker, confirm); w.Code != http.StatusForbidden {
		t.Fatalf("expected other worker to be forbidden, got %d", w.Code)
	}
	if w := do(t, r, http.MethodPatch, status, workerToken, models.StatusUpdateRequest{Status: models.StatusCompletedByWorker}); w.Code != http.StatusConflict {
		t.Fatalf("expected illegal jump to conflict, got %d", w.Code)
	}
	if w := do(t, r, http.MethodPatch, status, workerToken, confirm); w.Code != http.StatusOK {
		t.Fatalf("expected worker confirm, got %d %s", w.Code, w.Body.String())
	}

	if w := do(t, r, http.MethodGet, "/api/bookings/"+b.ID, otherWorker, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected other worker not to see booking, got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/bookings/"+b.ID+"/review", customerToken, models.ReviewRequest{Rating: 5, Review: "Spotless"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected review to succeed, got %d %s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &b)
	if b.Status != models.StatusCustomerConfirmedAndRated {
		t.Fatalf("expected rated booking, got %s", b.Status)
	}

	w = do(t, r, http.MethodGet, "/api/customers/customer1/bookings", customerToken, nil)
	var mine []models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &mine); err != nil || len(mine) != 3 {
		t.Fatalf("expected 3 customer bookings, got %s", w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/api/workers/worker2/bookings", workerToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected worker1 not to list worker2's bookings, got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/payments/initiate", customerToken, map[string]string{"bookingId": b.ID, "email": "customer@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected payment initiation, got %d %s", w.Code, w.Body.String())
	}
}

func TestAdminRoutes(t *testing.T) {
	r := newTestApp(t)
	admin := login(t, r, utils.RoleAdmin, "")
	customerToken := login(t, r, utils.RoleCustomer, "")

	if w := do(t, r, http.MethodGet, "/api/admin/bookings", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/admin/bookings", customerToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", w.Code)
	}

	w := do(t, r, http.MethodGet, "/api/admin/workers?status=Active&status=TrainingPending", admin, nil)
	var list []models.Worker
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 3 {
		t.Fatalf("expected 3 workers, got %s", w.Body.String())
	}

	w = do(t, r, http.MethodPatch, "/api/admin/workers/worker-pending/status", admin, models.WorkerStatusRequest{Status: models.WorkerActive})
	var promoted models.Worker
	if err := json.Unmarshal(w.Body.Bytes(), &promoted); err != nil || promoted.Status != models.WorkerActive || !promoted.TrainingVerified {
		t.Fatalf("expected verified Active worker, got %s", w.Body.String())
	}

	if w := do(t, r, http.MethodPost, "/api/admin/workers/worker1/training", admin, models.AssignTrainingRequest{ModuleID: "train001"}); w.Code != http.StatusConflict {
		t.Fatalf("expected duplicate assignment to conflict, got %d", w.Code)
	}

	trainee := login(t, r, utils.RoleWorker, "worker-training")
	w = do(t, r, http.MethodPatch, "/api/admin/workers/worker-training/training/train001", trainee, models.TrainingStatusRequest{Status: models.TrainingCompleted})
	if w.Code != http.StatusOK {
		t.Fatalf("expected trainee to record progress, got %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodPatch, "/api/admin/workers/worker1/training/train001", trainee, models.TrainingStatusRequest{Status: models.TrainingCompleted}); w.Code != http.StatusForbidden {
		t.Fatalf("expected trainee not to touch worker1, got %d", w.Code)
	}

	if w := do(t, r, http.MethodGet, "/api/admin/payroll?month=2025-13", admin, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected bad month to be rejected, got %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/admin/analytics", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("expected analytics, got %d", w.Code)
	}
}
