package handlers

import (
	"net/http"
	"time"

	"cleanslate/models"
	"cleanslate/services/worker"
	"cleanslate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Demo identities; there is no password flow.
const (
	DemoCustomerID   = "customer1"
	DemoCustomerName = "Valued Customer"
	DemoAdminID      = "admin1"
	DemoAdminName    = "Admin User"
	DemoWorkerID     = "worker1"

	demoTokenTTL = 24 * time.Hour
)

type AuthHandler struct {
	workers worker.WorkerService
}

func NewAuthHandler(workers worker.WorkerService) *AuthHandler {
	return &AuthHandler{workers: workers}
}

// DemoLogin issues a token for one of the demo roles.
func (h *AuthHandler) DemoLogin(c *gin.Context) {
	var req models.DemoLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp := models.DemoLoginResponse{Role: req.Role}
	switch req.Role {
	case utils.RoleCustomer:
		resp.ID, resp.Name = DemoCustomerID, DemoCustomerName
	case utils.RoleAdmin:
		resp.ID, resp.Name = DemoAdminID, DemoAdminName
	case utils.RoleWorker:
		id := req.WorkerID
		if id == "" {
			id = DemoWorkerID
		}
		w, err := h.workers.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.ID, resp.Name = w.ID, w.FullName
	default:
		utils.JSONError(c, http.StatusBadRequest, "Unknown role", "role must be customer, worker or admin")
		return
	}

	token, err := utils.GenerateToken(resp.ID, resp.Role, resp.Name, demoTokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Token = token
	zap.L().Info("demo login", zap.String("role", resp.Role), zap.String("id", resp.ID))
	c.JSON(http.StatusOK, resp)
}
