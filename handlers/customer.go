package handlers

import (
	"net/http"

	"cleanslate/models"
	"cleanslate/services/customer"
	"cleanslate/utils"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customers customer.CustomerService
}

func NewCustomerHandler(customers customer.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) Signup(c *gin.Context) {
	var in models.CustomerSignup
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	cust, err := h.customers.Signup(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id := c.Param("id")
	if !isSelfOrAdmin(c, utils.RoleCustomer, id) {
		forbidden(c)
		return
	}
	cust, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}
