package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vendorbridge/bizops/internal/models"
	"github.com/vendorbridge/bizops/pkg/utils"
)

type customerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (a *API) createCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid customer payload")
		return
	}
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			respondValidation(c, map[string]string{"email": err.Error()})
			return
		}
	}

	customer := models.Customer{
		Name:    utils.SanitizeString(req.Name),
		Email:   req.Email,
		Phone:   req.Phone,
		Address: utils.SanitizeString(req.Address),
		Notes:   utils.SanitizeString(req.Notes),
	}
	if err := a.customers.Create(&customer); err != nil {
		respondInternal(c, "failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (a *API) listCustomers(c *gin.Context) {
	customers, err := a.customers.List()
	if err != nil {
		respondInternal(c, "failed to list customers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (a *API) getCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid customer id")
		return
	}

	customer, err := a.customers.GetByID(id)
	if err != nil {
		respondInternal(c, "failed to load customer")
		return
	}
	if customer == nil {
		respondNotFound(c, "customer not found")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (a *API) updateCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid customer id")
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid customer payload")
		return
	}

	customer := models.Customer{
		ID:      id,
		Name:    utils.SanitizeString(req.Name),
		Email:   req.Email,
		Phone:   req.Phone,
		Address: utils.SanitizeString(req.Address),
		Notes:   utils.SanitizeString(req.Notes),
	}
	if err := a.customers.Update(&customer); err != nil {
		respondNotFound(c, "customer not found")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (a *API) deleteCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid customer id")
		return
	}
	if err := a.customers.Delete(id); err != nil {
		respondNotFound(c, "customer not found")
		return
	}
	c.Status(http.StatusNoContent)
}
