package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendorbridge/bizops/internal/models"
	"github.com/vendorbridge/bizops/pkg/utils"
)

type vendorRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

func (a *API) createVendor(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid vendor payload")
		return
	}
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			respondValidation(c, map[string]string{"email": err.Error()})
			return
		}
	}

	vendor := models.Vendor{
		Name:     utils.SanitizeString(req.Name),
		Email:    req.Email,
		Phone:    req.Phone,
		Category: req.Category,
		Rating:   req.Rating,
	}
	if err := a.vendors.Create(&vendor); err != nil {
		respondInternal(c, "failed to create vendor")
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

func (a *API) listVendors(c *gin.Context) {
	vendors, err := a.vendors.List()
	if err != nil {
		respondInternal(c, "failed to list vendors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

func (a *API) getVendor(c *gin.Context) {
	vendor, err := a.vendors.GetByID(c.Param("id"))
	if err != nil {
		respondInternal(c, "failed to load vendor")
		return
	}
	if vendor == nil {
		respondNotFound(c, "vendor not found")
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (a *API) updateVendor(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid vendor payload")
		return
	}

	vendor := models.Vendor{
		ID:       c.Param("id"),
		Name:     utils.SanitizeString(req.Name),
		Email:    req.Email,
		Phone:    req.Phone,
		Category: req.Category,
		Rating:   req.Rating,
	}
	if err := a.vendors.Update(&vendor); err != nil {
		respondNotFound(c, "vendor not found")
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (a *API) deleteVendor(c *gin.Context) {
	if err := a.vendors.Delete(c.Param("id")); err != nil {
		respondNotFound(c, "vendor not found")
		return
	}
	c.Status(http.StatusNoContent)
}
