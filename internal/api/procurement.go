package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vendorbridge/bizops/internal/models"
	"github.com/vendorbridge/bizops/internal/vendormatch"
	"github.com/vendorbridge/bizops/pkg/utils"
)

type rfpRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	BudgetCents int64      `json:"budget_cents"`
	Currency    string     `json:"currency"`
	Deadline    *time.Time `json:"deadline"`
}

type proposalRequest struct {
	VendorID    string `json:"vendor_id"`
	Company     string `json:"company"`
	Email       string `json:"email"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Summary     string `json:"summary"`
}

func (a *API) createRFP(c *gin.Context) {
	var req rfpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid rfp payload")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = a.defaults.Currency
	}

	rfp := models.RFP{
		Title:       utils.SanitizeString(req.Title),
		Description: utils.SanitizeString(req.Description),
		Category:    req.Category,
		BudgetCents: req.BudgetCents,
		Currency:    currency,
		Deadline:    req.Deadline,
	}
	if err := a.rfps.Create(&rfp); err != nil {
		respondInternal(c, "failed to create rfp")
		return
	}
	c.JSON(http.StatusCreated, rfp)
}

func (a *API) listRFPs(c *gin.Context) {
	rfps, err := a.rfps.List()
	if err != nil {
		respondInternal(c, "failed to list rfps")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rfps": rfps})
}

func (a *API) getRFP(c *gin.Context) {
	rfp, err := a.rfps.GetByID(c.Param("id"))
	if err != nil {
		respondInternal(c, "failed to load rfp")
		return
	}
	if rfp == nil {
		respondNotFound(c, "rfp not found")
		return
	}
	c.JSON(http.StatusOK, rfp)
}

func (a *API) createProposal(c *gin.Context) {
	rfp, err := a.rfps.GetByID(c.Param("id"))
	if err != nil {
		respondInternal(c, "failed to load rfp")
		return
	}
	if rfp == nil {
		respondNotFound(c, "rfp not found")
		return
	}
	if rfp.Status != models.RFPStatusOpen {
		respondBadRequest(c, "rfp is not accepting proposals")
		return
	}

	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid proposal payload")
		return
	}
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			respondValidation(c, map[string]string{"email": err.Error()})
			return
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = rfp.Currency
	}

	proposal := models.Proposal{
		RFPID:       rfp.ID,
		VendorID:    req.VendorID,
		Company:     utils.SanitizeString(req.Company),
		Email:       req.Email,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Summary:     utils.SanitizeString(req.Summary),
	}
	if err := a.proposals.Create(&proposal); err != nil {
		respondInternal(c, "failed to create proposal")
		return
	}
	c.JSON(http.StatusCreated, proposal)
}

func (a *API) listProposals(c *gin.Context) {
	proposals, err := a.proposals.ListByRFP(c.Param("id"))
	if err != nil {
		respondInternal(c, "failed to list proposals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": proposals})
}

// matchProposal associates a proposal with a vendor record by heuristic
// and persists the association when one is found. A miss is a normal
// answer, not an error.
func (a *API) matchProposal(c *gin.Context) {
	proposal, err := a.proposals.GetByID(c.Param("id"))
	if err != nil {
		respondInternal(c, "failed to load proposal")
		return
	}
	if proposal == nil {
		respondNotFound(c, "proposal not found")
		return
	}

	vendors, err := a.vendors.List()
	if err != nil {
		respondInternal(c, "failed to list vendors")
		return
	}

	result := vendormatch.Match(proposal, vendors)
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"matched": false})
		return
	}

	if proposal.VendorID != result.Vendor.ID {
		if err := a.proposals.AssignVendor(proposal.ID, result.Vendor.ID); err != nil {
			respondInternal(c, "failed to record match")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"matched": true,
		"vendor":  result.Vendor,
		"clause":  result.Clause,
	})
}
