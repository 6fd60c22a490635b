// Package vendormatch associates inbound proposals with vendor records.
// The association is a best-effort heuristic over a handful of fields, not
// a guaranteed-unique join: duplicate emails or names across vendors can
// misattribute a proposal, and the first vendor in list order wins.
package vendormatch

import (
	"strings"

	"github.com/vendorbridge/bizops/internal/models"
)

// Clause identifies which comparison associated a proposal with a vendor.
type Clause string

const (
	ClauseVendorID Clause = "vendor_id"
	ClauseEmail    Clause = "email"
	ClauseCompany  Clause = "company"
)

// Result is a successful association.
type Result struct {
	Vendor *models.Vendor
	Clause Clause
}

// Match returns the first vendor in list order satisfying any clause:
// exact vendor id, case-insensitive email, or case-insensitive company
// name against the vendor's name. Returns nil when nothing matches.
func Match(proposal *models.Proposal, vendors []models.Vendor) *Result {
	for i := range vendors {
		v := &vendors[i]
		if clause, ok := matches(proposal, v); ok {
			return &Result{Vendor: v, Clause: clause}
		}
	}
	return nil
}

func matches(p *models.Proposal, v *models.Vendor) (Clause, bool) {
	if p.VendorID != "" && p.VendorID == v.ID {
		return ClauseVendorID, true
	}
	if p.Email != "" && strings.EqualFold(p.Email, v.Email) {
		return ClauseEmail, true
	}
	if p.Company != "" && strings.EqualFold(p.Company, v.Name) {
		return ClauseCompany, true
	}
	return "", false
}
