package vendormatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorbridge/bizops/internal/models"
)

func TestMatch(t *testing.T) {
	vendors := []models.Vendor{
		{ID: "v1", Name: "Acme Supplies", Email: "a@x.com"},
		{ID: "v2", Name: "Beta Logistics", Email: "b@x.com"},
	}

	tests := []struct {
		name       string
		proposal   models.Proposal
		wantVendor string
		wantClause Clause
		wantNil    bool
	}{
		{
			name:       "matches by vendor id",
			proposal:   models.Proposal{VendorID: "v2", Email: "other@y.com", Company: "Other"},
			wantVendor: "v2",
			wantClause: ClauseVendorID,
		},
		{
			name:       "case-insensitive email match with empty vendor id",
			proposal:   models.Proposal{Email: "A@X.com", Company: "Other"},
			wantVendor: "v1",
			wantClause: ClauseEmail,
		},
		{
			name:       "case-insensitive company name match",
			proposal:   models.Proposal{Email: "nobody@y.com", Company: "beta logistics"},
			wantVendor: "v2",
			wantClause: ClauseCompany,
		},
		{
			name:     "no clause matches",
			proposal: models.Proposal{Email: "nobody@y.com", Company: "Gamma"},
			wantNil:  true,
		},
		{
			name:     "empty proposal fields never match",
			proposal: models.Proposal{},
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(&tt.proposal, vendors)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantVendor, got.Vendor.ID)
			assert.Equal(t, tt.wantClause, got.Clause)
		})
	}
}

// Ambiguous matches resolve by vendor list order, not clause priority
// across the whole list.
func TestMatchFirstVendorWins(t *testing.T) {
	vendors := []models.Vendor{
		{ID: "v1", Name: "Shared Name", Email: "one@x.com"},
		{ID: "v2", Name: "Shared Name", Email: "two@x.com"},
	}

	got := Match(&models.Proposal{Company: "shared name"}, vendors)
	require.NotNil(t, got)
	assert.Equal(t, "v1", got.Vendor.ID)

	// An email matching the later vendor still loses to an earlier
	// company match, because vendors are scanned in order.
	got = Match(&models.Proposal{Email: "two@x.com", Company: "Shared Name"}, vendors)
	require.NotNil(t, got)
	assert.Equal(t, "v1", got.Vendor.ID)
	assert.Equal(t, ClauseCompany, got.Clause)
}
