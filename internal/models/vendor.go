package models

import "time"

// Vendor represents a supplier the business buys from
type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Category  string    `json:"category"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RFP is a request-for-proposal published to vendors
type RFP struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	BudgetCents int64      `json:"budget_cents"`
	Currency    string     `json:"currency"`
	Status      RFPStatus  `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RFPStatus tracks the lifecycle of an RFP
type RFPStatus string

const (
	RFPStatusOpen    RFPStatus = "open"
	RFPStatusAwarded RFPStatus = "awarded"
	RFPStatusClosed  RFPStatus = "closed"
)

// Proposal is a vendor response to an RFP. VendorID may be empty when the
// proposal arrived through a channel that did not carry the vendor's id;
// the matcher associates it with a vendor record by heuristic.
type Proposal struct {
	ID          string    `json:"id"`
	RFPID       string    `json:"rfp_id"`
	VendorID    string    `json:"vendor_id"`
	Company     string    `json:"company"`
	Email       string    `json:"email"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Summary     string    `json:"summary"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
