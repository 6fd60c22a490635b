// Package payments wraps the payment processor. The processor owns charge
// confirmation and hosted payment pages; this client only creates intents
// and payment links and reports what the processor answered.
package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/paymentlink"
	"github.com/stripe/stripe-go/v82/price"
	"github.com/stripe/stripe-go/v82/product"
	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
)

// Config holds payment processor configuration
type Config struct {
	APIKey     string
	SuccessURL string
	// Simulate keeps all processor calls local and fabricates
	// deterministic intent and link IDs. The integration in this system
	// is simulated; real mode exists for when credentials are wired in.
	Simulate bool
}

// Intent is the client-facing result of creating a payment intent
type Intent struct {
	ID          string
	AmountCents int64
	Currency    string
	Status      models.PaymentStatus
}

// Client talks to the payment processor
type Client struct {
	cfg    Config
	logger *zap.Logger
}

// NewClient creates a payments client. In real mode the global stripe key
// is set once here.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if !cfg.Simulate {
		stripe.Key = cfg.APIKey
	}
	return &Client{cfg: cfg, logger: logger}
}

// CreatePaymentLink creates a hosted payment page for an invoice via the
// processor's product -> price -> payment link chain. Amounts are already
// minor units and pass through untouched.
func (c *Client) CreatePaymentLink(inv *models.Invoice) (string, string, error) {
	if c.cfg.Simulate {
		linkID := fmt.Sprintf("plink_sim_%d", inv.ID)
		url := fmt.Sprintf("https://pay.example.com/l/%s", linkID)
		c.logger.Info("Simulated payment link",
			zap.Int64("invoice_id", inv.ID),
			zap.String("link_id", linkID))
		return url, linkID, nil
	}

	prod, err := product.New(&stripe.ProductParams{
		Name:        stripe.String(fmt.Sprintf("Invoice %s", inv.Number)),
		Description: stripe.String(fmt.Sprintf("invoice-%d", inv.ID)),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create product: %w", err)
	}

	pr, err := price.New(&stripe.PriceParams{
		Currency:   stripe.String(inv.Currency),
		UnitAmount: stripe.Int64(inv.TotalCents),
		Product:    stripe.String(prod.ID),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create price: %w", err)
	}

	link, err := paymentlink.New(&stripe.PaymentLinkParams{
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{
				Price:    stripe.String(pr.ID),
				Quantity: stripe.Int64(1),
			},
		},
		AfterCompletion: &stripe.PaymentLinkAfterCompletionParams{
			Type: stripe.String("redirect"),
			Redirect: &stripe.PaymentLinkAfterCompletionRedirectParams{
				URL: stripe.String(c.cfg.SuccessURL),
			},
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment link: %w", err)
	}

	c.logger.Info("Payment link created",
		zap.Int64("invoice_id", inv.ID),
		zap.String("link_id", link.ID))
	return link.URL, link.ID, nil
}

// CreateIntent creates a payment intent for a manual card payment. The
// card fields themselves never reach this client; they are tokenized on
// the client side and only the amount travels here.
func (c *Client) CreateIntent(amountCents int64, currency string, invoiceID int64) (*Intent, error) {
	if c.cfg.Simulate {
		intent := &Intent{
			ID:          fmt.Sprintf("pi_sim_%d_%d", invoiceID, amountCents),
			AmountCents: amountCents,
			Currency:    currency,
			Status:      models.PaymentStatusSucceeded,
		}
		c.logger.Info("Simulated payment intent",
			zap.Int64("invoice_id", invoiceID),
			zap.String("intent_id", intent.ID))
		return intent, nil
	}

	pi, err := paymentintent.New(&stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		Metadata: map[string]string{
			"invoice_id": fmt.Sprintf("%d", invoiceID),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{
		ID:          pi.ID,
		AmountCents: pi.Amount,
		Currency:    string(pi.Currency),
		Status:      models.PaymentStatusPending,
	}, nil
}
