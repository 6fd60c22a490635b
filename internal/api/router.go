package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/billing"
	"github.com/vendorbridge/bizops/internal/chat"
	"github.com/vendorbridge/bizops/internal/payments"
	"github.com/vendorbridge/bizops/internal/presence"
	"github.com/vendorbridge/bizops/internal/realtime"
	"github.com/vendorbridge/bizops/internal/report"
	"github.com/vendorbridge/bizops/internal/repository"
	"github.com/vendorbridge/bizops/pkg/database"
)

// Defaults carries the billing defaults applied when a request omits them
type Defaults struct {
	Currency   string
	TaxPercent float64
}

// API holds the handler dependencies
type API struct {
	db         *database.DB
	customers  *repository.CustomerRepository
	vendors    *repository.VendorRepository
	invoices   *repository.InvoiceRepository
	rfps       *repository.RFPRepository
	proposals  *repository.ProposalRepository
	payments   *repository.PaymentRepository
	messages   *repository.MessageRepository
	processor  *payments.Client
	messenger  *chat.Messenger
	tracker    *presence.Tracker
	dispatcher *realtime.Dispatcher
	hub        *realtime.Hub
	renderer   *billing.Renderer
	reports    *report.InvoiceReport
	defaults   Defaults
	logger     *zap.Logger
}

// Deps bundles everything the API needs
type Deps struct {
	DB         *database.DB
	Customers  *repository.CustomerRepository
	Vendors    *repository.VendorRepository
	Invoices   *repository.InvoiceRepository
	RFPs       *repository.RFPRepository
	Proposals  *repository.ProposalRepository
	Payments   *repository.PaymentRepository
	Messages   *repository.MessageRepository
	Processor  *payments.Client
	Messenger  *chat.Messenger
	Tracker    *presence.Tracker
	Dispatcher *realtime.Dispatcher
	Hub        *realtime.Hub
	Renderer   *billing.Renderer
	Reports    *report.InvoiceReport
	Defaults   Defaults
	Logger     *zap.Logger
}

// New creates the API
func New(deps Deps) *API {
	return &API{
		db:         deps.DB,
		customers:  deps.Customers,
		vendors:    deps.Vendors,
		invoices:   deps.Invoices,
		rfps:       deps.RFPs,
		proposals:  deps.Proposals,
		payments:   deps.Payments,
		messages:   deps.Messages,
		processor:  deps.Processor,
		messenger:  deps.Messenger,
		tracker:    deps.Tracker,
		dispatcher: deps.Dispatcher,
		hub:        deps.Hub,
		renderer:   deps.Renderer,
		reports:    deps.Reports,
		defaults:   deps.Defaults,
		logger:     deps.Logger,
	}
}

// Router builds the gin engine with all routes and middleware
func (a *API) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(a.logger))
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "bizops",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	router.GET("/ws/:channel", a.serveWebsocket)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/customers", a.createCustomer)
		v1.GET("/customers", a.listCustomers)
		v1.GET("/customers/:id", a.getCustomer)
		v1.PUT("/customers/:id", a.updateCustomer)
		v1.DELETE("/customers/:id", a.deleteCustomer)

		v1.POST("/vendors", a.createVendor)
		v1.GET("/vendors", a.listVendors)
		v1.GET("/vendors/:id", a.getVendor)
		v1.PUT("/vendors/:id", a.updateVendor)
		v1.DELETE("/vendors/:id", a.deleteVendor)

		v1.POST("/invoices", a.createInvoice)
		v1.GET("/invoices", a.listInvoices)
		v1.GET("/invoices/:id", a.getInvoice)
		v1.PUT("/invoices/:id/items", a.replaceInvoiceItems)
		v1.POST("/invoices/:id/finalize", a.finalizeInvoice)
		v1.DELETE("/invoices/:id", a.deleteInvoice)
		v1.POST("/invoices/:id/payments", a.createPayment)
		v1.GET("/invoices/:id/payments", a.listPayments)

		v1.POST("/rfps", a.createRFP)
		v1.GET("/rfps", a.listRFPs)
		v1.GET("/rfps/:id", a.getRFP)
		v1.POST("/rfps/:id/proposals", a.createProposal)
		v1.GET("/rfps/:id/proposals", a.listProposals)
		v1.POST("/proposals/:id/match", a.matchProposal)

		v1.POST("/channels/:channel/messages", a.postMessage)
		v1.GET("/channels/:channel/messages", a.listMessages)
		v1.POST("/channels/:channel/typing", a.signalTyping)
		v1.GET("/channels/:channel/typing", a.listTyping)

		v1.GET("/reports/invoices.xlsx", a.exportInvoiceReport)
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
