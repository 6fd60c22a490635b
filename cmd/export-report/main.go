// Command export-report writes the invoice workbook to a file without going
// through the HTTP API. Useful for cron jobs and manual exports.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/config"
	"github.com/vendorbridge/bizops/internal/report"
	"github.com/vendorbridge/bizops/internal/repository"
	"github.com/vendorbridge/bizops/pkg/database"
	"github.com/vendorbridge/bizops/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	outPath := flag.String("out", "invoices.xlsx", "output file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	invoiceRepo := repository.NewInvoiceRepository(db.DB, logger)
	customerRepo := repository.NewCustomerRepository(db.DB, logger)

	invoices, err := invoiceRepo.List(0, "")
	if err != nil {
		logger.Fatal("Failed to list invoices", zap.Error(err))
	}
	customers, err := customerRepo.List()
	if err != nil {
		logger.Fatal("Failed to list customers", zap.Error(err))
	}
	names := make(map[int64]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	reporter := report.NewInvoiceReport(logger)
	workbook, err := reporter.Build(invoices, names)
	if err != nil {
		logger.Fatal("Failed to build report", zap.Error(err))
	}

	out, err := os.Create(*outPath)
	if err != nil {
		logger.Fatal("Failed to create output file", zap.Error(err))
	}
	defer out.Close()

	if err := reporter.Write(workbook, out); err != nil {
		logger.Fatal("Failed to write report", zap.Error(err))
	}

	logger.Info("Report written",
		zap.String("path", *outPath),
		zap.Int("invoices", len(invoices)))
}
