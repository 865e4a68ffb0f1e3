package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"avon-hello/app/controller"
	"avon-hello/app/router"
	"avon-hello/config"
	"avon-hello/db"
	"avon-hello/logger"
	"avon-hello/pricing"
	"avon-hello/repository"
	"avon-hello/service"
)

// Initialize opens the database, wires repositories, services and controllers,
// and returns the admin API handler
func Initialize(ctx context.Context, paths config.Paths) (http.Handler, error) {
	// Initialize database connection
	if err := db.InitDB(ctx, paths.DBPath); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	engine, err := pricing.LoadEngine(os.Getenv("PRICING_CONFIG"))
	if err != nil {
		return nil, err
	}

	settings, err := config.OpenSettings(paths.SettingsFile)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository()
	campaignRepo := repository.NewCampaignRepository()
	orderRepo := repository.NewOrderRepository(engine, campaignRepo)
	representativeRepo := repository.NewRepresentativeRepository()

	// Seed the campaign log so the first screen shows the defaults
	if _, err := campaignRepo.Current(ctx); err != nil {
		return nil, err
	}

	invoiceService := service.NewInvoiceService(orderRepo, customerRepo, representativeRepo, engine,
		service.NewPDFService(), paths.InvoiceDir)
	backupService := service.NewBackupService(newDriveService(ctx), os.Getenv("DRIVE_BACKUP_FOLDER_ID"),
		filepath.Join(paths.DataDir, "backups"), paths.InvoiceDir)

	controllers := &router.Controllers{
		Customer:       controller.NewCustomerController(customerRepo),
		Order:          controller.NewOrderController(orderRepo),
		Invoice:        controller.NewInvoiceController(invoiceService, settings, service.OpenFile),
		Pricing:        controller.NewPricingController(engine),
		Campaign:       controller.NewCampaignController(campaignRepo),
		Representative: controller.NewRepresentativeController(representativeRepo),
		Settings:       controller.NewSettingsController(settings),
		Backup:         controller.NewBackupController(backupService),
	}

	return router.SetupRoutes(http.NewServeMux(), controllers), nil
}

// newDriveService returns nil, leaving backups disabled, when no credentials are configured
func newDriveService(ctx context.Context) service.DriveServiceInterface {
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath == "" || os.Getenv("DRIVE_BACKUP_FOLDER_ID") == "" {
		logger.Info("ℹ️ Drive backup disabled: GOOGLE_APPLICATION_CREDENTIALS or DRIVE_BACKUP_FOLDER_ID not set")
		return nil
	}

	driveService, err := service.NewDriveService(ctx, credentialsPath)
	if err != nil {
		logger.Warn("⚠️ Drive backup disabled", zap.Error(err))
		return nil
	}
	return driveService
}
