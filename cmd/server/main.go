package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"api-dispatcher-service/internal/adapters/primary/http/handlers"
	"api-dispatcher-service/internal/adapters/primary/http/middleware"
	"api-dispatcher-service/internal/adapters/secondary/awsgateway"
	"api-dispatcher-service/internal/adapters/secondary/azure"
	"api-dispatcher-service/internal/adapters/secondary/gcloud"
	"api-dispatcher-service/internal/adapters/secondary/gitmirror"
	"api-dispatcher-service/internal/adapters/secondary/sqlite"
	"api-dispatcher-service/internal/config"
	"api-dispatcher-service/internal/core/domain"
	ports "api-dispatcher-service/internal/core/ports/output"
	"api-dispatcher-service/internal/core/services"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Open deployment ledger
	ledger, err := sqlite.Open(cfg.Deploy.LedgerPath)
	if err != nil {
		log.Fatalf("open ledger: %v", err)
	}
	defer ledger.Close()
	log.Infof("deployment ledger at %s", cfg.Deploy.LedgerPath)

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Core Services (Application Layer)
	specSvc := services.NewSpecService()
	validationSvc := services.NewValidationService(filepath.Join(cfg.Specs.DataDir, "schemas"))
	dispatchSvc := services.NewDispatchService(validationSvc)
	deploySvc := services.NewDeployService(newDeployer, ledger)
	syncSvc := services.NewSyncService(gitmirror.New(), cfg.Specs.DataDir, cfg.Sync.Remote, cfg.Sync.Ref)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(router, specSvc, dispatchSvc, deploySvc, syncSvc, handlers.HandlerRegistry{})
	h.SetDeployDefaults(cfg.Deploy.Cloud, cfg.Deploy.Stage)

	admin := router.Group("/api/v1/dispatcher")
	h.RegisterRoutes(admin)

	// Health check
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Mount configured specifications
	for _, file := range cfg.Specs.Files {
		doc, err := specSvc.Load(file)
		if err != nil {
			log.Fatalf("load spec %s: %v", file, err)
		}
		if _, err := h.Mount(doc); err != nil {
			log.Fatalf("mount spec %s: %v", file, err)
		}
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

// newDeployer builds the adapter for a cloud provider on demand, so a server
// that never deploys does not need provider credentials.
func newDeployer(cloud string) (ports.CloudDeployer, error) {
	switch cloud {
	case "aws":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return awsgateway.New(awsCfg), nil
	case "gcp":
		return gcloud.New(), nil
	case "azure":
		return azure.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedCloud, cloud)
	}
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
