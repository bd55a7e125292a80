package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-backend/internal/acquire"
	"invoice-backend/internal/config"
	"invoice-backend/internal/export"
	"invoice-backend/internal/invoices"
	"invoice-backend/internal/services/health"
	"invoice-backend/internal/shared/server/middleware"
	"invoice-backend/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(ginMode(cfg.Env))
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	recognizer := acquire.NewTesseractRecognizer(cfg.GhostscriptBin, cfg.OCRLanguages, cfg.UploadDir, cfg.OCRTimeout)
	acquirer := acquire.NewAcquirer(recognizer)
	invoiceSvc := &invoices.Service{Acquirer: acquirer, UploadDir: cfg.UploadDir}
	invoiceHandler := invoices.NewHandler(invoiceSvc)
	exportHandler := export.NewHandler(cfg.ExportDir)
	healthSvc := health.NewService()

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	invoiceHandler.RegisterRoutes(api)
	exportHandler.RegisterRoutes(api)

	return r
}

func ginMode(env string) string {
	if env == "production" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
