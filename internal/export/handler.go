package export

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoice-backend/internal/invoices"
	"invoice-backend/internal/shared/server/respond"
	"invoice-backend/internal/shared/telemetry"
)

// Handler serves spreadsheet exports of invoice record batches.
type Handler struct {
	ExportDir string
}

// NewHandler constructs a Handler staging workbooks under exportDir.
func NewHandler(exportDir string) *Handler {
	return &Handler{ExportDir: exportDir}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/export", h.export)
}

func (h *Handler) export(c *gin.Context) {
	var records []invoices.Record
	if err := c.ShouldBindJSON(&records); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	headers, rows := BuildExport(records)

	// Concurrent exports must never collide on the staged file.
	fileName := fmt.Sprintf("invoices_%d_%s.xlsx", time.Now().UnixMilli(), uuid.NewString()[:8])
	stagedPath := filepath.Join(h.ExportDir, fileName)

	if err := WriteWorkbook(stagedPath, headers, rows); err != nil {
		respond.Error(c, http.StatusInternalServerError, "export_error", "Error exporting to Excel: "+err.Error(), nil)
		return
	}
	defer func() {
		if err := os.Remove(stagedPath); err != nil {
			telemetry.Error("export.cleanup", map[string]any{"path": stagedPath, "error": err.Error()})
		}
	}()

	telemetry.Info("export.complete", map[string]any{
		"records": len(records),
		"columns": len(headers),
	})
	c.FileAttachment(stagedPath, fileName)
}
