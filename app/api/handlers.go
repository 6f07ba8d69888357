package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okuzmin/gradstats/app/analysis"
	"github.com/okuzmin/gradstats/app/database"
)

func NewHandler(engine *analysis.Engine, store database.ApplicantStore, processor IngestRunner) *Handler {
	return &Handler{
		engine:    engine,
		store:     store,
		processor: processor,
		busy:      make(chan struct{}, 1),
	}
}

// GetAnalysis computes the statistics and returns them display-formatted.
func (h *Handler) GetAnalysis(c *gin.Context) {
	results, err := h.engine.Run()
	if err != nil {
		slog.Error("Analysis failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analysis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": analysis.FormatResults(results)})
}

// PullData runs one ingestion pass. A request arriving while another pull is
// in flight gets 409 rather than being queued; the gate exists to avoid
// redundant scraping, not for correctness (the unique url index covers that).
func (h *Handler) PullData(c *gin.Context) {
	select {
	case h.busy <- struct{}{}:
	default:
		c.JSON(http.StatusConflict, gin.H{"error": "ingestion already in progress"})
		return
	}
	defer func() { <-h.busy }()

	result, err := h.processor.Run(c.Request.Context())
	if err != nil {
		slog.Error("Ingestion failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ingestion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"total_rows": result.Inserted,
	})
}

// UpdateAnalysis recomputes the statistics on demand. Statistics are always
// computed from the store, so this is the same work as GetAnalysis; the
// endpoint exists for the UI's refresh button.
func (h *Handler) UpdateAnalysis(c *gin.Context) {
	h.GetAnalysis(c)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if count, err := h.store.GetApplicantCount(); err == nil {
		health["applicants"] = count
	}

	c.JSON(http.StatusOK, health)
}
