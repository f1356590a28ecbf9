package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slide-archive/histogramd/internal/api/middleware"
	"github.com/slide-archive/histogramd/internal/assetstore"
	"github.com/slide-archive/histogramd/internal/dispatcher"
	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/logger"
	"github.com/slide-archive/histogramd/internal/store"
	"github.com/slide-archive/histogramd/internal/store/schema"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListHistograms lists histogram records visible to the caller
	// GET /api/v1/histogram?itemId=<id>&fileId=<id>&jobId=<id>&bins=<n>&label=<bool>&bitmask=<bool>&sort=<created|updated>&limit=<limit>&offset=<offset>
	ListHistograms(c *gin.Context)

	// CreateHistogram submits a histogram computation (requires authentication)
	// POST /api/v1/histogram
	CreateHistogram(c *gin.Context)

	// GetHistogram retrieves a single histogram record by ID
	// GET /api/v1/histogram/:id
	GetHistogram(c *gin.Context)

	// DeleteHistogram removes a record and its result file (requires authentication)
	// DELETE /api/v1/histogram/:id
	DeleteHistogram(c *gin.Context)

	// GetHistogramAccess returns the ACL of a record (requires authentication)
	// GET /api/v1/histogram/:id/access
	GetHistogramAccess(c *gin.Context)

	// SetHistogramAccess replaces the ACL of a record (requires authentication)
	// PUT /api/v1/histogram/:id/access
	SetHistogramAccess(c *gin.Context)

	// GetSettings returns the service-wide histogram settings
	// GET /api/v1/histogram/settings
	GetSettings(c *gin.Context)

	// SetSettings updates the service-wide histogram settings (admin only)
	// PUT /api/v1/histogram/settings
	SetSettings(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store      store.Store
	dispatcher dispatcher.Dispatcher
	assets     assetstore.Assetstore
}

// NewHandler creates a new REST API handler
func NewHandler(st store.Store, disp dispatcher.Dispatcher, assets assetstore.Assetstore) Handler {
	return &handler{
		store:      st,
		dispatcher: disp,
		assets:     assets,
	}
}

// ListHistograms lists histogram records visible to the caller
func (h *handler) ListHistograms(c *gin.Context) {
	query, err := ParseListHistogramsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	histograms, total, err := h.store.FindHistograms(c.Request.Context(), store.HistogramFilter{
		ItemID:  query.ItemID,
		FileID:  query.FileID,
		JobID:   query.JobID,
		Bins:    query.Bins,
		Label:   query.Label,
		Bitmask: query.Bitmask,
		User:    middleware.CurrentUser(c),
		Sort:    query.Sort,
		Limit:   query.Limit,
		Offset:  query.Offset,
	})
	if err != nil {
		respondInternalError(c, "Failed to list histograms", err.Error())
		return
	}

	response := ListHistogramsResponse{
		Histograms: make([]HistogramDTO, 0, len(histograms)),
		Total:      total,
		Limit:      query.Limit,
		Offset:     query.Offset,
	}
	for i := range histograms {
		response.Histograms = append(response.Histograms, ToHistogramDTO(&histograms[i]))
	}

	c.JSON(http.StatusOK, response)
}

// CreateHistogram submits a histogram computation
func (h *handler) CreateHistogram(c *gin.Context) {
	var req CreateHistogramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	record, err := h.dispatcher.Submit(c.Request.Context(), dispatcher.SubmitInput{
		ItemID:  req.ItemID,
		FileID:  req.FileID,
		Bins:    req.Bins,
		Label:   req.Label,
		Bitmask: req.Bitmask,
		Notify:  req.Notify,
		User:    middleware.CurrentUser(c),
	})
	if err != nil {
		respondDomainError(c, err, "Failed to submit histogram computation")
		return
	}

	c.JSON(http.StatusAccepted, ToHistogramDTO(record))
}

// GetHistogram retrieves a single histogram record by ID
func (h *handler) GetHistogram(c *gin.Context) {
	record, acl, ok := h.loadHistogram(c)
	if !ok {
		return
	}
	if !acl.Permits(middleware.CurrentUser(c), domain.AccessRead) {
		respondForbidden(c, "Read access denied")
		return
	}

	c.JSON(http.StatusOK, ToHistogramDTO(record))
}

// DeleteHistogram removes a record, its result file row and blob bytes
func (h *handler) DeleteHistogram(c *gin.Context) {
	record, acl, ok := h.loadHistogram(c)
	if !ok {
		return
	}
	if !acl.Permits(middleware.CurrentUser(c), domain.AccessWrite) {
		respondForbidden(c, "Write access denied")
		return
	}

	removed, err := h.store.RemoveHistogram(c.Request.Context(), record.ID, false)
	if err != nil {
		respondInternalError(c, "Failed to delete histogram", err.Error())
		return
	}
	if removed != nil && removed.StorageKey != "" {
		if err := h.assets.Delete(c.Request.Context(), removed.StorageKey); err != nil {
			logger.WarnCtx(c.Request.Context(), "failed to delete result blob",
				zap.String("histogramID", record.ID),
				zap.String("storageKey", removed.StorageKey),
				zap.Error(err))
		}
	}

	c.Status(http.StatusNoContent)
}

// GetHistogramAccess returns the ACL of a record
func (h *handler) GetHistogramAccess(c *gin.Context) {
	_, acl, ok := h.loadHistogram(c)
	if !ok {
		return
	}
	if !acl.Permits(middleware.CurrentUser(c), domain.AccessAdmin) {
		respondForbidden(c, "Admin access denied")
		return
	}

	c.JSON(http.StatusOK, acl)
}

// SetHistogramAccess replaces the ACL of a record
func (h *handler) SetHistogramAccess(c *gin.Context) {
	record, acl, ok := h.loadHistogram(c)
	if !ok {
		return
	}
	if !acl.Permits(middleware.CurrentUser(c), domain.AccessAdmin) {
		respondForbidden(c, "Admin access denied")
		return
	}

	var newACL domain.ACL
	if err := c.ShouldBindJSON(&newACL); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid access document: %v", err))
		return
	}
	raw, err := json.Marshal(newACL)
	if err != nil {
		respondInternalError(c, "Failed to encode access document", err.Error())
		return
	}

	if err := h.store.SetHistogramAccess(c.Request.Context(), record.ID, raw); err != nil {
		respondInternalError(c, "Failed to update access", err.Error())
		return
	}

	c.JSON(http.StatusOK, newACL)
}

// GetSettings returns the service-wide histogram settings
func (h *handler) GetSettings(c *gin.Context) {
	bins, err := h.store.DefaultBins(c.Request.Context())
	if err != nil {
		respondInternalError(c, "Failed to read settings", err.Error())
		return
	}

	c.JSON(http.StatusOK, SettingsDTO{DefaultBins: bins})
}

// SetSettings updates the service-wide histogram settings
func (h *handler) SetSettings(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil || !user.Admin {
		respondForbidden(c, "Admin access required")
		return
	}

	var req SettingsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := h.store.SetDefaultBins(c.Request.Context(), req.DefaultBins); err != nil {
		respondDomainError(c, err, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, req)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "histogramd-api",
	})
}

// loadHistogram fetches the record of the :id path parameter together
// with its parsed ACL. ok is false when a response was already written.
func (h *handler) loadHistogram(c *gin.Context) (*schema.Histogram, domain.ACL, bool) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Histogram ID is required")
		return nil, domain.ACL{}, false
	}

	record, err := h.store.GetHistogram(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, "Failed to get histogram", err.Error())
		return nil, domain.ACL{}, false
	}
	if record == nil {
		respondNotFound(c, "Histogram not found")
		return nil, domain.ACL{}, false
	}

	acl, err := domain.ParseACL(record.Access)
	if err != nil {
		respondInternalError(c, "Failed to parse record access", err.Error())
		return nil, domain.ACL{}, false
	}

	return record, acl, true
}
