package handler

import (
	"github.com/gin-gonic/gin"
	crmapp "github.com/verkoop/backend/internal/application/crm"
)

// SyncHandler handles customer synchronization endpoints
type SyncHandler struct {
	BaseHandler
	syncService *crmapp.SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *crmapp.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// Push receives a single customer snapshot and reconciles it
func (h *SyncHandler) Push(c *gin.Context) {
	var payload crmapp.CustomerSyncPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.bindError(c, err)
		return
	}

	resp, err := h.syncService.SyncCustomer(c.Request.Context(), payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// PullListing triggers a pull from the registry and returns the reconciled
// customer list
func (h *SyncHandler) PullListing(c *gin.Context) {
	resp, err := h.syncService.PullFromRegistry(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp.Customers)
}

// PullSummary triggers a pull from the registry and returns the run summary
// along with the reconciled list
func (h *SyncHandler) PullSummary(c *gin.Context) {
	resp, err := h.syncService.PullFromRegistry(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/customers/sync", h.Push)
	rg.GET("/customers/sync-from-website", h.PullListing)
	rg.POST("/customers/sync-from-website", h.PullSummary)
}
