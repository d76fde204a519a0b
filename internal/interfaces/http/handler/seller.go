package handler

import (
	"github.com/gin-gonic/gin"
	crmapp "github.com/verkoop/backend/internal/application/crm"
	"github.com/verkoop/backend/internal/domain/shared"
	"github.com/verkoop/backend/internal/interfaces/http/dto"
)

// SellerHandler handles seller reference endpoints
type SellerHandler struct {
	BaseHandler
	sellerService *crmapp.SellerService
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(sellerService *crmapp.SellerService) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
	}
}

// List returns a paginated seller listing
func (h *SellerHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.bindError(c, err)
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	page, err := h.sellerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByCode returns a single seller by code
func (h *SellerHandler) GetByCode(c *gin.Context) {
	var req dto.CodeRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid seller code")
		return
	}

	resp, err := h.sellerService.GetByCode(c.Request.Context(), req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers seller routes
func (h *SellerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sellers := rg.Group("/sellers")
	{
		sellers.GET("", h.List)
		sellers.GET("/:code", h.GetByCode)
	}
}
