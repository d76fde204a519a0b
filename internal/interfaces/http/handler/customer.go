package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	crmapp "github.com/verkoop/backend/internal/application/crm"
	"github.com/verkoop/backend/internal/domain/shared"
	"github.com/verkoop/backend/internal/interfaces/http/dto"
)

// CustomerHandler handles customer shadow API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService   *crmapp.CustomerService
	assignmentService *crmapp.AssignmentService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(
	customerService *crmapp.CustomerService,
	assignmentService *crmapp.AssignmentService,
) *CustomerHandler {
	return &CustomerHandler{
		customerService:   customerService,
		assignmentService: assignmentService,
	}
}

// customerListRequest extends the common list parameters with customer filters
type customerListRequest struct {
	dto.ListRequest
	SellerID string `form:"seller_id" binding:"omitempty,uuid"`
	IsActive *bool  `form:"is_active"`
	Source   string `form:"source"`
}

// List returns a paginated customer listing
func (h *CustomerHandler) List(c *gin.Context) {
	req := customerListRequest{ListRequest: dto.DefaultListRequest()}
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
		Filters:  map[string]interface{}{},
	}
	if req.SellerID != "" {
		filter.Filters["seller_id"] = req.SellerID
	}
	if req.IsActive != nil {
		filter.Filters["is_active"] = *req.IsActive
	}
	if req.Source != "" {
		filter.Filters["source"] = req.Source
	}

	page, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single customer shadow with its current seller
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.bindCustomerID(c)
	if !ok {
		return
	}

	resp, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Assign binds a customer to a seller by id or code. The acting subject is
// taken from the JWT claims and recorded on the assignment.
func (h *CustomerHandler) Assign(c *gin.Context) {
	id, ok := h.bindCustomerID(c)
	if !ok {
		return
	}

	var req crmapp.AssignSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	assignedBy, err := getUserID(c)
	if err != nil {
		assignedBy = "anonymous"
	}

	resp, err := h.assignmentService.Assign(c.Request.Context(), id, req, assignedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// History returns the customer's assignment history, oldest first
func (h *CustomerHandler) History(c *gin.Context) {
	id, ok := h.bindCustomerID(c)
	if !ok {
		return
	}

	items, err := h.assignmentService.History(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// bindCustomerID parses the :id path parameter
func (h *CustomerHandler) bindCustomerID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/admin/customers")
	{
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.GET("/:id/assignments", h.History)
		customers.POST("/:id/assign", h.Assign)
	}
}
