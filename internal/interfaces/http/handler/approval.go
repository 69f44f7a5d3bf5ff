package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	adminapp "github.com/marketplace/backend/internal/application/admin"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ApprovalHandler handles the admin approval workflow over products and
// companies
type ApprovalHandler struct {
	BaseHandler
	approvalService *adminapp.ApprovalService
}

// NewApprovalHandler creates a new ApprovalHandler
func NewApprovalHandler(approvalService *adminapp.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
	}
}

// approvalListQuery binds the review queue query parameters
type approvalListQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=all pending approved"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (q approvalListQuery) status() string {
	if q.Status == "" {
		return adminapp.StatusAll
	}
	return q.Status
}

func (q approvalListQuery) filter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = q.Search
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	return filter
}

// SetProductApproval godoc
// @Summary      Approve or revoke a product listing
// @Description  Sets the product's approval flag. Setting the current value again is a no-op, so retries are safe.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body adminapp.SetApprovalRequest true "Approval decision"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products/{id}/approval [put]
func (h *ApprovalHandler) SetProductApproval(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req adminapp.SetApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.approvalService.SetProductApproval(c.Request.Context(), productID, *req.IsApproved)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// SetCompanyApproval godoc
// @Summary      Approve or revoke a company
// @Description  Sets the company's approval flag. Revoking a company hides its products from buyers without touching their own approval flags.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Param        request body adminapp.SetApprovalRequest true "Approval decision"
// @Success      200 {object} dto.Response{data=merchantapp.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/companies/{id}/approval [put]
func (h *ApprovalHandler) SetCompanyApproval(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID format")
		return
	}

	var req adminapp.SetApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.approvalService.SetCompanyApproval(c.Request.Context(), companyID, *req.IsApproved)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, company)
}

// ListProducts godoc
// @Summary      List products by approval status
// @Description  Returns the product review queue filtered by status: all, pending or approved.
// @Tags         admin
// @Produce      json
// @Param        status query string false "Approval status" Enums(all, pending, approved) default(all)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products [get]
func (h *ApprovalHandler) ListProducts(c *gin.Context) {
	var query approvalListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.approvalService.ListProducts(c.Request.Context(), query.status(), query.filter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListCompanies godoc
// @Summary      List companies by approval status
// @Description  Returns the company review queue filtered by status: all, pending or approved.
// @Tags         admin
// @Produce      json
// @Param        status query string false "Approval status" Enums(all, pending, approved) default(all)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]merchantapp.CompanyResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/companies [get]
func (h *ApprovalHandler) ListCompanies(c *gin.Context) {
	var query approvalListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.approvalService.ListCompanies(c.Request.Context(), query.status(), query.filter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
