package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	merchantapp "github.com/marketplace/backend/internal/application/merchant"
	"github.com/marketplace/backend/internal/domain/shared"
)

// CompanyHandler handles company API endpoints for the public storefront
// and the merchant console
type CompanyHandler struct {
	BaseHandler
	companyService *merchantapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *merchantapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// List godoc
// @Summary      List companies
// @Description  Returns approved companies.
// @Tags         companies
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]merchantapp.CompanyResponse,meta=dto.Meta}
// @Router       /catalog/companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	filter := shared.DefaultFilter()
	var query struct {
		Search   string `form:"search"`
		Page     int    `form:"page" binding:"omitempty,min=1"`
		PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.Search = query.Search
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}

	result, err := h.companyService.ListApproved(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get company by ID
// @Description  Returns the company if it has been approved.
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} dto.Response{data=merchantapp.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID format")
		return
	}

	company, err := h.companyService.Get(c.Request.Context(), companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, company)
}

// Upsert godoc
// @Summary      Create or update the merchant's company profile
// @Description  Each merchant has one company. Creating resets nothing; updating an approved company keeps its approval.
// @Tags         merchant
// @Accept       json
// @Produce      json
// @Param        request body merchantapp.UpsertCompanyRequest true "Company profile"
// @Success      200 {object} dto.Response{data=merchantapp.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /merchant/company [put]
func (h *CompanyHandler) Upsert(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req merchantapp.UpsertCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, company)
}

// GetMine godoc
// @Summary      Get the merchant's own company profile
// @Tags         merchant
// @Produce      json
// @Success      200 {object} dto.Response{data=merchantapp.CompanyResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /merchant/company [get]
func (h *CompanyHandler) GetMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	company, err := h.companyService.GetMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, company)
}
