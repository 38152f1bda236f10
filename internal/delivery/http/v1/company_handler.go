package v1

import (
	"net/http"

	"jobflix-backend/internal/delivery/http/response"
	"jobflix-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
	catalogUC domain.CatalogUsecase
}

func NewCompanyHandler(r *gin.RouterGroup, companyUC domain.CompanyUsecase, catalogUC domain.CatalogUsecase) {
	handler := &CompanyHandler{companyUC: companyUC, catalogUC: catalogUC}

	companies := r.Group("/companies")
	{
		companies.GET("", handler.List)
		companies.GET("/featured", handler.Featured)
		companies.GET("/:id", handler.GetDetails)
		companies.GET("/:id/jobs", handler.ListJobs)
		companies.POST("", handler.Create)
		companies.PATCH("/:id", handler.Update)
	}

	r.GET("/categories", handler.Categories)
}

type CreateCompanyRequest struct {
	Name        string  `json:"name" binding:"required,max=200,valid_name"`
	Description string  `json:"description" binding:"required"`
	Industry    string  `json:"industry" binding:"required,max=100"`
	Size        string  `json:"size" binding:"required,company_size"`
	Logo        *string `json:"logo" binding:"omitempty,url"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Location    string  `json:"location" binding:"required,max=200"`
	Founded     *int    `json:"founded" binding:"omitempty,gte=1800,max_current_year"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200,valid_name"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	Industry    *string `json:"industry" binding:"omitempty,min=1,max=100"`
	Size        *string `json:"size" binding:"omitempty,company_size"`
	Logo        *string `json:"logo" binding:"omitempty,url"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Location    *string `json:"location" binding:"omitempty,min=1,max=200"`
	Founded     *int    `json:"founded" binding:"omitempty,gte=1800,max_current_year"`
}

// ListCompanies godoc
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Company}
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyUC.ListCompanies(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Companies retrieved", companies)
}

// FeaturedCompanies godoc
// @Summary      Featured companies
// @Description  The first companies by id, as shown on the home page
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Company}
// @Router       /companies/featured [get]
func (h *CompanyHandler) Featured(c *gin.Context) {
	companies, err := h.catalogUC.FeaturedCompanies(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Featured companies retrieved", companies)
}

// GetCompany godoc
// @Summary      Get company details
// @Tags         companies
// @Produce      json
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [get]
func (h *CompanyHandler) GetDetails(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	company, err := h.companyUC.GetCompany(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company retrieved", company)
}

// ListCompanyJobs godoc
// @Summary      Active jobs of a company
// @Tags         companies
// @Produce      json
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /companies/{id}/jobs [get]
func (h *CompanyHandler) ListJobs(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	jobs, err := h.companyUC.ListCompanyJobs(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company jobs retrieved", jobs)
}

// CreateCompany godoc
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company  body      CreateCompanyRequest  true  "Company JSON"
// @Success      201      {object}  response.Response{data=domain.Company}
// @Failure      400      {object}  response.Response
// @Router       /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyUC.CreateCompany(c.Request.Context(), domain.CompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
		Size:        req.Size,
		Logo:        req.Logo,
		Website:     req.Website,
		Location:    req.Location,
		Founded:     req.Founded,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Company created", company)
}

// UpdateCompany godoc
// @Summary      Update a company
// @Description  Jobs keep the company name they were posted with
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Company ID"
// @Param        company  body      UpdateCompanyRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=domain.Company}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /companies/{id} [patch]
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyUC.UpdateCompany(c.Request.Context(), id, domain.CompanyPatch{
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
		Size:        req.Size,
		Logo:        req.Logo,
		Website:     req.Website,
		Location:    req.Location,
		Founded:     req.Founded,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company updated", company)
}

// Categories godoc
// @Summary      Job categories
// @Description  Active job count per category with its display icon
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobCategory}
// @Router       /categories [get]
func (h *CompanyHandler) Categories(c *gin.Context) {
	categories, err := h.catalogUC.Categories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Categories retrieved", categories)
}
