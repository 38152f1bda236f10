package v1

import (
	"net/http"
	"strings"
	"time"

	"jobflix-backend/internal/delivery/http/response"
	"jobflix-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(r *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := r.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)
		jobs.POST("", handler.Create)
		jobs.PATCH("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
	}
}

type CreateJobRequest struct {
	Title        string     `json:"title" binding:"required,max=200"`
	Description  string     `json:"description" binding:"required"`
	Company      string     `json:"company" binding:"required_without=CompanyID,max=200"`
	CompanyID    *int64     `json:"companyId" binding:"omitempty,gt=0"`
	Location     string     `json:"location" binding:"required,max=200"`
	Type         string     `json:"type" binding:"required,job_type"`
	Level        string     `json:"level" binding:"required,job_level"`
	Category     string     `json:"category" binding:"required,max=100"`
	SalaryMin    *int       `json:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax    *int       `json:"salaryMax" binding:"omitempty,gte=0"`
	Skills       []string   `json:"skills"`
	Requirements []string   `json:"requirements"`
	Benefits     []string   `json:"benefits"`
	IsActive     *bool      `json:"isActive"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

type UpdateJobRequest struct {
	Title        *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string    `json:"description" binding:"omitempty,min=1"`
	Company      *string    `json:"company" binding:"omitempty,min=1,max=200"`
	CompanyID    *int64     `json:"companyId" binding:"omitempty,gt=0"`
	Location     *string    `json:"location" binding:"omitempty,min=1,max=200"`
	Type         *string    `json:"type" binding:"omitempty,job_type"`
	Level        *string    `json:"level" binding:"omitempty,job_level"`
	Category     *string    `json:"category" binding:"omitempty,min=1,max=100"`
	SalaryMin    *int       `json:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax    *int       `json:"salaryMax" binding:"omitempty,gte=0"`
	Skills       []string   `json:"skills"`
	Requirements []string   `json:"requirements"`
	Benefits     []string   `json:"benefits"`
	IsActive     *bool      `json:"isActive"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Active jobs matching every supplied filter, newest first
// @Tags         jobs
// @Produce      json
// @Param        search     query     string  false  "Substring of title, description, company or a skill"
// @Param        location   query     string  false  "Substring of location"
// @Param        type       query     string  false  "full-time | part-time | contract | remote"
// @Param        level      query     string  false  "entry | mid | senior | executive"
// @Param        category   query     string  false  "Exact category"
// @Param        salaryMin  query     int     false  "Jobs whose salaryMax reaches this"
// @Param        salaryMax  query     int     false  "Jobs whose salaryMin is within this"
// @Success      200        {object}  response.Response{data=[]domain.Job}
// @Failure      400        {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	salaryMin, err := queryInt(c, "salaryMin")
	if err != nil {
		c.Error(err)
		return
	}
	salaryMax, err := queryInt(c, "salaryMax")
	if err != nil {
		c.Error(err)
		return
	}

	filter := domain.JobFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		Location:  strings.TrimSpace(c.Query("location")),
		Type:      c.Query("type"),
		Level:     c.Query("level"),
		Category:  c.Query("category"),
		SalaryMin: salaryMin,
		SalaryMax: salaryMax,
	}

	jobs, err := h.jobUC.ListJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// GetJobDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// CreateJob godoc
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Router       /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), domain.JobInput{
		Title:        req.Title,
		Description:  req.Description,
		Company:      strings.TrimSpace(req.Company),
		CompanyID:    req.CompanyID,
		Location:     req.Location,
		Type:         req.Type,
		Level:        req.Level,
		Category:     req.Category,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Skills:       req.Skills,
		Requirements: req.Requirements,
		Benefits:     req.Benefits,
		IsActive:     req.IsActive,
		ExpiresAt:    req.ExpiresAt,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Partial update; omitted fields are left unchanged
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int               true  "Job ID"
// @Param        job  body      UpdateJobRequest  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [patch]
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), id, domain.JobPatch{
		Title:        req.Title,
		Description:  req.Description,
		Company:      req.Company,
		CompanyID:    req.CompanyID,
		Location:     req.Location,
		Type:         req.Type,
		Level:        req.Level,
		Category:     req.Category,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Skills:       req.Skills,
		Requirements: req.Requirements,
		Benefits:     req.Benefits,
		IsActive:     req.IsActive,
		ExpiresAt:    req.ExpiresAt,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted", nil)
}
