package v1

import (
	"fmt"
	"net/http"

	"jobflix-backend/internal/delivery/http/response"
	"jobflix-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := r.Group("/applications")
	{
		applications.POST("", handler.Apply)
		applications.GET("/:id", handler.GetDetail)
		applications.PATCH("/:id", handler.Update)
	}

	r.GET("/users/:id/applications", handler.ListByUser)
	r.GET("/jobs/:id/applications", handler.ListByJob)
	r.GET("/jobs/:id/applications/export", handler.Export)
}

type ApplyRequest struct {
	UserID      int64   `json:"userId" binding:"required,gt=0"`
	JobID       int64   `json:"jobId" binding:"required,gt=0"`
	Status      string  `json:"status" binding:"omitempty,application_status"`
	CoverLetter *string `json:"coverLetter" binding:"omitempty,max=5000"`
}

type UpdateApplicationRequest struct {
	Status      *string `json:"status" binding:"omitempty,application_status"`
	CoverLetter *string `json:"coverLetter" binding:"omitempty,max=5000"`
}

// Apply godoc
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), domain.ApplicationInput{
		UserID:      req.UserID,
		JobID:       req.JobID,
		Status:      req.Status,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// GetApplicationDetail godoc
// @Summary      Get application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) GetDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	app, err := h.applicationUC.GetApplication(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// UpdateApplication godoc
// @Summary      Update application status or cover letter
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "Application ID"
// @Param        body  body      UpdateApplicationRequest  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id} [patch]
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationUC.UpdateApplication(c.Request.Context(), id, domain.ApplicationPatch{
		Status:      req.Status,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", app)
}

// ListUserApplications godoc
// @Summary      Applications of a user
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /users/{id}/applications [get]
func (h *ApplicationHandler) ListByUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	apps, err := h.applicationUC.ListByUser(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ListJobApplications godoc
// @Summary      Applications received by a job
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applications [get]
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	apps, err := h.applicationUC.ListByJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ExportApplications godoc
// @Summary      Export a job's applications
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param        id      path   int     true   "Job ID"
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200     {file}  file
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /jobs/{id}/applications/export [get]
func (h *ApplicationHandler) Export(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	export, err := h.applicationUC.ExportByJob(c.Request.Context(), id, c.DefaultQuery("format", "xlsx"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
