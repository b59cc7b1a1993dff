package v1

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"talent-workflow-api/internal/delivery/http/response"
	"talent-workflow-api/internal/domain"
	"talent-workflow-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC   domain.JobUsecase
	skillUC domain.SkillUsecase
}

func NewJobHandler(api *gin.RouterGroup, jobUC domain.JobUsecase, skillUC domain.SkillUsecase) {
	handler := &JobHandler{jobUC: jobUC, skillUC: skillUC}

	jobs := api.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.POST("", handler.Create)
		jobs.GET("/:id", handler.GetDetails)
		jobs.PUT("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
		jobs.PUT("/:id/skills", handler.EditSkills)
	}
}

// JobRequest carries the editable fields of a job. years_of_experience
// may arrive as a number or a numeric string (form posts send strings).
type JobRequest struct {
	Title             string                `json:"title" example:"Senior Backend Engineer"`
	YearsOfExperience json.Number           `json:"years_of_experience" swaggertype:"integer" example:"5"`
	SeniorityLevel    domain.SeniorityLevel `json:"seniority_level" example:"senior"`
	JDText            string                `json:"jd_text"`
}

func (r JobRequest) toInput() (domain.JobInput, error) {
	raw := strings.TrimSpace(r.YearsOfExperience.String())
	if raw == "" {
		return domain.JobInput{}, apperror.Validation("Validation failed", []string{"years_of_experience: is required"})
	}
	years, err := strconv.Atoi(raw)
	if err != nil {
		return domain.JobInput{}, apperror.Validation("Validation failed", []string{"years_of_experience: must be an integer"})
	}
	return domain.JobInput{
		Title:             r.Title,
		YearsOfExperience: years,
		SeniorityLevel:    r.SeniorityLevel,
		JDText:            r.JDText,
	}, nil
}

func bindJobInput(c *gin.Context) (domain.JobInput, bool) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid JSON body"))
		return domain.JobInput{}, false
	}
	in, err := req.toInput()
	if err != nil {
		c.Error(err)
		return domain.JobInput{}, false
	}
	return in, true
}

// List godoc
// @Summary      List jobs
// @Description  Newest first.
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.List[domain.Job]
// @Failure      401  {object}  response.ErrorBody
// @Router       /jobs [get]
// @Security     CookieAuth
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	response.Success(c, http.StatusOK, response.List[domain.Job]{Items: jobs})
}

// Create godoc
// @Summary      Create a job
// @Description  Stores the job then asks the JD agent to derive skills, education and responsibilities.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      JobRequest  true  "Job"
// @Success      201   {object}  response.Created
// @Failure      400   {object}  response.ErrorBody
// @Failure      502   {object}  response.ErrorBody
// @Router       /jobs [post]
// @Security     CookieAuth
func (h *JobHandler) Create(c *gin.Context) {
	in, ok := bindJobInput(c)
	if !ok {
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, response.Created{ID: job.ID})
}

// GetDetails godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  response.ErrorBody
// @Router       /jobs/{id} [get]
// @Security     CookieAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, job)
}

// Update godoc
// @Summary      Update a job
// @Description  Saves the editable fields, re-runs the JD agent and stores the merged record.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string      true  "Job ID"
// @Param        body  body      JobRequest  true  "Job"
// @Success      200   {object}  domain.Job
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Failure      502   {object}  response.ErrorBody
// @Router       /jobs/{id} [put]
// @Security     CookieAuth
func (h *JobHandler) Update(c *gin.Context) {
	in, ok := bindJobInput(c)
	if !ok {
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, job)
}

// Delete godoc
// @Summary      Delete a job
// @Description  Idempotent. Candidates of the job are kept.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.OK
// @Router       /jobs/{id} [delete]
// @Security     CookieAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, response.OK{OK: true})
}
