package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"talent-workflow-api/internal/delivery/http/response"
	"talent-workflow-api/internal/domain"
	"talent-workflow-api/pkg/apperror"
	"talent-workflow-api/pkg/document"
	"talent-workflow-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CandidateHandler struct {
	candidateUC    domain.CandidateUsecase
	secLog         *security.SecurityLogger
	maxUploadBytes int64
	log            *zap.Logger
}

type CandidateHandlerDeps struct {
	CandidateUC    domain.CandidateUsecase
	SecLog         *security.SecurityLogger
	MaxUploadBytes int64
	Log            *zap.Logger
	// Applied to routes that invoke the resume agent.
	UploadLimit gin.HandlerFunc
}

func NewCandidateHandler(api *gin.RouterGroup, deps CandidateHandlerDeps) {
	handler := &CandidateHandler{
		candidateUC:    deps.CandidateUC,
		secLog:         deps.SecLog,
		maxUploadBytes: deps.MaxUploadBytes,
		log:            deps.Log,
	}
	if handler.maxUploadBytes <= 0 {
		handler.maxUploadBytes = 5 << 20
	}

	limit := deps.UploadLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	jobCandidates := api.Group("/jobs/:id/candidates")
	{
		jobCandidates.GET("", handler.List)
		jobCandidates.POST("", limit, handler.Create)
		jobCandidates.POST("/upload", limit, handler.Upload)
		jobCandidates.GET("/export", handler.Export)
	}

	candidates := api.Group("/candidates")
	{
		candidates.GET("/:id", handler.GetDetails)
		candidates.PUT("/:id", limit, handler.Update)
	}
}

// List godoc
// @Summary      List candidates of a job
// @Description  Oldest first.
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.List[domain.Candidate]
// @Router       /jobs/{id}/candidates [get]
// @Security     CookieAuth
func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.candidateUC.ListCandidates(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if candidates == nil {
		candidates = []domain.Candidate{}
	}
	response.Success(c, http.StatusOK, response.List[domain.Candidate]{Items: candidates})
}

// Create godoc
// @Summary      Submit a resume
// @Description  Stores the candidate as processing, then evaluates the resume against the job.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Job ID"
// @Param        body  body      domain.CandidateInput  true  "Resume"
// @Success      201   {object}  response.Created
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Failure      502   {object}  response.ErrorBody
// @Router       /jobs/{id}/candidates [post]
// @Security     CookieAuth
func (h *CandidateHandler) Create(c *gin.Context) {
	var req domain.CandidateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid JSON body"))
		return
	}

	candidate, err := h.candidateUC.CreateCandidate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, response.Created{ID: candidate.ID})
}

// Upload godoc
// @Summary      Upload a resume file
// @Description  Accepts PDF, DOC, DOCX, ODT, RTF or TXT. The text is extracted and submitted like a JSON resume.
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Job ID"
// @Param        file  formData  file    true  "Resume file"
// @Success      201   {object}  response.Created
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Failure      502   {object}  response.ErrorBody
// @Router       /jobs/{id}/candidates/upload [post]
// @Security     CookieAuth
func (h *CandidateHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.rejectUpload(c, "", "request too large")
			c.Error(apperror.BadRequest(fmt.Sprintf("File exceeds %d MB", h.maxUploadBytes>>20)))
			return
		}
		c.Error(apperror.BadRequest("File is required"))
		return
	}
	if err := security.ValidateFileExtension(fileHeader.Filename); err != nil {
		h.rejectUpload(c, fileHeader.Filename, err.Error())
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		h.rejectUpload(c, fileHeader.Filename, "file too large")
		c.Error(apperror.BadRequest(fmt.Sprintf("File exceeds %d MB", h.maxUploadBytes>>20)))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Failed to read file"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.Error(apperror.BadRequest("Failed to read file"))
		return
	}

	check := security.ValidateResumeFile(fileHeader.Filename, data)
	if !check.Valid {
		h.rejectUpload(c, fileHeader.Filename, check.Error)
		c.Error(apperror.BadRequest(check.Error))
		return
	}

	text, err := document.ExtractText(fileHeader.Filename, data)
	if err != nil {
		h.log.Info("resume text extraction failed",
			zap.String("filename", fileHeader.Filename),
			zap.String("mime", check.DetectedMIME),
			zap.Error(err),
		)
		if errors.Is(err, document.ErrEmptyDocument) {
			c.Error(apperror.BadRequest("No text could be extracted from the file"))
			return
		}
		c.Error(apperror.BadRequest("Failed to read document"))
		return
	}

	candidate, err := h.candidateUC.CreateCandidate(c.Request.Context(), c.Param("id"), domain.CandidateInput{ResumeText: text})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, response.Created{ID: candidate.ID})
}

// Export godoc
// @Summary      Export candidates
// @Description  Downloads every candidate of the job as an xlsx workbook.
// @Tags         candidates
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path      string  true  "Job ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.ErrorBody
// @Router       /jobs/{id}/candidates/export [get]
// @Security     CookieAuth
func (h *CandidateHandler) Export(c *gin.Context) {
	data, filename, err := h.candidateUC.ExportCandidates(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, xlsxContentType, data)
}

// GetDetails godoc
// @Summary      Get a candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  domain.Candidate
// @Failure      404  {object}  response.ErrorBody
// @Router       /candidates/{id} [get]
// @Security     CookieAuth
func (h *CandidateHandler) GetDetails(c *gin.Context) {
	candidate, err := h.candidateUC.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, candidate)
}

// Update godoc
// @Summary      Replace a resume
// @Description  Marks the candidate processing, stores the new resume text and re-evaluates it.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Candidate ID"
// @Param        body  body      domain.CandidateInput  true  "Resume"
// @Success      200   {object}  domain.Candidate
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Failure      502   {object}  response.ErrorBody
// @Router       /candidates/{id} [put]
// @Security     CookieAuth
func (h *CandidateHandler) Update(c *gin.Context) {
	var req domain.CandidateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid JSON body"))
		return
	}

	candidate, err := h.candidateUC.ReevaluateCandidate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, candidate)
}

func (h *CandidateHandler) rejectUpload(c *gin.Context, filename, reason string) {
	h.secLog.Log(c.Request.Context(), security.SecurityEvent{
		Event:     security.EventUploadRejected,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: response.RequestID(c),
		Details: map[string]interface{}{
			"filename": filename,
			"reason":   reason,
		},
	})
}
