package v1

import (
	"net/http"

	"talent-workflow-api/internal/delivery/http/response"
	"talent-workflow-api/internal/domain"
	"talent-workflow-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// SkillEditRequest may combine several intents. They are applied in the
// order skills, toggle_path, add_skill, remove_path, remove_skill.
type SkillEditRequest struct {
	Skills      *domain.SkillsDocument `json:"skills,omitempty"`
	TogglePath  *domain.SkillPath      `json:"toggle_path,omitempty"`
	AddSkill    *string                `json:"add_skill,omitempty" example:"Kubernetes"`
	RemovePath  *domain.SkillPath      `json:"remove_path,omitempty"`
	RemoveSkill *string                `json:"remove_skill,omitempty"`
}

func (r SkillEditRequest) toEdit() domain.SkillEdit {
	return domain.SkillEdit{
		Replace:     r.Skills,
		Toggle:      r.TogglePath,
		Add:         r.AddSkill,
		RemovePath:  r.RemovePath,
		RemoveSkill: r.RemoveSkill,
	}
}

// EditSkills godoc
// @Summary      Edit a job's skills
// @Description  Replace, toggle, add or remove skills in one write. The JD agent is not called.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Job ID"
// @Param        body  body      SkillEditRequest  true  "Edits"
// @Success      200   {object}  domain.Job
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /jobs/{id}/skills [put]
// @Security     CookieAuth
func (h *JobHandler) EditSkills(c *gin.Context) {
	var req SkillEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid JSON body"))
		return
	}

	job, err := h.skillUC.EditSkills(c.Request.Context(), c.Param("id"), req.toEdit())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, job)
}
