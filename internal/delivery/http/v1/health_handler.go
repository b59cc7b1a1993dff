package v1

import (
	"net/http"

	"talent-workflow-api/internal/delivery/http/response"
	"talent-workflow-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(api *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	api.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health check
// @Description  Always 200; dependency state is reported in the body.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status, _ := h.healthUC.Check(c.Request.Context())
	response.Success(c, http.StatusOK, status)
}
