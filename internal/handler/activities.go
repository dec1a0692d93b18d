package handler

import (
	"net/http"

	"github.com/Pessima-byte/Estommy-sub002/internal/apierror"
	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type ActivitiesHandler struct{ svc service.ActivityService }

func NewActivitiesHandler(svc service.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{svc: svc}
}

// List godoc
// @Summary      List activity records
// @Description  Paginated audit trail, newest first. Filter by entity, user, or action.
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        entity_type query string false "Product | Customer | Sale | Credit | Category | User"
// @Param        entity_id   query string false "Entity UUID"
// @Param        user_id     query string false "User UUID"
// @Param        action      query string false "CREATE | UPDATE | DELETE"
// @Success      200         {object} dto.ActivityListResponse
// @Router       /v1/activities [get]
func (h *ActivitiesHandler) List(c *gin.Context) {
	var filter dto.ActivityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list activities"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
