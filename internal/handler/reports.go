package handler

import (
	"net/http"

	"github.com/Pessima-byte/Estommy-sub002/internal/apierror"
	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ sales service.SaleService }

func NewReportsHandler(sales service.SaleService) *ReportsHandler {
	return &ReportsHandler{sales: sales}
}

// Profit godoc
// @Summary      Profit report
// @Description  Aggregates revenue, cost, and profit over a date range using each sale's cost snapshot. Defaults to the current month.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "YYYY-MM-DD inclusive (default: first of month)"
// @Param        to   query string false "YYYY-MM-DD exclusive (default: tomorrow)"
// @Success      200  {object} dto.ProfitReportResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reports/profit [get]
func (h *ReportsHandler) Profit(c *gin.Context) {
	var filter dto.ProfitReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.sales.ProfitReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
