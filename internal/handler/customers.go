package handler

import (
	"net/http"

	"github.com/Pessima-byte/Estommy-sub002/internal/apierror"
	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomersHandler struct {
	svc    service.CustomerService
	ledger service.LedgerService
}

func NewCustomersHandler(svc service.CustomerService, ledger service.LedgerService) *CustomersHandler {
	return &CustomersHandler{svc: svc, ledger: ledger}
}

func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCustomer(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CustomersHandler) List(c *gin.Context) {
	var filter dto.CustomerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list customers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateCustomer(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCustomer(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CustomersHandler) Reactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ReactivateCustomer(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reconcile godoc
// @Summary      Audit a customer's debt ledger (admin)
// @Description  Recomputes the outstanding balance over non-cleared credits and compares it to the stored total. With fix=true, drift is corrected.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string               true "Customer UUID"
// @Param        body body dto.ReconcileRequest true "Audit options"
// @Success      200  {object} dto.ReconcileResult
// @Failure      404  {object} apierror.APIError
// @Router       /v1/customers/{id}/reconcile [post]
func (h *CustomersHandler) Reconcile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	// Body is optional; Fix defaults to a dry-run audit.
	var req dto.ReconcileRequest
	_ = c.ShouldBindJSON(&req)
	resp, err := h.ledger.Reconcile(c.Request.Context(), id, req.Fix)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
