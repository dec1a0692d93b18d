package handler

import (
	"net/http"

	"github.com/Pessima-byte/Estommy-sub002/internal/apierror"
	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type CreditsHandler struct{ svc service.CreditService }

func NewCreditsHandler(svc service.CreditService) *CreditsHandler {
	return &CreditsHandler{svc: svc}
}

// Record godoc
// @Summary      Record a credit
// @Description  Extends credit to a customer atomically: creates the credit, consumes stock for each line item, records the Sale rows, and bumps the debt ledger by the outstanding balance. A stock shortfall on any line aborts everything.
// @Tags         credits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordCreditRequest true "Credit details with optional line items"
// @Success      201  {object} dto.CreditResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/credits [post]
func (h *CreditsHandler) Record(c *gin.Context) {
	var req dto.RecordCreditRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordCredit(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CreditsHandler) List(c *gin.Context) {
	var filter dto.CreditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListCredits(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list credits"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreditsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetCredit(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a credit
// @Description  Patches credit fields. The customer's debt moves by the change in outstanding balance, in the same transaction.
// @Tags         credits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "Credit UUID"
// @Param        body body dto.UpdateCreditRequest true "Fields to patch"
// @Success      200  {object} dto.CreditResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/credits/{id} [put]
func (h *CreditsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateCreditRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateCredit(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a credit
// @Description  Removes the credit and reverses its outstanding balance from the customer's debt. Line-item stock is NOT restored.
// @Tags         credits
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Credit UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/credits/{id} [delete]
func (h *CreditsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCredit(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
