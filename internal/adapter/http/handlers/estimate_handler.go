package handlers

import (
	"errors"
	"fmt"
	"net/http"
	request "orcafacil/internal/adapter/http/dto/request"
	response "orcafacil/internal/adapter/http/dto/response"
	"orcafacil/internal/domain/entities"
	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/usecase"
	"orcafacil/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
)

// EstimateHandler handles HTTP requests for estimates (orçamentos).
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
	logger  *logrus.Logger
}

func NewEstimateHandler(uc usecase.IEstimateUseCase, logger *logrus.Logger) *EstimateHandler {
	return &EstimateHandler{usecase: uc, logger: logging.OrDiscard(logger)}
}

// ListEstimates returns the estimate list, optionally filtered by ?q=.
//
// @Summary     List estimates
// @Tags        estimates
// @Param       q query string false "Search on number, title or client name"
// @Success     200 {array} response.EstimateSummaryResponse
// @Router      /estimates [get]
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	list := h.usecase.List(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, response.FromEstimates(list))
}

// NewEstimate returns a blank draft. Nothing is persisted until it is saved.
//
// @Summary     Blank estimate draft
// @Tags        estimates
// @Success     200 {object} response.EstimateResponse
// @Router      /estimates/new [get]
func (h *EstimateHandler) NewEstimate(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromEstimate(h.usecase.NewDraft(c.Request.Context())))
}

// @Summary     Get an estimate
// @Tags        estimates
// @Param       id path string true "Estimate ID"
// @Success     200 {object} response.EstimateResponse
// @Failure     404 {object} pkg.HTTPError
// @Router      /estimates/{id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	e, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

// CreateEstimate saves the document in the body. A body carrying an existing id replaces it.
//
// @Summary     Save an estimate
// @Tags        estimates
// @Param       payload body request.EstimateRequest true "Estimate"
// @Success     201 {object} response.EstimateResponse
// @Failure     400 {object} pkg.HTTPError
// @Router      /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	h.save(c, "", http.StatusCreated)
}

// @Summary     Replace an estimate
// @Tags        estimates
// @Param       id path string true "Estimate ID"
// @Param       payload body request.EstimateRequest true "Estimate"
// @Success     200 {object} response.EstimateResponse
// @Failure     400 {object} pkg.HTTPError
// @Router      /estimates/{id} [put]
func (h *EstimateHandler) UpdateEstimate(c *gin.Context) {
	h.save(c, c.Param("id"), http.StatusOK)
}

func (h *EstimateHandler) save(c *gin.Context, pathID string, status int) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.WithError(err).Warn("[estimate][handler] invalid payload")
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	saved, err := h.usecase.Save(c.Request.Context(), payload.ToEntity(pathID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, response.FromEstimate(saved))
}

// @Summary     Delete an estimate
// @Tags        estimates
// @Param       id path string true "Estimate ID"
// @Success     204
// @Router      /estimates/{id} [delete]
func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary     Set the estimate status
// @Tags        estimates
// @Param       id path string true "Estimate ID"
// @Param       payload body request.EstimateStatusRequest true "Status"
// @Success     200 {object} response.EstimateResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     404 {object} pkg.HTTPError
// @Router      /estimates/{id}/status [patch]
func (h *EstimateHandler) UpdateStatus(c *gin.Context) {
	var payload request.EstimateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}
	h.respond(c)(h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), entities.EstimateStatus(payload.Status)))
}

// @Summary     Set the estimate discount
// @Tags        estimates
// @Param       id path string true "Estimate ID"
// @Param       payload body request.EstimateDiscountRequest true "Discount"
// @Success     200 {object} response.EstimateResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     404 {object} pkg.HTTPError
// @Router      /estimates/{id}/discount [patch]
func (h *EstimateHandler) UpdateDiscount(c *gin.Context) {
	var payload request.EstimateDiscountRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}
	h.respond(c)(h.usecase.UpdateDiscount(c.Request.Context(), c.Param("id"), *payload.Discount, payload.ResolveKind()))
}

// @Summary     Append a blank line item
// @Tags        estimates
// @Param       id path string true "Estimate ID"
// @Success     201 {object} response.EstimateResponse
// @Failure     404 {object} pkg.HTTPError
// @Router      /estimates/{id}/items [post]
func (h *EstimateHandler) AddItem(c *gin.Context) {
	e, err := h.usecase.AddItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(e))
}

// @Summary     Update a line item
// @Tags        estimates
// @Param       id path string true "Estimate ID"
// @Param       item_id path string true "Item ID"
// @Param       payload body request.EstimateItemPatchRequest true "Fields to change"
// @Success     200 {object} response.EstimateResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     404 {object} pkg.HTTPError
// @Router      /estimates/{id}/items/{item_id} [patch]
func (h *EstimateHandler) UpdateItem(c *gin.Context) {
	var payload request.EstimateItemPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil || payload.IsEmpty() {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}
	h.respond(c)(h.usecase.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("item_id"), payload.ToPatch()))
}

// @Summary     Remove a line item
// @Tags        estimates
// @Param       id path string true "Estimate ID"
// @Param       item_id path string true "Item ID"
// @Success     200 {object} response.EstimateResponse
// @Failure     404 {object} pkg.HTTPError
// @Router      /estimates/{id}/items/{item_id} [delete]
func (h *EstimateHandler) RemoveItem(c *gin.Context) {
	h.respond(c)(h.usecase.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("item_id")))
}

// TogglePaymentMethod selects the method when absent and clears it when present.
//
// @Summary     Toggle a payment method
// @Tags        estimates
// @Param       id path string true "Estimate ID"
// @Param       payload body request.PaymentMethodToggleRequest true "Method"
// @Success     200 {object} response.EstimateResponse
// @Failure     400 {object} pkg.HTTPError
// @Router      /estimates/{id}/payment-methods [post]
func (h *EstimateHandler) TogglePaymentMethod(c *gin.Context) {
	var payload request.PaymentMethodToggleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}
	h.respond(c)(h.usecase.TogglePaymentMethod(c.Request.Context(), c.Param("id"), payload.Method))
}

// ExportEstimates downloads the (optionally filtered) list as a spreadsheet.
//
// @Summary     Export estimates as a spreadsheet
// @Tags        estimates
// @Param       q query string false "Search filter"
// @Success     200 {file} file
// @Router      /estimates/export.xlsx [get]
func (h *EstimateHandler) ExportEstimates(c *gin.Context) {
	file, err := h.usecase.Export(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *EstimateHandler) respond(c *gin.Context) func(entities.Estimate, error) {
	return func(e entities.Estimate, err error) {
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, response.FromEstimate(e))
	}
}

func (h *EstimateHandler) fail(c *gin.Context, err error) {
	appErr := mapEstimateError(err)
	entry := h.logger.WithFields(logrus.Fields{"estimate_id": c.Param("id"), "code": appErr.Code}).WithError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		entry.Error("[estimate][handler] request failed")
	} else {
		entry.Info("[estimate][handler] request rejected")
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateTitleRequired):
		return pkg.NewDomainErrorSimple("ESTIMATE_TITLE_REQUIRED", "Estimate title is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidEstimateStatus):
		return pkg.NewDomainErrorSimple("INVALID_ESTIMATE_STATUS", "Invalid estimate status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidDiscountKind), errors.Is(err, usecase.ErrInvalidDiscountValue):
		return pkg.NewDomainErrorSimple("INVALID_DISCOUNT", "Invalid discount", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidItemValue):
		return pkg.NewDomainErrorSimple("INVALID_ITEM", "Invalid item value", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPaymentMethod):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_METHOD", "Invalid payment method", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrItemNotFound):
		return pkg.NewDomainErrorSimple("ITEM_NOT_FOUND", "Estimate item not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateExportDisabled):
		return pkg.NewDomainErrorSimple("EXPORT_UNAVAILABLE", "Export is not available", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
