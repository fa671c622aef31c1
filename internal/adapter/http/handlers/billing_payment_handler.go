package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	response "orcafacil/internal/adapter/http/dto/response"
	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/usecase"
	"orcafacil/pkg"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BillingPaymentHandler handles HTTP requests for estimate payments.
type BillingPaymentHandler struct {
	usecase usecase.IBillingPaymentUseCase
	logger  *logrus.Logger
}

func NewBillingPaymentHandler(uc usecase.IBillingPaymentUseCase, logger *logrus.Logger) *BillingPaymentHandler {
	return &BillingPaymentHandler{usecase: uc, logger: logging.OrDiscard(logger)}
}

// CreatePaymentByEstimateID charges an approved estimate using estimate_id in path.
//
// @Summary     Charge an approved estimate
// @Tags        payments
// @Param       estimate_id path string true "Estimate ID"
// @Param       payload body request.BillingPaymentCreateRequest true "Mercado Pago payload"
// @Success     200 {object} response.BillingPaymentResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     409 {object} pkg.HTTPError
// @Router      /payments/{estimate_id} [post]
func (h *BillingPaymentHandler) CreatePaymentByEstimateID(c *gin.Context) {
	estimateID := c.Param("estimate_id")
	log := h.logger.WithField("estimate_id", estimateID)
	log.Info("[payment][handler] create start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		log.WithError(err).Warn("[payment][handler] invalid payload")
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateAndApprove(c.Request.Context(), estimateID, mpPayload)
	if err != nil {
		log.WithError(err).Warn("[payment][handler] create failed")
		appErr := mapBillingPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.WithFields(logrus.Fields{"payment_id": created.ID, "status": created.Status}).Info("[payment][handler] create success")

	c.JSON(http.StatusOK, response.FromBillingPayment(created))
}

// GetPaymentByEstimateID returns the latest payment for an estimate.
//
// @Summary     Latest payment of an estimate
// @Tags        payments
// @Param       estimate_id path string true "Estimate ID"
// @Success     200 {object} response.BillingPaymentResponse
// @Failure     404 {object} pkg.HTTPError
// @Router      /payments/{estimate_id} [get]
func (h *BillingPaymentHandler) GetPaymentByEstimateID(c *gin.Context) {
	estimateID := c.Param("estimate_id")
	log := h.logger.WithField("estimate_id", estimateID)

	payments, err := h.usecase.ListByEstimateID(c.Request.Context(), estimateID)
	if err != nil {
		log.WithError(err).Warn("[payment][handler] get-by-estimate failed")
		appErr := mapBillingPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if len(payments) == 0 {
		appErr := pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	log.WithFields(logrus.Fields{"payment_id": latest.ID, "status": latest.Status}).Debug("[payment][handler] get-by-estimate success")

	c.JSON(http.StatusOK, response.FromBillingPayment(latest))
}

// readMPPayload accepts either {"mp_payload": {...}} or the bare payload. An empty body is {}.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapBillingPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentEstimateID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateNotApproved):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_APPROVED", "Estimate not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateNothingToCharge):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOTHING_TO_CHARGE", "Estimate total is zero", http.StatusConflict)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
