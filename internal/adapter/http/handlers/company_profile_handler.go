package handlers

import (
	"errors"
	"net/http"
	request "orcafacil/internal/adapter/http/dto/request"
	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/usecase"
	"orcafacil/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CompanyProfileHandler serves the single company profile used to brand estimates.
type CompanyProfileHandler struct {
	usecase usecase.ICompanyProfileUseCase
	logger  *logrus.Logger
}

func NewCompanyProfileHandler(uc usecase.ICompanyProfileUseCase, logger *logrus.Logger) *CompanyProfileHandler {
	return &CompanyProfileHandler{usecase: uc, logger: logging.OrDiscard(logger)}
}

// @Summary     Get the company profile
// @Tags        company
// @Success     200 {object} request.CompanyProfileRequest
// @Router      /company [get]
func (h *CompanyProfileHandler) GetCompanyProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.usecase.Get(c.Request.Context()))
}

// @Summary     Save the company profile
// @Tags        company
// @Param       payload body request.CompanyProfileRequest true "Profile"
// @Success     200 {object} request.CompanyProfileRequest
// @Failure     400 {object} pkg.HTTPError
// @Router      /company [put]
func (h *CompanyProfileHandler) SaveCompanyProfile(c *gin.Context) {
	var payload request.CompanyProfileRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_COMPANY_INPUT", "Invalid company payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	saved, err := h.usecase.Save(c.Request.Context(), payload.ToEntity())
	if err != nil {
		appErr := mapCompanyProfileError(err)
		h.logger.WithField("code", appErr.Code).WithError(err).Warn("[company][handler] save failed")
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, saved)
}

func mapCompanyProfileError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrCompanyNameRequired):
		return pkg.NewDomainErrorSimple("COMPANY_NAME_REQUIRED", "Company name is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCompanyEmailRequired):
		return pkg.NewDomainErrorSimple("COMPANY_EMAIL_REQUIRED", "Company email is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCompanyEmailInvalid):
		return pkg.NewDomainErrorSimple("COMPANY_EMAIL_INVALID", "Company email is invalid", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCompanyLogoInvalid):
		return pkg.NewDomainErrorSimple("COMPANY_LOGO_INVALID", "Logo must be a PNG, JPG or SVG image", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
