package routes

import (
	"orcafacil/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates = "/estimates"
	PathCompany   = "/company"
)

func addEstimateRoutes(rg *gin.RouterGroup, h *handlers.EstimateHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.GET("", h.ListEstimates)
		estimates.POST("", h.CreateEstimate)
		estimates.GET("/new", h.NewEstimate)
		estimates.GET("/export.xlsx", h.ExportEstimates)

		estimates.GET("/:id", h.GetEstimate)
		estimates.PUT("/:id", h.UpdateEstimate)
		estimates.DELETE("/:id", h.DeleteEstimate)
		estimates.PATCH("/:id/status", h.UpdateStatus)
		estimates.PATCH("/:id/discount", h.UpdateDiscount)
		estimates.POST("/:id/payment-methods", h.TogglePaymentMethod)

		estimates.POST("/:id/items", h.AddItem)
		estimates.PATCH("/:id/items/:item_id", h.UpdateItem)
		estimates.DELETE("/:id/items/:item_id", h.RemoveItem)
	}
}

func addCompanyRoutes(rg *gin.RouterGroup, h *handlers.CompanyProfileHandler) {
	rg.GET(PathCompany, h.GetCompanyProfile)
	rg.PUT(PathCompany, h.SaveCompanyProfile)
}
