package routes

import (
	"orcafacil/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
)

func addBillingRoutes(rg *gin.RouterGroup, paymentHandler *handlers.BillingPaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:estimate_id", paymentHandler.CreatePaymentByEstimateID)
		payments.GET("/:estimate_id", paymentHandler.GetPaymentByEstimateID)
	}
}
