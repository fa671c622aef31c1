package response

import (
	"orcafacil/internal/domain/entities"
	"orcafacil/internal/pricing"
	"time"
)

type BillingPaymentResponse struct {
	PaymentID       string    `json:"payment_id"`
	EstimateID      string    `json:"estimate_id"`
	Amount          float64   `json:"amount"`
	AmountFormatted string    `json:"amount_formatted"`
	Date            time.Time `json:"date"`
	Status          string    `json:"status"`

	MPPayload map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromBillingPayment(p entities.BillingPayment) BillingPaymentResponse {
	return BillingPaymentResponse{
		PaymentID:       p.ID,
		EstimateID:      p.EstimateID,
		Amount:          p.Amount,
		AmountFormatted: pricing.FormatCurrency(p.Amount),
		Date:            p.Date,
		Status:          string(p.Status),
		MPPayload:       p.MPPayload,
	}
}
