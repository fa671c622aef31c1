package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

// BillingPayment is a payment collected for an approved estimate.
//
// Storage model: one element of the "pagamentos" JSON array in the key-value medium.
//
// MercadoPago payload:
//   - MPPayloadRaw keeps the provider response body for traceability.
//   - MPPayload is the parsed representation of the same body.
type BillingPayment struct {
	ID         string        `json:"id"`
	EstimateID string        `json:"estimate_id"`
	Amount     float64       `json:"amount"`
	Date       time.Time     `json:"date"`
	Status     PaymentStatus `json:"status"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}
