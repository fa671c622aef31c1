package request

import "encoding/json"

// BillingPaymentCreateRequest is the optional envelope of the "charge estimate" route.
//
// The body may also be the bare Mercado Pago payment payload.
type BillingPaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
