package request

import (
	"strings"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/usecase"
)

// EstimateRequest is the full estimate document, using the persisted field names.
//
// Derived values (item totals, subtotal, total) sent by the client are ignored and recomputed on save.
type EstimateRequest struct {
	entities.Estimate
}

// ToEntity returns the document to save. A non-empty pathID wins over the body id.
func (r EstimateRequest) ToEntity(pathID string) entities.Estimate {
	e := r.Estimate
	if id := strings.TrimSpace(pathID); id != "" {
		e.ID = id
	}
	return e
}

type EstimateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// EstimateDiscountRequest sets the estimate-level discount. An empty kind means reais.
type EstimateDiscountRequest struct {
	Discount *float64 `json:"desconto" binding:"required"`
	Kind     string   `json:"descontoTipo"`
}

func (r EstimateDiscountRequest) ResolveKind() entities.DiscountKind {
	if k := strings.TrimSpace(r.Kind); k != "" {
		return entities.DiscountKind(k)
	}
	return entities.DiscountKindReais
}

// EstimateItemPatchRequest carries the fields of a line item to change; absent fields are kept.
type EstimateItemPatchRequest struct {
	Name      *string  `json:"nome"`
	Kind      *string  `json:"tipo"`
	Quantity  *float64 `json:"quantidade"`
	UnitPrice *float64 `json:"precoUnitario"`
	Discount  *float64 `json:"desconto"`
}

func (r EstimateItemPatchRequest) ToPatch() usecase.ItemPatch {
	return usecase.ItemPatch{
		Name:      r.Name,
		Kind:      r.Kind,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		Discount:  r.Discount,
	}
}

func (r EstimateItemPatchRequest) IsEmpty() bool {
	return r.Name == nil && r.Kind == nil && r.Quantity == nil && r.UnitPrice == nil && r.Discount == nil
}

type PaymentMethodToggleRequest struct {
	Method string `json:"metodo" binding:"required"`
}
