package entities

import "orcafacil/internal/pricing"

// Item kinds offered by the form. Kind is free text, so other values are kept as-is.
const (
	ItemKindServico = "serviço"
	ItemKindProduto = "produto"
	ItemKindHora    = "hora"
	ItemKindUnidade = "unidade"
)

// LineItem is one billable row of an estimate. Total is derived and only changes through the setters.
type LineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"nome"`
	Kind      string  `json:"tipo"`
	Quantity  float64 `json:"quantidade"`
	UnitPrice float64 `json:"precoUnitario"`
	Discount  float64 `json:"desconto"`
	Total     float64 `json:"total"`
}

func NewLineItem(id string) LineItem {
	return LineItem{
		ID:       id,
		Kind:     ItemKindServico,
		Quantity: 1,
	}
}

func (it *LineItem) SetName(name string) {
	it.Name = name
}

func (it *LineItem) SetKind(kind string) {
	it.Kind = kind
}

func (it *LineItem) SetQuantity(q float64) {
	it.Quantity = q
	it.recalculate()
}

func (it *LineItem) SetUnitPrice(p float64) {
	it.UnitPrice = p
	it.recalculate()
}

func (it *LineItem) SetDiscount(d float64) {
	it.Discount = d
	it.recalculate()
}

func (it *LineItem) recalculate() {
	it.Total = pricing.ItemTotal(pricing.Item{
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		Discount:  it.Discount,
	})
}
