package entities

import (
	"time"

	"orcafacil/internal/pricing"
)

// EstimateStatus represents the lifecycle of an estimate (orçamento).
//
// Domain notes:
//   - There is no transition graph: any status may be set from any other.
//   - Values are the literals persisted in the "orcamentos" blob.
type EstimateStatus string

const (
	EstimateStatusEmAberto  EstimateStatus = "em_aberto"
	EstimateStatusAprovado  EstimateStatus = "aprovado"
	EstimateStatusRecusado  EstimateStatus = "recusado"
	EstimateStatusEmAnalise EstimateStatus = "em_analise"
	EstimateStatusCancelado EstimateStatus = "cancelado"
)

var estimateStatusLabels = map[EstimateStatus]string{
	EstimateStatusEmAberto:  "Em aberto",
	EstimateStatusAprovado:  "Aprovado",
	EstimateStatusRecusado:  "Recusado",
	EstimateStatusEmAnalise: "Em análise",
	EstimateStatusCancelado: "Cancelado",
}

func (s EstimateStatus) IsValid() bool {
	_, ok := estimateStatusLabels[s]
	return ok
}

// Label is the human readable status shown on lists and exports.
func (s EstimateStatus) Label() string {
	if l, ok := estimateStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

type DiscountKind = pricing.DiscountKind

const (
	DiscountKindReais   = pricing.DiscountAbsolute
	DiscountKindPercent = pricing.DiscountPercent
)

// Payment method tags offered on the estimate form.
const (
	PaymentMethodPix           = "pix"
	PaymentMethodCredito       = "crédito"
	PaymentMethodDebito        = "débito"
	PaymentMethodDinheiro      = "dinheiro"
	PaymentMethodTransferencia = "transferência"
	PaymentMethodBoleto        = "boleto"
	PaymentMethodCheque        = "cheque"
)

// Client is the customer record embedded in an estimate. Every field is free text.
type Client struct {
	Name    string `json:"nome"`
	Phone   string `json:"celular"`
	Email   string `json:"email"`
	TaxID   string `json:"cpfCnpj"`
	Address string `json:"endereco"`
}

// PriceDisplay toggles which price columns are rendered on the document.
type PriceDisplay struct {
	QuantityAndKind bool `json:"quantidadeTipo"`
	UnitPrice       bool `json:"valorUnitario"`
	Subtotal        bool `json:"subtotal"`
	Total           bool `json:"valorTotal"`
}

// Estimate is the quote document (orçamento) persisted as one element of the "orcamentos" blob.
//
// Invariants (kept by Recalculate):
//   - Subtotal is the sum of the item totals.
//   - Total is Subtotal minus the discount, absolute or percent, never below zero.
type Estimate struct {
	ID         string         `json:"id"`
	Number     string         `json:"numero"`
	Title      string         `json:"titulo"`
	Status     EstimateStatus `json:"status"`
	HideNumber bool           `json:"ocultarNumero"`
	Client     Client         `json:"cliente"`

	InitialReport       string   `json:"relatorioInicial"`
	HideReport          bool     `json:"ocultarRelatorio"`
	ActivityDescription string   `json:"descricaoAtividades"`
	Images              []string `json:"imagens"`

	Items        []LineItem   `json:"itens"`
	Discount     float64      `json:"desconto"`
	DiscountKind DiscountKind `json:"descontoTipo"`
	Subtotal     float64      `json:"subtotal"`
	Total        float64      `json:"total"`
	PriceDisplay PriceDisplay `json:"apresentarPrecos"`

	// The stored key is spelled "metodosPagemento"; existing data is keyed on it.
	PaymentMethods []string `json:"metodosPagemento"`

	ContractTerms     string `json:"condicoesContrato"`
	HideContractTerms bool   `json:"ocultarCondicoes"`
	Observations      string `json:"observacoes"`
	HideObservations  bool   `json:"ocultarObservacoes"`

	CreatedAt time.Time `json:"dataCriacao"`
	UpdatedAt time.Time `json:"dataAtualizacao"`
}

// NewBlankEstimate returns the empty document shown by the "new estimate" form.
func NewBlankEstimate(id, number string, now time.Time) Estimate {
	return Estimate{
		ID:           id,
		Number:       number,
		Status:       EstimateStatusEmAberto,
		Images:       []string{},
		Items:        []LineItem{},
		DiscountKind: DiscountKindReais,
		PriceDisplay: PriceDisplay{
			QuantityAndKind: true,
			UnitPrice:       true,
			Subtotal:        true,
			Total:           true,
		},
		PaymentMethods: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Recalculate refreshes every item total, the subtotal and the grand total.
func (e *Estimate) Recalculate() {
	totals := make([]float64, len(e.Items))
	for i := range e.Items {
		e.Items[i].recalculate()
		totals[i] = e.Items[i].Total
	}
	e.Subtotal = pricing.Subtotal(totals)
	e.Total = pricing.GrandTotal(e.Subtotal, e.Discount, e.DiscountKind)
}

// AddItem appends a new line item with the form defaults and returns a pointer to it.
func (e *Estimate) AddItem(id string) *LineItem {
	e.Items = append(e.Items, NewLineItem(id))
	e.Recalculate()
	return &e.Items[len(e.Items)-1]
}

// Item returns the line item with the given id, or nil.
func (e *Estimate) Item(id string) *LineItem {
	for i := range e.Items {
		if e.Items[i].ID == id {
			return &e.Items[i]
		}
	}
	return nil
}

// RemoveItem drops the line item with the given id. It reports whether an item was removed.
func (e *Estimate) RemoveItem(id string) bool {
	for i := range e.Items {
		if e.Items[i].ID == id {
			items := make([]LineItem, 0, len(e.Items)-1)
			items = append(items, e.Items[:i]...)
			e.Items = append(items, e.Items[i+1:]...)
			e.Recalculate()
			return true
		}
	}
	return false
}

func (e *Estimate) SetDiscount(amount float64, kind DiscountKind) {
	e.Discount = amount
	e.DiscountKind = kind
	e.Recalculate()
}

func (e *Estimate) SetStatus(status EstimateStatus) {
	e.Status = status
}

// TogglePaymentMethod adds the tag when absent and removes it when present.
func (e *Estimate) TogglePaymentMethod(tag string) {
	for i, m := range e.PaymentMethods {
		if m == tag {
			methods := make([]string, 0, len(e.PaymentMethods)-1)
			methods = append(methods, e.PaymentMethods[:i]...)
			e.PaymentMethods = append(methods, e.PaymentMethods[i+1:]...)
			return
		}
	}
	e.PaymentMethods = append(e.PaymentMethods, tag)
}

// HasPaymentMethod reports whether the tag is selected.
func (e Estimate) HasPaymentMethod(tag string) bool {
	for _, m := range e.PaymentMethods {
		if m == tag {
			return true
		}
	}
	return false
}
