package request

import (
	"encoding/json"
	"testing"

	"orcafacil/internal/domain/entities"
)

func TestEstimateRequest_ToEntity(t *testing.T) {
	var r EstimateRequest
	body := `{"id":"body-id","numero":"OR.0003","titulo":"Pintura","descontoTipo":"%","desconto":10,
		"itens":[{"id":"i1","nome":"Tinta","quantidade":2,"precoUnitario":50}],"metodosPagemento":["pix"]}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := r.ToEntity("")
	if e.ID != "body-id" || e.Number != "OR.0003" || e.Title != "Pintura" {
		t.Fatalf("unexpected estimate: %+v", e)
	}
	if e.DiscountKind != entities.DiscountKindPercent || e.Discount != 10 {
		t.Fatalf("unexpected discount: %v %q", e.Discount, e.DiscountKind)
	}
	if len(e.Items) != 1 || e.Items[0].UnitPrice != 50 || !e.HasPaymentMethod("pix") {
		t.Fatalf("unexpected items/methods: %+v", e)
	}

	if got := r.ToEntity("  path-id "); got.ID != "path-id" {
		t.Fatalf("expected path id to win, got %q", got.ID)
	}
}

func TestEstimateDiscountRequest_ResolveKind(t *testing.T) {
	if k := (EstimateDiscountRequest{}).ResolveKind(); k != entities.DiscountKindReais {
		t.Fatalf("expected R$, got %q", k)
	}
	if k := (EstimateDiscountRequest{Kind: " % "}).ResolveKind(); k != entities.DiscountKindPercent {
		t.Fatalf("expected %%, got %q", k)
	}
}

func TestEstimateItemPatchRequest(t *testing.T) {
	var r EstimateItemPatchRequest
	if !r.IsEmpty() {
		t.Fatalf("expected empty patch")
	}
	if err := json.Unmarshal([]byte(`{"quantidade":3,"nome":"Hora técnica"}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := r.ToPatch()
	if p.Quantity == nil || *p.Quantity != 3 || p.Name == nil || *p.Name != "Hora técnica" {
		t.Fatalf("unexpected patch: %+v", p)
	}
	if p.UnitPrice != nil || p.Discount != nil || p.Kind != nil {
		t.Fatalf("absent fields should stay nil: %+v", p)
	}
	if r.IsEmpty() {
		t.Fatalf("expected non-empty patch")
	}
}
