package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"orcafacil/internal/adapter/persistence/kv"
	"orcafacil/internal/domain/entities"
)

func TestBillingPaymentKVRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBillingPaymentKVRepository(kv.NewMemoryStore(), nil, nil)

	first := entities.BillingPayment{
		ID:           "p1",
		EstimateID:   "e1",
		Amount:       270,
		Date:         time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
		Status:       entities.PaymentStatusAprovado,
		MPPayloadRaw: json.RawMessage(`{"id":123}`),
	}
	second := first
	second.ID = "p2"
	other := first
	other.ID = "p3"
	other.EstimateID = "e2"

	for _, p := range []entities.BillingPayment{first, second, other} {
		if _, err := repo.Create(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := repo.GetByID(ctx, "p2")
	if err != nil || got.ID != "p2" || got.Amount != 270 {
		t.Fatalf("unexpected payment %+v err=%v", got, err)
	}

	missing, err := repo.GetByID(ctx, "nope")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected empty payment, got %+v", missing)
	}

	list, err := repo.ListByEstimateID(ctx, "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].ID != "p1" || list[1].ID != "p2" {
		t.Fatalf("unexpected list %+v", list)
	}

	if _, err := repo.Create(ctx, first); !errors.Is(err, ErrPaymentAlreadyExists) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}
