package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"orcafacil/internal/adapter/persistence/kv"
	"orcafacil/internal/adapter/persistence/repository"
	"orcafacil/internal/domain/entities"
	mock_interfaces "orcafacil/internal/usecase/interfaces/mocks"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestEstimateUseCase(repo *mock_interfaces.MockIEstimateRepository, exporter *mock_interfaces.MockIEstimateExporter) *EstimateUseCase {
	var uc *EstimateUseCase
	if exporter == nil {
		uc = NewEstimateUseCase(repo, nil, nil)
	} else {
		uc = NewEstimateUseCase(repo, exporter, nil)
	}
	uc.now = func() time.Time { return fixedNow }
	ids := 0
	uc.newID = func() string {
		ids++
		return "id-" + string(rune('0'+ids))
	}
	return uc
}

func storedEstimate() entities.Estimate {
	e := entities.NewBlankEstimate("est-1", "OR.0003", fixedNow.Add(-time.Hour))
	e.Title = "Reforma"
	e.Items = []entities.LineItem{
		{ID: "it-1", Name: "Pintura", Kind: entities.ItemKindServico, Quantity: 1, UnitPrice: 100, Total: 100},
		{ID: "it-2", Name: "Tinta", Kind: entities.ItemKindProduto, Quantity: 2, UnitPrice: 100, Total: 200},
	}
	e.Recalculate()
	return e
}

func TestEstimateUseCase_Scenarios(t *testing.T) {
	t.Run("first estimate on an empty store", func(t *testing.T) {
		store := repository.NewEstimateKVRepository(kv.NewMemoryStore(), nil, nil)
		uc := NewEstimateUseCase(store, nil, nil)
		ctx := context.Background()

		draft := uc.NewDraft(ctx)
		draft.Title = "Projeto X"
		it := draft.AddItem("item-1")
		it.SetQuantity(2)
		it.SetUnitPrice(100)

		saved, err := uc.Save(ctx, draft)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.Number != "OR.0001" || saved.Subtotal != 200 || saved.Total != 200 {
			t.Fatalf("unexpected estimate: numero=%s subtotal=%v total=%v", saved.Number, saved.Subtotal, saved.Total)
		}
		if got := uc.NewDraft(ctx).Number; got != "OR.0002" {
			t.Fatalf("expected next draft OR.0002, got %s", got)
		}
	})

	t.Run("percentage discount", func(t *testing.T) {
		store := repository.NewEstimateKVRepository(kv.NewMemoryStore(), nil, nil)
		uc := NewEstimateUseCase(store, nil, nil)
		ctx := context.Background()

		e := storedEstimate()
		e.Discount = 10
		e.DiscountKind = entities.DiscountKindPercent
		saved, err := uc.Save(ctx, e)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.Subtotal != 300 || saved.Total != 270 {
			t.Fatalf("expected 300/270, got %v/%v", saved.Subtotal, saved.Total)
		}
	})
}

func TestEstimateUseCase_NewDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
	uc := newTestEstimateUseCase(repo, nil)
	repo.EXPECT().NextNumber(gomock.Any()).Return("OR.0009")

	d := uc.NewDraft(context.Background())
	if d.ID != "id-1" || d.Number != "OR.0009" || d.Status != entities.EstimateStatusEmAberto {
		t.Fatalf("unexpected draft %+v", d)
	}
	if !d.CreatedAt.Equal(fixedNow) || d.DiscountKind != entities.DiscountKindReais {
		t.Fatalf("unexpected draft defaults %+v", d)
	}
}

func TestEstimateUseCase_Save(t *testing.T) {
	t.Run("validations", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(e *entities.Estimate)
			want   error
		}{
			{name: "blank title", mutate: func(e *entities.Estimate) { e.Title = "   " }, want: ErrEstimateTitleRequired},
			{name: "unknown status", mutate: func(e *entities.Estimate) { e.Status = "pendente" }, want: ErrInvalidEstimateStatus},
			{name: "unknown discount kind", mutate: func(e *entities.Estimate) { e.DiscountKind = "USD" }, want: ErrInvalidDiscountKind},
			{name: "negative discount", mutate: func(e *entities.Estimate) { e.Discount = -1 }, want: ErrInvalidDiscountValue},
			{name: "negative quantity", mutate: func(e *entities.Estimate) { e.Items[0].Quantity = -2 }, want: ErrInvalidItemValue},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				uc := newTestEstimateUseCase(mock_interfaces.NewMockIEstimateRepository(ctrl), nil)
				e := storedEstimate()
				tc.mutate(&e)
				if _, err := uc.Save(context.Background(), e); !errors.Is(err, tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
			})
		}
	})

	t.Run("fills defaults and recalculates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestEstimateUseCase(repo, nil)

		in := entities.Estimate{
			Title: "Sem número",
			Items: []entities.LineItem{{Name: "Hora técnica", Quantity: 3, UnitPrice: 50, Discount: 10, Total: 999}},
		}
		repo.EXPECT().NextNumber(gomock.Any()).Return("OR.0004")
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.Estimate) error {
			if e.ID == "" || e.Items[0].ID == "" {
				t.Fatalf("expected generated ids: %+v", e)
			}
			return nil
		})

		out, err := uc.Save(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Number != "OR.0004" || out.Status != entities.EstimateStatusEmAberto || out.DiscountKind != entities.DiscountKindReais {
			t.Fatalf("unexpected defaults: %+v", out)
		}
		if out.Items[0].Total != 140 || out.Subtotal != 140 || out.Total != 140 {
			t.Fatalf("expected totals recalculated to 140, got %+v", out)
		}
		if !out.CreatedAt.Equal(fixedNow) || !out.UpdatedAt.Equal(fixedNow) {
			t.Fatalf("expected timestamps set")
		}
		if out.Images == nil || out.PaymentMethods == nil {
			t.Fatalf("expected empty collections, not nil")
		}
	})

	t.Run("keeps creation date and refreshes update date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestEstimateUseCase(repo, nil)
		e := storedEstimate()
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

		out, err := uc.Save(context.Background(), e)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.CreatedAt.Equal(e.CreatedAt) || !out.UpdatedAt.Equal(fixedNow) || out.Number != "OR.0003" {
			t.Fatalf("unexpected timestamps/number: %+v", out)
		}
	})

	t.Run("write failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestEstimateUseCase(repo, nil)
		writeErr := errors.New("quota")
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(writeErr)

		if _, err := uc.Save(context.Background(), storedEstimate()); !errors.Is(err, writeErr) {
			t.Fatalf("expected write error, got %v", err)
		}
	})
}

func TestEstimateUseCase_GetListDelete(t *testing.T) {
	t.Run("GetByID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestEstimateUseCase(repo, nil)

		if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}

		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Estimate{}, false)
		if _, err := uc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedEstimate(), true)
		e, err := uc.GetByID(context.Background(), " est-1 ")
		if err != nil || e.ID != "est-1" {
			t.Fatalf("unexpected result err=%v e=%+v", err, e)
		}
	})

	t.Run("List filters by number, title and client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestEstimateUseCase(repo, nil)

		a := entities.Estimate{ID: "a", Number: "OR.0001", Title: "Telhado", Client: entities.Client{Name: "João"}}
		b := entities.Estimate{ID: "b", Number: "OR.0002", Title: "Pintura", Client: entities.Client{Name: "Maria Souza"}}
		c := entities.Estimate{ID: "c", Number: "OR.0010", Title: "Elétrica", Client: entities.Client{Name: "Ana"}}
		repo.EXPECT().List(gomock.Any()).Return([]entities.Estimate{a, b, c}).AnyTimes()

		cases := []struct {
			search string
			want   []string
		}{
			{search: "", want: []string{"a", "b", "c"}},
			{search: "or.001", want: []string{"c"}},
			{search: "PINT", want: []string{"b"}},
			{search: "souza", want: []string{"b"}},
			{search: "zzz", want: nil},
		}
		for _, tc := range cases {
			got := uc.List(context.Background(), tc.search)
			if len(got) != len(tc.want) {
				t.Fatalf("search %q: expected %v, got %d results", tc.search, tc.want, len(got))
			}
			for i := range got {
				if got[i].ID != tc.want[i] {
					t.Fatalf("search %q: expected %v at %d, got %s", tc.search, tc.want[i], i, got[i].ID)
				}
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestEstimateUseCase(repo, nil)

		if err := uc.Delete(context.Background(), ""); !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
		repo.EXPECT().Delete(gomock.Any(), "est-1").Return(nil)
		if err := uc.Delete(context.Background(), "est-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		repo.EXPECT().Delete(gomock.Any(), "est-1").Return(errors.New("down"))
		if err := uc.Delete(context.Background(), "est-1"); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestEstimateUseCase_Edits(t *testing.T) {
	ptrF := func(v float64) *float64 { return &v }
	ptrS := func(v string) *string { return &v }

	cases := []struct {
		name  string
		run   func(uc *EstimateUseCase) (entities.Estimate, error)
		check func(t *testing.T, e entities.Estimate)
	}{
		{
			name: "status",
			run: func(uc *EstimateUseCase) (entities.Estimate, error) {
				return uc.UpdateStatus(context.Background(), "est-1", entities.EstimateStatusAprovado)
			},
			check: func(t *testing.T, e entities.Estimate) {
				if e.Status != entities.EstimateStatusAprovado {
					t.Fatalf("expected aprovado, got %s", e.Status)
				}
			},
		},
		{
			name: "discount",
			run: func(uc *EstimateUseCase) (entities.Estimate, error) {
				return uc.UpdateDiscount(context.Background(), "est-1", 10, entities.DiscountKindPercent)
			},
			check: func(t *testing.T, e entities.Estimate) {
				if e.Total != 270 {
					t.Fatalf("expected 270, got %v", e.Total)
				}
			},
		},
		{
			name: "add item",
			run: func(uc *EstimateUseCase) (entities.Estimate, error) {
				return uc.AddItem(context.Background(), "est-1")
			},
			check: func(t *testing.T, e entities.Estimate) {
				last := e.Items[len(e.Items)-1]
				if len(e.Items) != 3 || last.ID != "id-1" || last.Kind != entities.ItemKindServico || last.Quantity != 1 {
					t.Fatalf("unexpected new item %+v", last)
				}
			},
		},
		{
			name: "update item",
			run: func(uc *EstimateUseCase) (entities.Estimate, error) {
				return uc.UpdateItem(context.Background(), "est-1", "it-2", ItemPatch{
					Name: ptrS("Tinta acrílica"), Kind: ptrS(entities.ItemKindUnidade),
					Quantity: ptrF(3), UnitPrice: ptrF(50), Discount: ptrF(20),
				})
			},
			check: func(t *testing.T, e entities.Estimate) {
				it := e.Items[1]
				if it.Name != "Tinta acrílica" || it.Kind != entities.ItemKindUnidade || it.Total != 130 {
					t.Fatalf("unexpected item %+v", it)
				}
				if e.Subtotal != 230 || e.Total != 230 {
					t.Fatalf("expected 230, got %v/%v", e.Subtotal, e.Total)
				}
			},
		},
		{
			name: "remove item",
			run: func(uc *EstimateUseCase) (entities.Estimate, error) {
				return uc.RemoveItem(context.Background(), "est-1", "it-1")
			},
			check: func(t *testing.T, e entities.Estimate) {
				if len(e.Items) != 1 || e.Items[0].ID != "it-2" || e.Total != 200 {
					t.Fatalf("unexpected estimate %+v", e)
				}
			},
		},
		{
			name: "toggle payment method",
			run: func(uc *EstimateUseCase) (entities.Estimate, error) {
				return uc.TogglePaymentMethod(context.Background(), "est-1", " PIX ")
			},
			check: func(t *testing.T, e entities.Estimate) {
				if !e.HasPaymentMethod(entities.PaymentMethodPix) {
					t.Fatalf("expected pix selected, got %v", e.PaymentMethods)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
			uc := newTestEstimateUseCase(repo, nil)

			repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedEstimate(), true)
			repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

			e, err := tc.run(uc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !e.UpdatedAt.Equal(fixedNow) {
				t.Fatalf("expected dataAtualizacao refreshed")
			}
			tc.check(t, e)
		})
	}
}

func TestEstimateUseCase_TogglePaymentMethodLogsSelection(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	store := repository.NewEstimateKVRepository(kv.NewMemoryStore(), nil, nil)
	uc := NewEstimateUseCase(store, nil, logger)
	ctx := context.Background()

	saved, err := uc.Save(ctx, storedEstimate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []bool{true, false} {
		hook.Reset()
		e, err := uc.TogglePaymentMethod(ctx, saved.ID, "boleto")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.HasPaymentMethod(entities.PaymentMethodBoleto) != want {
			t.Fatalf("expected boleto selected=%v, got %v", want, e.PaymentMethods)
		}
		var logged *logrus.Entry
		for _, entry := range hook.AllEntries() {
			if entry.Message == "[estimate][usecase] payment method toggled" {
				logged = entry
			}
		}
		if logged == nil || logged.Data["selected"] != want || logged.Data["metodo"] != "boleto" {
			t.Fatalf("expected toggle log with selected=%v, got %v", want, hook.AllEntries())
		}
	}
}

func TestEstimateUseCase_EditErrors(t *testing.T) {
	neg := -1.0

	t.Run("rejected before loading", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := newTestEstimateUseCase(mock_interfaces.NewMockIEstimateRepository(ctrl), nil)
		ctx := context.Background()

		if _, err := uc.UpdateStatus(ctx, "est-1", "pendente"); !errors.Is(err, ErrInvalidEstimateStatus) {
			t.Fatalf("expected ErrInvalidEstimateStatus, got %v", err)
		}
		if _, err := uc.UpdateDiscount(ctx, "est-1", 5, "USD"); !errors.Is(err, ErrInvalidDiscountKind) {
			t.Fatalf("expected ErrInvalidDiscountKind, got %v", err)
		}
		if _, err := uc.UpdateItem(ctx, "est-1", "it-1", ItemPatch{Quantity: &neg}); !errors.Is(err, ErrInvalidItemValue) {
			t.Fatalf("expected ErrInvalidItemValue, got %v", err)
		}
		if _, err := uc.TogglePaymentMethod(ctx, "est-1", "bitcoin"); !errors.Is(err, ErrInvalidPaymentMethod) {
			t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedEstimate(), true).Times(2)

		if _, err := uc.UpdateItem(context.Background(), "est-1", "nope", ItemPatch{}); !errors.Is(err, ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
		if _, err := uc.RemoveItem(context.Background(), "est-1", "nope"); !errors.Is(err, ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("unknown estimate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.Estimate{}, false)

		if _, err := uc.AddItem(context.Background(), "nope"); !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})
}

func TestEstimateUseCase_Export(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := newTestEstimateUseCase(mock_interfaces.NewMockIEstimateRepository(ctrl), nil)
		if _, err := uc.Export(context.Background(), ""); !errors.Is(err, ErrEstimateExportDisabled) {
			t.Fatalf("expected ErrEstimateExportDisabled, got %v", err)
		}
	})

	t.Run("exports filtered list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		exporter := mock_interfaces.NewMockIEstimateExporter(ctrl)
		uc := newTestEstimateUseCase(repo, exporter)

		repo.EXPECT().List(gomock.Any()).Return([]entities.Estimate{
			{ID: "a", Title: "Telhado"},
			{ID: "b", Title: "Pintura"},
		})
		exporter.EXPECT().Export(gomock.Any()).DoAndReturn(func(list []entities.Estimate) ([]byte, error) {
			if len(list) != 1 || list[0].ID != "b" {
				t.Fatalf("expected filtered list, got %+v", list)
			}
			return []byte("xlsx"), nil
		})
		exporter.EXPECT().FileExtension().Return("xlsx")
		exporter.EXPECT().ContentType().Return("application/test")

		f, err := uc.Export(context.Background(), "pintura")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Name != "orcamentos-20240510.xlsx" || f.ContentType != "application/test" || string(f.Data) != "xlsx" {
			t.Fatalf("unexpected file %+v", f)
		}
	})

	t.Run("exporter failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		exporter := mock_interfaces.NewMockIEstimateExporter(ctrl)
		uc := newTestEstimateUseCase(repo, exporter)

		repo.EXPECT().List(gomock.Any()).Return(nil)
		exporter.EXPECT().Export(gomock.Any()).Return(nil, errors.New("disk"))
		if _, err := uc.Export(context.Background(), ""); err == nil {
			t.Fatalf("expected error")
		}
	})
}
