package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"orcafacil/internal/domain/entities"
	mock_interfaces "orcafacil/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

const validPayload = `{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`

func approvedEstimate(total float64) entities.Estimate {
	return entities.Estimate{ID: "est-1", Number: "OR.0007", Status: entities.EstimateStatusAprovado, Total: total}
}

type paymentMocks struct {
	repo    *mock_interfaces.MockIBillingPaymentRepository
	estRepo *mock_interfaces.MockIEstimateRepository
	gateway *mock_interfaces.MockIPaymentGateway
}

func newPaymentUseCase(t *testing.T, sandbox PaymentSandbox) (*BillingPaymentUseCase, paymentMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := paymentMocks{
		repo:    mock_interfaces.NewMockIBillingPaymentRepository(ctrl),
		estRepo: mock_interfaces.NewMockIEstimateRepository(ctrl),
		gateway: mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
	return NewBillingPaymentUseCase(m.repo, m.estRepo, m.gateway, sandbox, nil), m
}

func TestBillingPaymentUseCase_CreateAndApprove_Validations(t *testing.T) {
	cases := []struct {
		name       string
		estimateID string
		payload    json.RawMessage
		want       error
	}{
		{name: "empty estimate id", estimateID: " ", payload: json.RawMessage(`{}`), want: ErrInvalidPaymentEstimateID},
		{name: "empty payload", estimateID: "est-1", payload: nil, want: ErrInvalidMPPayload},
		{name: "invalid json payload", estimateID: "est-1", payload: json.RawMessage(`{`), want: ErrInvalidMPPayload},
		{name: "json array payload", estimateID: "est-1", payload: json.RawMessage(`[1]`), want: ErrInvalidMPPayload},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSandbox{}, nil)
			_, err := uc.CreateAndApprove(context.Background(), tc.estimateID, tc.payload)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := NewBillingPaymentUseCase(nil, mock_interfaces.NewMockIEstimateRepository(ctrl), nil, PaymentSandbox{}, nil)

		_, err := uc.CreateAndApprove(context.Background(), "est-1", json.RawMessage(validPayload))
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})
}

func TestBillingPaymentUseCase_CreateAndApprove_EstimateChecks(t *testing.T) {
	cases := []struct {
		name     string
		estimate entities.Estimate
		found    bool
		want     error
	}{
		{name: "estimate not found", found: false, want: ErrEstimateNotFound},
		{name: "estimate not approved", estimate: entities.Estimate{ID: "est-1", Status: entities.EstimateStatusEmAberto, Total: 10}, found: true, want: ErrEstimateNotApproved},
		{name: "estimate with zero total", estimate: approvedEstimate(0), found: true, want: ErrEstimateNothingToCharge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newPaymentUseCase(t, PaymentSandbox{})
			m.estRepo.EXPECT().GetByID(gomock.Any(), "est-1").Return(tc.estimate, tc.found)

			_, err := uc.CreateAndApprove(context.Background(), "est-1", json.RawMessage(validPayload))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBillingPaymentUseCase_CreateAndApprove_PayloadValidation(t *testing.T) {
	t.Run("missing payment_method_id", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSandbox{})
		m.estRepo.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(10), true)

		_, err := uc.CreateAndApprove(context.Background(), "est-1", json.RawMessage(`{"payer":{"email":"x@test.com"}}`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("missing payer outside sandbox", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSandbox{})
		m.estRepo.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(10), true)

		_, err := uc.CreateAndApprove(context.Background(), "est-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("sandbox fills payer email", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSandbox{Enabled: true})
		m.estRepo.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(10), true)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
				var body map[string]any
				_ = json.Unmarshal(payload, &body)
				payer := body["payer"].(map[string]any)
				if payer["email"] != "test_user_br@testuser.com" || payer["type"] != "customer" {
					t.Fatalf("unexpected payer: %v", payer)
				}
				return "pay-1", "approved", json.RawMessage(`{}`), nil
			},
		)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) { return p, nil },
		)

		if _, err := uc.CreateAndApprove(context.Background(), "est-1", json.RawMessage(`{"payment_method_id":"pix"}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestBillingPaymentUseCase_CreateAndApprove_GatewayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "customer not found", err: errors.New(`{"code":2002}`), want: ErrPaymentGatewayCustomerNotFound},
		{name: "invalid users", err: errors.New(`invalid users involved`), want: ErrPaymentGatewayInvalidUsers},
		{name: "unauthorized", err: errors.New(`{"error":"unauthorized"}`), want: ErrPaymentGatewayUnauthorized},
		{name: "bad request", err: errors.New(`{"status":400}`), want: ErrPaymentGatewayBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newPaymentUseCase(t, PaymentSandbox{})
			m.estRepo.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(10), true)
			m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, tc.err)

			_, err := uc.CreateAndApprove(context.Background(), "est-1", json.RawMessage(validPayload))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("unknown gateway error", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSandbox{})
		m.estRepo.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(10), true)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New("boom"))

		_, err := uc.CreateAndApprove(context.Background(), "est-1", json.RawMessage(validPayload))
		if err == nil || err.Error() != "boom" {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}

func TestBillingPaymentUseCase_CreateAndApprove_SuccessAndStatuses(t *testing.T) {
	cases := []struct {
		name           string
		providerStatus string
		want           entities.PaymentStatus
		providerResp   json.RawMessage
	}{
		{name: "approved", providerStatus: "approved", want: entities.PaymentStatusAprovado, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "rejected", providerStatus: "rejected", want: entities.PaymentStatusNegado, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "pending default", providerStatus: "in_process", want: entities.PaymentStatusPendente, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "invalid provider response json", providerStatus: "approved", want: entities.PaymentStatusAprovado, providerResp: json.RawMessage(`{`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newPaymentUseCase(t, PaymentSandbox{Enabled: true, PayerUserID: "123", PayerEmail: "sandbox@test.com"})
			fixed := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
			uc.now = func() time.Time { return fixed }

			m.estRepo.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(77.2), true)
			m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
					var body map[string]any
					if err := json.Unmarshal(payload, &body); err != nil {
						t.Fatalf("payload should be valid json: %v", err)
					}
					if body["external_reference"] != "est-1" {
						t.Fatalf("external_reference not set")
					}
					if body["description"] != "Orçamento OR.0007" {
						t.Fatalf("unexpected description %v", body["description"])
					}
					if body["transaction_amount"] != float64(77.2) {
						t.Fatalf("transaction_amount should come from estimate")
					}
					payer := body["payer"].(map[string]any)
					if payer["email"] != "sandbox@test.com" || payer["id"] != nil {
						t.Fatalf("expected sandbox user id mapped to email, got %v", payer)
					}
					return "pay-1", tc.providerStatus, tc.providerResp, nil
				},
			)
			m.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.BillingPayment{})).DoAndReturn(
				func(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
					if p.ID != "pay-1" || p.EstimateID != "est-1" || p.Status != tc.want {
						t.Fatalf("unexpected payment: %+v", p)
					}
					if p.Amount != 77.2 || !p.Date.Equal(fixed) {
						t.Fatalf("unexpected amount/date: %+v", p)
					}
					return p, nil
				},
			)

			res, err := uc.CreateAndApprove(context.Background(), "est-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"id":"123"},"transaction_amount":1}`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != tc.want {
				t.Fatalf("expected status %s, got %s", tc.want, res.Status)
			}
		})
	}

	t.Run("repository create error", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSandbox{})
		m.estRepo.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(11), true)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("pay-1", "approved", json.RawMessage(`{"id":123}`), nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.BillingPayment{}, errors.New("db-create"))

		_, err := uc.CreateAndApprove(context.Background(), "est-1", json.RawMessage(validPayload))
		if err == nil || err.Error() != "db-create" {
			t.Fatalf("expected db-create error, got %v", err)
		}
	})
}

func TestBillingPaymentUseCase_Getters(t *testing.T) {
	t.Run("GetByID invalid", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSandbox{}, nil)
		if _, err := uc.GetByID(context.Background(), ""); !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("GetByID repo error", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSandbox{})
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.BillingPayment{}, errors.New("db"))

		if _, err := uc.GetByID(context.Background(), "id-1"); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("GetByID not found", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSandbox{})
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.BillingPayment{}, nil)

		if _, err := uc.GetByID(context.Background(), "id-1"); !errors.Is(err, ErrBillingPaymentNotFound) {
			t.Fatalf("expected ErrBillingPaymentNotFound, got %v", err)
		}
	})

	t.Run("GetByID success", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSandbox{})
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.BillingPayment{ID: "id-1"}, nil)

		res, err := uc.GetByID(context.Background(), " id-1 ")
		if err != nil || res.ID != "id-1" {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("ListByEstimateID invalid", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, PaymentSandbox{}, nil)
		if _, err := uc.ListByEstimateID(context.Background(), " "); !errors.Is(err, ErrInvalidPaymentEstimateID) {
			t.Fatalf("expected ErrInvalidPaymentEstimateID, got %v", err)
		}
	})

	t.Run("ListByEstimateID success", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSandbox{})
		m.repo.EXPECT().ListByEstimateID(gomock.Any(), "est-1").Return([]entities.BillingPayment{{ID: "p1"}}, nil)

		res, err := uc.ListByEstimateID(context.Background(), " est-1 ")
		if err != nil || len(res) != 1 || res[0].ID != "p1" {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})
}

func TestBillingPaymentUseCase_PayerHelpers(t *testing.T) {
	if hasNonEmptyString(map[string]any{"x": 1}, "x") || hasNonEmptyString(map[string]any{"x": "  "}, "x") {
		t.Fatalf("expected false for non-string or blank")
	}
	if hasPayer(map[string]any{"payer": "x"}) || hasPayer(map[string]any{"payer": map[string]any{}}) {
		t.Fatalf("expected false for invalid payer")
	}
	if !hasPayer(map[string]any{"payer": map[string]any{"id": 10}}) {
		t.Fatalf("expected true with numeric id")
	}
	if hasPayerID(map[string]any{"id": nil}) || hasPayerID(map[string]any{"id": " "}) {
		t.Fatalf("expected false for nil/blank id")
	}
}
