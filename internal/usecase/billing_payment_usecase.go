package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	ErrBillingPaymentNotFound         = errors.New("billing payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidPaymentEstimateID       = errors.New("invalid estimate_id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrEstimateNotApproved            = errors.New("estimate not approved")
	ErrEstimateNothingToCharge        = errors.New("estimate total is zero")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentSandbox describes the Mercado Pago test account used when the access token is a TEST- token.
type PaymentSandbox struct {
	Enabled     bool
	PayerEmail  string
	PayerUserID string
}

// IBillingPaymentUseCase charges an approved estimate through the payment gateway.
//
// The charged amount always comes from the stored estimate total, never from the request.
type IBillingPaymentUseCase interface {
	CreateAndApprove(ctx context.Context, estimateID string, mpPayload json.RawMessage) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BillingPayment, error)
}

type BillingPaymentUseCase struct {
	repo         interfaces.IBillingPaymentRepository
	estimateRepo interfaces.IEstimateRepository
	gateway      interfaces.IPaymentGateway
	sandbox      PaymentSandbox
	logger       *logrus.Logger
	now          func() time.Time
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(
	repo interfaces.IBillingPaymentRepository,
	estimateRepo interfaces.IEstimateRepository,
	gateway interfaces.IPaymentGateway,
	sandbox PaymentSandbox,
	logger *logrus.Logger,
) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{
		repo:         repo,
		estimateRepo: estimateRepo,
		gateway:      gateway,
		sandbox:      sandbox,
		logger:       logging.OrDiscard(logger),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *BillingPaymentUseCase) CreateAndApprove(ctx context.Context, estimateID string, mpPayload json.RawMessage) (entities.BillingPayment, error) {
	estimateID = strings.TrimSpace(estimateID)
	log := u.logger.WithFields(logrus.Fields{"estimate_id": estimateID, "payload_len": len(mpPayload)})
	log.Info("[payment][usecase] create-and-approve start")

	if estimateID == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentEstimateID
	}
	var reqMap map[string]any
	if len(mpPayload) == 0 || json.Unmarshal(mpPayload, &reqMap) != nil || reqMap == nil {
		log.Warn("[payment][usecase] invalid payload")
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}
	if u.gateway == nil {
		return entities.BillingPayment{}, ErrPaymentGatewayNotConfigured
	}

	est, ok := u.estimateRepo.GetByID(ctx, estimateID)
	if !ok {
		log.Warn("[payment][usecase] estimate not found")
		return entities.BillingPayment{}, ErrEstimateNotFound
	}
	if est.Status != entities.EstimateStatusAprovado {
		log.WithField("status", est.Status).Warn("[payment][usecase] estimate not approved")
		return entities.BillingPayment{}, ErrEstimateNotApproved
	}
	if est.Total <= 0 {
		return entities.BillingPayment{}, ErrEstimateNothingToCharge
	}

	if !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Warn("[payment][usecase] missing payment_method_id")
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}
	u.normalizeSandboxPayer(reqMap)
	u.ensurePayerDefaults(reqMap)
	if !hasPayer(reqMap) {
		log.Warn("[payment][usecase] missing/invalid payer")
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}

	// external_reference lets Mercado Pago events be reconciled with the estimate.
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = est.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Orçamento %s", est.Number)
	}
	reqMap["transaction_amount"] = est.Total

	payload, err := json.Marshal(reqMap)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.WithError(err).Error("[payment][usecase] payment gateway failed")
		return entities.BillingPayment{}, mapGatewayError(err)
	}
	log.WithFields(logrus.Fields{"provider_payment_id": providerPaymentID, "provider_status": providerStatus}).
		Info("[payment][usecase] payment gateway success")

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.WithError(err).Warn("[payment][usecase] provider response unmarshal failed")
	}

	p := entities.BillingPayment{
		ID:           providerPaymentID,
		EstimateID:   est.ID,
		Amount:       est.Total,
		Date:         u.now(),
		Status:       paymentStatusFromProvider(providerStatus),
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.WithField("payment_id", p.ID).WithError(err).Error("[payment][usecase] payment repository create failed")
		return entities.BillingPayment{}, err
	}
	log.WithFields(logrus.Fields{"payment_id": created.ID, "status": created.Status}).Info("[payment][usecase] create-and-approve success")
	return created, nil
}

func (u *BillingPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *BillingPaymentUseCase) ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BillingPayment, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return nil, ErrInvalidPaymentEstimateID
	}
	return u.repo.ListByEstimateID(ctx, estimateID)
}

// ensurePayerDefaults fills payer.type and, in sandbox, a test payer email when neither id nor email was sent.
func (u *BillingPaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if !u.sandbox.Enabled || hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if email := strings.TrimSpace(u.sandbox.PayerEmail); email != "" {
		payer["email"] = email
	} else {
		payer["email"] = "test_user_br@testuser.com"
	}
}

// normalizeSandboxPayer swaps the configured test user id for its email, which the sandbox accepts.
func (u *BillingPaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	if !u.sandbox.Enabled || u.sandbox.PayerUserID == "" || u.sandbox.PayerEmail == "" {
		return
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.sandbox.PayerUserID {
		return
	}

	payer["email"] = u.sandbox.PayerEmail
	delete(payer, "id")
	u.logger.Info("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusAprovado
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusNegado
	}
	return entities.PaymentStatusPendente
}

func mapGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}
