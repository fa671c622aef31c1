package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/sirupsen/logrus"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway creates payments through the Mercado Pago SDK.
//
// In mock mode no request leaves the process: the payload is echoed back as an approved payment.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
	logger   *logrus.Logger
	now      func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, mockMode bool, logger *logrus.Logger) (*MercadoPagoGateway, error) {
	logger = logging.OrDiscard(logger)
	now := func() time.Time { return time.Now().UTC() }

	if mockMode {
		logger.Info("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, logger: logger, now: now}, nil
	}

	if accessToken == "" {
		logger.Warn("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		logger.WithError(err).Error("[payment][gateway] failed creating sdk config")
		return nil, err
	}
	logger.Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), logger: logger, now: now}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	if g.mockMode {
		return g.createMock(requestPayload)
	}
	if g.client == nil {
		g.logger.Error("[payment][gateway] gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	g.logger.WithField("payload_len", len(requestPayload)).Info("[payment][gateway] create start")

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		g.logger.WithError(err).Warn("[payment][gateway] payload unmarshal failed")
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.logger.WithError(err).Error("[payment][gateway] sdk create failed")
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	g.logger.WithFields(logrus.Fields{"provider_payment_id": resp.ID, "provider_status": resp.Status}).
		Info("[payment][gateway] create success")

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

func (g *MercadoPagoGateway) createMock(requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Unmarshal(requestPayload, &resp) != nil {
		resp = map[string]any{"request_payload_raw": string(requestPayload)}
	}

	now := g.now()
	id := strconv.FormatInt(now.UnixNano(), 10)
	stamp := now.Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	if _, ok := resp["date_created"]; !ok {
		resp["date_created"] = stamp
	}
	if _, ok := resp["date_approved"]; !ok {
		resp["date_approved"] = stamp
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	g.logger.WithField("provider_payment_id", id).Info("[payment][gateway] mock create success")
	return id, "approved", b, nil
}
