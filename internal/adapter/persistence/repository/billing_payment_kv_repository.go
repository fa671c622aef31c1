package repository

import (
	"context"
	"errors"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

const PaymentsKey = "pagamentos"

var ErrPaymentAlreadyExists = errors.New("payment already exists")

// BillingPaymentKVRepository persists payments as one JSON array under "pagamentos".
//
// Lookups follow the repository convention: an empty struct (or nil slice) means not found.
type BillingPaymentKVRepository struct {
	blob blob
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentKVRepository)(nil)

func NewBillingPaymentKVRepository(kv interfaces.IKeyValueStore, locker interfaces.ILocker, logger *logrus.Logger) *BillingPaymentKVRepository {
	return &BillingPaymentKVRepository{blob: blob{
		kv:     kv,
		locker: locker,
		key:    PaymentsKey,
		logger: logging.OrDiscard(logger),
		area:   "payment",
	}}
}

func (r *BillingPaymentKVRepository) Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	err := r.blob.mutate(ctx, func(ctx context.Context) error {
		payments, err := r.load(ctx)
		if err != nil {
			return err
		}
		for _, existing := range payments {
			if existing.ID == p.ID {
				return ErrPaymentAlreadyExists
			}
		}
		return r.blob.store(ctx, append(payments, p))
	})
	if err != nil {
		return entities.BillingPayment{}, err
	}
	return p, nil
}

func (r *BillingPaymentKVRepository) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	payments, err := r.load(ctx)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	for _, p := range payments {
		if p.ID == id {
			return p, nil
		}
	}
	return entities.BillingPayment{}, nil
}

// ListByEstimateID returns the payments of an estimate in creation order.
func (r *BillingPaymentKVRepository) ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BillingPayment, error) {
	payments, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []entities.BillingPayment
	for _, p := range payments {
		if p.EstimateID == estimateID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *BillingPaymentKVRepository) load(ctx context.Context) ([]entities.BillingPayment, error) {
	var payments []entities.BillingPayment
	if _, err := r.blob.load(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
