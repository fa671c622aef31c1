package repository

import (
	"context"
	"fmt"
	"strings"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	EstimatesKey = "orcamentos"

	estimateNumberPrefix = "OR."
)

// EstimateKVRepository persists every estimate as one JSON array under a single key.
//
// Storage model:
//   - key "orcamentos" holds the whole collection, in insertion order.
//   - every mutation is a full read-modify-write of that value.
//
// Without a locker two concurrent writers race and the last complete write wins.
type EstimateKVRepository struct {
	blob blob
}

var _ interfaces.IEstimateRepository = (*EstimateKVRepository)(nil)

// NewEstimateKVRepository builds the repository. locker may be nil.
func NewEstimateKVRepository(kv interfaces.IKeyValueStore, locker interfaces.ILocker, logger *logrus.Logger) *EstimateKVRepository {
	return &EstimateKVRepository{blob: blob{
		kv:     kv,
		locker: locker,
		key:    EstimatesKey,
		logger: logging.OrDiscard(logger),
		area:   "estimate",
	}}
}

func (r *EstimateKVRepository) List(ctx context.Context) []entities.Estimate {
	estimates, _ := r.load(ctx)
	return estimates
}

func (r *EstimateKVRepository) GetByID(ctx context.Context, id string) (entities.Estimate, bool) {
	for _, e := range r.List(ctx) {
		if e.ID == id {
			return e, true
		}
	}
	return entities.Estimate{}, false
}

// Upsert replaces the estimate with the same id in place, or appends it.
func (r *EstimateKVRepository) Upsert(ctx context.Context, e entities.Estimate) error {
	return r.blob.mutate(ctx, func(ctx context.Context) error {
		estimates, err := r.load(ctx)
		if err != nil {
			return err
		}

		replaced := false
		for i := range estimates {
			if estimates[i].ID == e.ID {
				estimates[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			estimates = append(estimates, e)
		}
		return r.blob.store(ctx, estimates)
	})
}

// Delete removes the estimate if present. Deleting an unknown id is not an error.
func (r *EstimateKVRepository) Delete(ctx context.Context, id string) error {
	return r.blob.mutate(ctx, func(ctx context.Context) error {
		estimates, err := r.load(ctx)
		if err != nil {
			return err
		}

		filtered := make([]entities.Estimate, 0, len(estimates))
		for _, e := range estimates {
			if e.ID != id {
				filtered = append(filtered, e)
			}
		}
		return r.blob.store(ctx, filtered)
	})
}

// NextNumber derives the next display number from the highest stored one.
// It reserves nothing: two callers may receive the same number.
func (r *EstimateKVRepository) NextNumber(ctx context.Context) string {
	var highest int64
	for _, e := range r.List(ctx) {
		n, ok := parseLeadingInt(strings.Replace(e.Number, estimateNumberPrefix, "", 1))
		if ok && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%04d", estimateNumberPrefix, highest+1)
}

// load returns an empty, non-nil collection when the key is absent or corrupt.
func (r *EstimateKVRepository) load(ctx context.Context) ([]entities.Estimate, error) {
	var estimates []entities.Estimate
	found, err := r.blob.load(ctx, &estimates)
	if err != nil {
		return []entities.Estimate{}, err
	}
	if !found || estimates == nil {
		return []entities.Estimate{}, nil
	}
	return estimates, nil
}
