package interfaces

import (
	"context"
	"orcafacil/internal/domain/entities"
)

// IEstimateRepository is the document store: an ordered collection of estimates keyed by id.
//
// Reads never fail: missing or unreadable data is reported as an empty collection.
// Mutations rewrite the whole collection.
type IEstimateRepository interface {
	List(ctx context.Context) []entities.Estimate
	GetByID(ctx context.Context, id string) (entities.Estimate, bool)
	Upsert(ctx context.Context, e entities.Estimate) error
	Delete(ctx context.Context, id string) error
	NextNumber(ctx context.Context) string
}
