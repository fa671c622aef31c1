package repository

import (
	"context"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

const CompanyProfileKey = "empresa_config"

// CompanyProfileKVRepository keeps the single company profile as one JSON object.
type CompanyProfileKVRepository struct {
	blob blob
}

var _ interfaces.ICompanyProfileRepository = (*CompanyProfileKVRepository)(nil)

func NewCompanyProfileKVRepository(kv interfaces.IKeyValueStore, logger *logrus.Logger) *CompanyProfileKVRepository {
	return &CompanyProfileKVRepository{blob: blob{
		kv:     kv,
		key:    CompanyProfileKey,
		logger: logging.OrDiscard(logger),
		area:   "company",
	}}
}

// Get returns the stored profile, or the default one when nothing readable is stored.
func (r *CompanyProfileKVRepository) Get(ctx context.Context) entities.CompanyProfile {
	var p entities.CompanyProfile
	found, err := r.blob.load(ctx, &p)
	if err != nil || !found {
		return entities.DefaultCompanyProfile()
	}
	return p
}

// Save overwrites the whole record.
func (r *CompanyProfileKVRepository) Save(ctx context.Context, p entities.CompanyProfile) error {
	return r.blob.store(ctx, p)
}
