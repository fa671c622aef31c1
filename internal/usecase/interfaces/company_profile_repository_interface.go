package interfaces

import (
	"context"
	"orcafacil/internal/domain/entities"
)

// ICompanyProfileRepository persists the single company profile record.

type ICompanyProfileRepository interface {
	Get(ctx context.Context) entities.CompanyProfile
	Save(ctx context.Context, p entities.CompanyProfile) error
}
