package interfaces

import "orcafacil/internal/domain/entities"

// IEstimateExporter renders a list of estimates into a downloadable file.
type IEstimateExporter interface {
	Export(estimates []entities.Estimate) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// ILogoProcessor normalizes the company logo before it is persisted.
type ILogoProcessor interface {
	Normalize(logo string) (string, error)
}
