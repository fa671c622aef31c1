package response

import (
	"orcafacil/internal/domain/entities"
	"orcafacil/internal/pricing"
	"time"
)

// EstimateResponse is the stored document plus the display strings the list and document views use.
type EstimateResponse struct {
	entities.Estimate
	StatusLabel       string `json:"statusLabel"`
	SubtotalFormatted string `json:"subtotalFormatado"`
	TotalFormatted    string `json:"totalFormatado"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	return EstimateResponse{
		Estimate:          e,
		StatusLabel:       e.Status.Label(),
		SubtotalFormatted: pricing.FormatCurrency(e.Subtotal),
		TotalFormatted:    pricing.FormatCurrency(e.Total),
	}
}

// EstimateSummaryResponse is one row of the estimate list.
type EstimateSummaryResponse struct {
	ID             string    `json:"id"`
	Number         string    `json:"numero"`
	Title          string    `json:"titulo"`
	ClientName     string    `json:"cliente"`
	Status         string    `json:"status"`
	StatusLabel    string    `json:"statusLabel"`
	Total          float64   `json:"total"`
	TotalFormatted string    `json:"totalFormatado"`
	UpdatedAt      time.Time `json:"dataAtualizacao"`
	UpdatedOn      string    `json:"dataAtualizacaoFormatada"`
}

func FromEstimates(list []entities.Estimate) []EstimateSummaryResponse {
	out := make([]EstimateSummaryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, EstimateSummaryResponse{
			ID:             e.ID,
			Number:         e.Number,
			Title:          e.Title,
			ClientName:     e.Client.Name,
			Status:         string(e.Status),
			StatusLabel:    e.Status.Label(),
			Total:          e.Total,
			TotalFormatted: pricing.FormatCurrency(e.Total),
			UpdatedAt:      e.UpdatedAt,
			UpdatedOn:      pricing.FormatDate(e.UpdatedAt.Format(time.RFC3339Nano)),
		})
	}
	return out
}
