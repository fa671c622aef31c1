package export

import (
	"fmt"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/pricing"
	"orcafacil/internal/usecase/interfaces"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Orçamentos"

var headings = []string{"Número", "Título", "Cliente", "Status", "Subtotal", "Total", "Criado em", "Atualizado em"}

// XLSXExporter renders the estimate list as a single-sheet spreadsheet.
type XLSXExporter struct{}

var _ interfaces.IEstimateExporter = XLSXExporter{}

func NewXLSXExporter() XLSXExporter {
	return XLSXExporter{}
}

func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXExporter) FileExtension() string {
	return "xlsx"
}

func (XLSXExporter) Export(estimates []entities.Estimate) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	if err := writeRow(f, 1, toCells(headings)); err != nil {
		return nil, err
	}
	for i, e := range estimates {
		row := []any{
			e.Number,
			e.Title,
			e.Client.Name,
			e.Status.Label(),
			pricing.FormatCurrency(e.Subtotal),
			pricing.FormatCurrency(e.Total),
			pricing.FormatDate(e.CreatedAt.Format(time.RFC3339Nano)),
			pricing.FormatDate(e.UpdatedAt.Format(time.RFC3339Nano)),
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNo int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNo)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
