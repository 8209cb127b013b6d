// Package reports renders read-only inventory reports. Report consumers see
// finalized state only; they never write.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/labstock-api/internal/domain"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/location"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
	"github.com/jhoicas/labstock-api/internal/domain/stocklevel"
)

// Report formats.
const (
	FormatPDF         = "pdf"
	FormatSpreadsheet = "xml"
)

// Row is one item line in a rendered report.
type Row struct {
	Name           string
	RegistryNumber string
	Quantity       int64
	Unit           string
	Minimum        int64
	Location       string
	Level          stocklevel.Level
}

// Report is the input handed to a generator.
type Report struct {
	LabCode     string
	LabName     string
	GeneratedAt time.Time
	Rows        []Row
}

// PDFGenerator renders a report to PDF bytes.
type PDFGenerator interface {
	Generate(report *Report) ([]byte, error)
}

// SheetGenerator renders a report to spreadsheet bytes.
type SheetGenerator interface {
	Generate(report *Report) ([]byte, error)
}

// UseCase builds per-lab inventory reports and hands them to a generator.
type UseCase struct {
	itemRepo repository.StockItemRepository
	labRepo  repository.LabRepository
	pdf      PDFGenerator
	sheet    SheetGenerator
}

// NewUseCase builds the use case.
func NewUseCase(itemRepo repository.StockItemRepository, labRepo repository.LabRepository, pdf PDFGenerator, sheet SheetGenerator) *UseCase {
	return &UseCase{itemRepo: itemRepo, labRepo: labRepo, pdf: pdf, sheet: sheet}
}

// Export renders the inventory of one lab in the requested format and returns
// the bytes plus a content type.
func (uc *UseCase) Export(ctx context.Context, labCode, format string) ([]byte, string, error) {
	lab, err := uc.labRepo.GetByCode(labCode)
	if err != nil {
		return nil, "", err
	}
	if lab == nil {
		return nil, "", domain.ErrNotFound
	}

	report, err := uc.build(lab)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case FormatPDF:
		data, err := uc.pdf.Generate(report)
		return data, "application/pdf", err
	case FormatSpreadsheet:
		data, err := uc.sheet.Generate(report)
		return data, "application/vnd.ms-excel", err
	default:
		return nil, "", fmt.Errorf("%w: unsupported report format %q", domain.ErrInvalidInput, format)
	}
}

func (uc *UseCase) build(lab *entity.Lab) (*Report, error) {
	report := &Report{
		LabCode:     lab.Code,
		LabName:     lab.Name,
		GeneratedAt: time.Now().UTC(),
	}
	// Labs hold at most a few hundred items; page through them all.
	const pageSize = 200
	for offset := 0; ; offset += pageSize {
		items, err := uc.itemRepo.ListByLab(lab.ID, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			report.Rows = append(report.Rows, Row{
				Name:           it.Name,
				RegistryNumber: it.RegistryNumber,
				Quantity:       it.Quantity,
				Unit:           it.Unit,
				Minimum:        it.MinimumQuantity,
				Location:       location.Of(it).String(),
				Level:          stocklevel.Evaluate(it.Quantity, it.MinimumQuantity),
			})
		}
		if len(items) < pageSize {
			return report, nil
		}
	}
}
