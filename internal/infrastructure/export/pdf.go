// Package export renders inventory reports to downloadable files.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lab name + code          │  Generated-at date      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Registry | Name | Qty | Unit | Min | Location | Lvl │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: row count + low/out totals                          │
//	└─────────────────────────────────────────────────────────────┘
package export

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/labstock-api/internal/application/reports"
	"github.com/jhoicas/labstock-api/internal/domain/stocklevel"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// MarotoPDFGenerator implements reports.PDFGenerator using Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate renders the report and returns the PDF bytes.
func (g *MarotoPDFGenerator) Generate(report *reports.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lab Inventory Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range report.Rows {
		m.AddRows(itemRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: lab name + code (left) and generation date (right).
func headerRow(report *reports.Report) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(report.LabName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Lab code: "+report.LabCode, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("INVENTORY REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Registry", 2, align.Left),
		h("Name", 4, align.Left),
		h("Qty", 1, align.Right),
		h("Unit", 1, align.Center),
		h("Min", 1, align.Right),
		h("Location", 2, align.Left),
		h("Level", 1, align.Center),
	)
}

func itemRow(r reports.Row) core.Row {
	levelColor := colorGray
	if r.Level.Alerting() {
		levelColor = colorAlert
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(r.RegistryNumber, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(r.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", r.Minimum), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(r.Location, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(string(r.Level), props.Text{
			Size: 8, Align: align.Center, Top: 1, Color: levelColor,
		})),
	)
}

func footerRow(report *reports.Report) core.Row {
	var low, out int
	for _, r := range report.Rows {
		switch r.Level {
		case stocklevel.Low:
			low++
		case stocklevel.Out:
			out++
		}
	}
	summary := fmt.Sprintf("%d items   |   %d low   |   %d out of stock", len(report.Rows), low, out)
	return row.New(8).Add(
		col.New(12).Add(text.New(summary, props.Text{
			Size: 8, Top: 2, Color: colorGray,
		})),
	)
}
