package export

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/jhoicas/labstock-api/internal/application/reports"
)

const ssNS = "urn:schemas-microsoft-com:office:spreadsheet"

// EtreeSheetGenerator implements reports.SheetGenerator as SpreadsheetML
// (Excel 2003 XML), which Excel and LibreOffice open directly.
type EtreeSheetGenerator struct{}

// NewEtreeSheetGenerator builds the generator.
func NewEtreeSheetGenerator() *EtreeSheetGenerator { return &EtreeSheetGenerator{} }

// Generate renders the report as a single-worksheet XML document.
func (g *EtreeSheetGenerator) Generate(report *reports.Report) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	workbook := doc.CreateElement("Workbook")
	workbook.CreateAttr("xmlns", ssNS)
	workbook.CreateAttr("xmlns:ss", ssNS)

	sheet := workbook.CreateElement("Worksheet")
	sheet.CreateAttr("ss:Name", sheetName(report))
	table := sheet.CreateElement("Table")

	addStringRow(table,
		"Registry Number", "Name", "Quantity", "Unit", "Minimum", "Location", "Stock Level",
	)
	for _, r := range report.Rows {
		row := table.CreateElement("Row")
		addCell(row, "String", r.RegistryNumber)
		addCell(row, "String", r.Name)
		addCell(row, "Number", fmt.Sprintf("%d", r.Quantity))
		addCell(row, "String", r.Unit)
		addCell(row, "Number", fmt.Sprintf("%d", r.Minimum))
		addCell(row, "String", r.Location)
		addCell(row, "String", string(r.Level))
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: serialize: %w", err)
	}
	return data, nil
}

// sheetName truncates to Excel's 31-character worksheet name limit.
func sheetName(report *reports.Report) string {
	name := report.LabName
	if name == "" {
		name = "Inventory"
	}
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}

func addStringRow(table *etree.Element, values ...string) {
	row := table.CreateElement("Row")
	for _, v := range values {
		addCell(row, "String", v)
	}
}

func addCell(row *etree.Element, typ, value string) {
	data := row.CreateElement("Cell").CreateElement("Data")
	data.CreateAttr("ss:Type", typ)
	data.SetText(value)
}
