package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock-api/internal/application/reports"
	"github.com/jhoicas/labstock-api/internal/domain/stocklevel"
	"github.com/jhoicas/labstock-api/internal/infrastructure/export"
)

func sampleReport() *reports.Report {
	return &reports.Report{
		LabCode:     "3",
		LabName:     "Güç Elektroniği Laboratuvarı",
		GeneratedAt: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		Rows: []reports.Row{
			{Name: "Osiloskop", RegistryNumber: "EM-1001", Quantity: 4, Unit: "adet", Minimum: 2, Location: "workspace", Level: stocklevel.Ok},
			{Name: "Multimetre", RegistryNumber: "EM-1002", Quantity: 1, Unit: "adet", Minimum: 3, Location: "cabinet-2-upper", Level: stocklevel.Low},
			{Name: "Lehim Teli", RegistryNumber: "EM-2040", Quantity: 0, Unit: "makara", Minimum: 1, Location: "cabinet-1-lower", Level: stocklevel.Out},
		},
	}
}

func TestSheetGenerator_RowsAndCells(t *testing.T) {
	data, err := export.NewEtreeSheetGenerator().Generate(sampleReport())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))

	table := doc.FindElement("//Workbook/Worksheet/Table")
	require.NotNil(t, table)

	rows := table.FindElements("Row")
	require.Len(t, rows, 4) // header + 3 items

	header := rows[0].FindElements("Cell/Data")
	require.Len(t, header, 7)
	assert.Equal(t, "Registry Number", header[0].Text())
	assert.Equal(t, "Stock Level", header[6].Text())

	low := rows[2].FindElements("Cell/Data")
	require.Len(t, low, 7)
	assert.Equal(t, "EM-1002", low[0].Text())
	assert.Equal(t, "Multimetre", low[1].Text())
	assert.Equal(t, "1", low[2].Text())
	assert.Equal(t, "cabinet-2-upper", low[5].Text())
	assert.Equal(t, "low", low[6].Text())
	assert.Equal(t, "Number", low[2].SelectAttrValue("ss:Type", ""))
}

func TestSheetGenerator_SheetNameTruncated(t *testing.T) {
	rep := sampleReport()
	rep.LabName = strings.Repeat("Lab ", 20)

	data, err := export.NewEtreeSheetGenerator().Generate(rep)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))

	sheet := doc.FindElement("//Workbook/Worksheet")
	require.NotNil(t, sheet)
	name := sheet.SelectAttrValue("ss:Name", "")
	assert.Len(t, []rune(name), 31)
}

func TestSheetGenerator_ExcelProcInst(t *testing.T) {
	data, err := export.NewEtreeSheetGenerator().Generate(sampleReport())
	require.NoError(t, err)
	assert.Contains(t, string(data), `progid="Excel.Sheet"`)
}
