package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/careops-billing/internal/model"
)

func sampleReport() model.Reconciliation {
	return model.Reconciliation{
		Totals: model.ReconciliationTotals{Expected: 9300, Invoiced: 9760, Received: 5000, VarianceInvoiced: 460, VarianceReceived: -4760, Outstanding: 4760},
		Rows: []model.ReconciliationRow{
			{ContractID: "contract-1", ServiceUserName: "John Smith", AuthorityName: "City Council", Expected: 5260, Invoiced: 6460, Variance: 1200, Status: model.ContractStatusActive},
			{ContractID: "contract-4", ServiceUserName: "Mary Jones", AuthorityName: "County: North/South", Expected: 4040, Invoiced: 3300, Variance: -740, Status: model.ContractStatusActive},
		},
	}
}

func TestGenerateWorkbook(t *testing.T) {
	content, err := NewGenerator().Generate(sampleReport(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Summary", "Contracts", "City Council", "County- North-South"}, file.GetSheetList())

	scope, err := file.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "All authorities", scope)
	generated, err := file.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", generated)
	expected, err := file.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "9300", expected)

	rows, err := file.GetRows("Contracts")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, contractHeaders, rows[0])
	assert.Equal(t, "John Smith", rows[1][1])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "9300", rows[3][4])
	assert.Equal(t, "460", rows[3][6])
}

func TestBuildSheetNameIsUniqueAndShort(t *testing.T) {
	used := map[string]struct{}{"Summary": {}}

	assert.Equal(t, "Summary-2", buildSheetName("Summary", used))

	long := "Metropolitan Borough Council of Somewhere Far Away"
	name := buildSheetName(long, used)
	assert.Len(t, name, 31)
	used[name] = struct{}{}

	second := buildSheetName(long, used)
	assert.Len(t, second, 31)
	assert.NotEqual(t, name, second)
	assert.Equal(t, "Authority", buildSheetName("  ", used))
}
