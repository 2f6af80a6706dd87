package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/careops-billing/internal/model"
)

const (
	summarySheet  = "Summary"
	contractSheet = "Contracts"
	maxSheetName  = 31
)

var contractHeaders = []string{
	"Contract",
	"Service user",
	"Authority",
	"Status",
	"Expected",
	"Invoiced",
	"Variance",
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a reconciliation as a workbook with a summary sheet, a
// sheet of every contract row and one sheet per authority.
func (g *Generator) Generate(report model.Reconciliation, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, report, generatedAt)

	if _, err := file.NewSheet(contractSheet); err != nil {
		return nil, err
	}
	g.writeRows(file, contractSheet, report.Rows)

	usedNames := map[string]struct{}{summarySheet: {}, contractSheet: {}}
	for _, group := range groupByAuthority(report.Rows) {
		sheetName := buildSheetName(group.name, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		g.writeRows(file, sheetName, group.rows)
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, report model.Reconciliation, generatedAt time.Time) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	scope := report.AuthorityID
	if scope == "" {
		scope = "All authorities"
	}
	set("A1", "Scope")
	set("B1", scope)
	set("A2", "Generated")
	set("B2", formatDate(generatedAt))
	set("A3", "Contracts")
	set("B3", len(report.Rows))

	totals := []struct {
		label string
		value float64
	}{
		{"Expected", report.Totals.Expected},
		{"Invoiced", report.Totals.Invoiced},
		{"Received", report.Totals.Received},
		{"Variance (invoiced)", report.Totals.VarianceInvoiced},
		{"Variance (received)", report.Totals.VarianceReceived},
		{"Outstanding", report.Totals.Outstanding},
	}
	for i, total := range totals {
		row := 5 + i
		set(fmt.Sprintf("A%d", row), total.label)
		set(fmt.Sprintf("B%d", row), total.value)
	}

	_ = file.SetColWidth(summarySheet, "A", "A", 24)
	_ = file.SetColWidth(summarySheet, "B", "B", 20)
}

func (g *Generator) writeRows(file *excelize.File, sheet string, rows []model.ReconciliationRow) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	for i, header := range contractHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	var expected, invoiced float64
	for i, r := range rows {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), r.ContractID)
		set(fmt.Sprintf("B%d", row), r.ServiceUserName)
		set(fmt.Sprintf("C%d", row), r.AuthorityName)
		set(fmt.Sprintf("D%d", row), string(r.Status))
		set(fmt.Sprintf("E%d", row), r.Expected)
		set(fmt.Sprintf("F%d", row), r.Invoiced)
		set(fmt.Sprintf("G%d", row), r.Variance)
		expected += r.Expected
		invoiced += r.Invoiced
	}

	totalRow := 2 + len(rows)
	set(fmt.Sprintf("A%d", totalRow), "Total")
	set(fmt.Sprintf("E%d", totalRow), round2(expected))
	set(fmt.Sprintf("F%d", totalRow), round2(invoiced))
	set(fmt.Sprintf("G%d", totalRow), round2(invoiced-expected))

	_ = file.SetColWidth(sheet, "A", "A", 16)
	_ = file.SetColWidth(sheet, "B", "C", 28)
	_ = file.SetColWidth(sheet, "D", "D", 12)
	_ = file.SetColWidth(sheet, "E", "G", 14)
}

type authorityGroup struct {
	name string
	rows []model.ReconciliationRow
}

// groupByAuthority keeps authorities in the order they first appear.
func groupByAuthority(rows []model.ReconciliationRow) []authorityGroup {
	index := map[string]int{}
	var groups []authorityGroup
	for _, r := range rows {
		i, ok := index[r.AuthorityName]
		if !ok {
			i = len(groups)
			index[r.AuthorityName] = i
			groups = append(groups, authorityGroup{name: r.AuthorityName})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	return groups
}

func buildSheetName(name string, used map[string]struct{}) string {
	base := sanitizeSheetName(name)
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > maxSheetName {
			trimmed = trimmed[:maxSheetName-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Authority"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Authority"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
