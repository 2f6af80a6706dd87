package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/careops-billing/internal/model"
)

// Generator renders invoices with the core Helvetica font so no font files
// have to ship with the binary.
type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(doc model.InvoiceDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(doc.Invoice.InvoiceNumber, false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	invoice := doc.Invoice
	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice %s dated %s", invoice.InvoiceNumber, formatDate(invoice.GeneratedAt)), "", 1, "C", false, 0, "")
	if invoice.Status == model.InvoiceStatusDraft {
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(0, 6, "DRAFT", "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	addBlock(pdf, g.fontName, tr, "Bill to", []string{
		doc.Contract.Authority.Name,
		fmt.Sprintf("Lot: %s", safeValue(doc.Contract.LotName)),
	})
	pdf.Ln(2)
	addBlock(pdf, g.fontName, tr, "Service user", []string{
		doc.Contract.ServiceUserName,
		fmt.Sprintf("Placement: %s", placementLabel(doc.Contract.Placement)),
		fmt.Sprintf("Region: %s", safeValue(doc.Contract.Region.Name)),
	})
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Billing period", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s to %s", formatDate(invoice.BillingPeriodStart), formatDate(invoice.BillingPeriodEnd)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	headers := []string{"Description", "Hours", "Rate", "Amount"}
	colWidths := []float64{95, 25, 30, 30}
	drawTableRow(pdf, g.fontName, tr, headers, colWidths, true)
	for _, item := range invoice.LineItems {
		drawTableRow(pdf, g.fontName, tr, []string{
			item.Description,
			formatOptional(item.Hours, 2),
			formatMoney(item.Rate),
			formatAmount(item.Amount),
		}, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Total due: %s", formatAmount(invoice.TotalAmount))), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addBlock(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, title string, lines []string) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func placementLabel(p *model.Placement) string {
	if p == nil {
		return "unplaced"
	}
	return fmt.Sprintf("%s, %s", p.ServiceName, p.RoomNumber)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("£%.2f", value)
}

func formatMoney(value *float64) string {
	if value == nil {
		return ""
	}
	return formatAmount(*value)
}

func formatOptional(value *float64, precision int) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%.*f", precision, *value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
