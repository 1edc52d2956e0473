package report

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"aliquotas/internal/models"
)

// ClientInfo identifies the organization the report is generated for. It is
// display data only.
type ClientInfo struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Summary is the portfolio-level block of the report.
type Summary struct {
	Client           ClientInfo
	GeneratedAt      time.Time
	RecordCount      int
	TotalCurrentRent decimal.Decimal
	TotalNewRent     decimal.Decimal
	TotalIncrease    decimal.Decimal
}

// LineItem is one per-property row of the report.
type LineItem struct {
	PropertyAddress      string
	TenantName           string
	IndexType            models.IndexType
	AdjustmentPercentage decimal.Decimal
	CurrentRent          decimal.Decimal
	NewRent              decimal.Decimal
	IncreaseAmount       decimal.Decimal
	EffectiveDate        time.Time
}

// BuildSummary computes the portfolio totals over the supplied records. An
// empty set yields a zero-totals summary, not an error.
func BuildSummary(records []models.RentAdjustment, client ClientInfo, now time.Time) Summary {
	totalCurrent := decimal.Zero
	totalNew := decimal.Zero
	for _, r := range records {
		totalCurrent = totalCurrent.Add(r.CurrentRent)
		totalNew = totalNew.Add(r.NewRent)
	}
	return Summary{
		Client:           client,
		GeneratedAt:      now,
		RecordCount:      len(records),
		TotalCurrentRent: totalCurrent,
		TotalNewRent:     totalNew,
		TotalIncrease:    totalNew.Sub(totalCurrent),
	}
}

// BuildLines maps records to report rows, preserving the supplied order.
func BuildLines(records []models.RentAdjustment) []LineItem {
	lines := make([]LineItem, 0, len(records))
	for _, r := range records {
		lines = append(lines, LineItem{
			PropertyAddress:      r.PropertyAddress,
			TenantName:           r.TenantName,
			IndexType:            r.IndexType,
			AdjustmentPercentage: r.AdjustmentPercentage,
			CurrentRent:          r.CurrentRent,
			NewRent:              r.NewRent,
			IncreaseAmount:       r.NewRent.Sub(r.CurrentRent),
			EffectiveDate:        r.EffectiveDate,
		})
	}
	return lines
}

// Generator renders the compliance report. Pure transform: it never touches
// persistence and never mutates record state; flipping is_generated is the
// caller's job after a successful render.
type Generator struct{}

// Render produces the PDF bytes: letterhead from the template, then the
// summary block, then one line-item block per record.
func (g *Generator) Render(records []models.RentAdjustment, client ClientInfo, tpl models.PDFTemplate, now time.Time) ([]byte, error) {
	summary := BuildSummary(records, client, now)
	lines := BuildLines(records)

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts take cp1252 strings; tr re-encodes the UTF-8 source so
	// accented characters survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr(tpl.FooterText), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Letterhead.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(tpl.LetterheadTitle), "", 1, "C", false, 0, "")
	if tpl.LetterheadSubtitle != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, tr(tpl.LetterheadSubtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	// Summary block.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Resumo", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	writeKV(pdf, tr, "Cliente", summary.Client.Name)
	if summary.Client.Document != "" {
		writeKV(pdf, tr, "Documento", summary.Client.Document)
	}
	writeKV(pdf, tr, "Data de emissão", summary.GeneratedAt.Format("02/01/2006"))
	writeKV(pdf, tr, "Imóveis", formatInt(summary.RecordCount))
	writeKV(pdf, tr, "Total aluguel atual", formatBRL(summary.TotalCurrentRent))
	writeKV(pdf, tr, "Total aluguel reajustado", formatBRL(summary.TotalNewRent))
	writeKV(pdf, tr, "Aumento total", formatBRL(summary.TotalIncrease))
	pdf.Ln(6)

	// Line items.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Reajustes por imóvel"), "B", 1, "L", false, 0, "")
	for i, line := range lines {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 7, tr(formatInt(i+1)+". "+line.PropertyAddress), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		writeKV(pdf, tr, "Inquilino", line.TenantName)
		writeKV(pdf, tr, "Índice", strings.ToUpper(string(line.IndexType))+" ("+line.AdjustmentPercentage.StringFixed(2)+"%)")
		writeKV(pdf, tr, "Aluguel atual", formatBRL(line.CurrentRent))
		writeKV(pdf, tr, "Novo aluguel", formatBRL(line.NewRent))
		writeKV(pdf, tr, "Aumento", formatBRL(line.IncreaseAmount))
		writeKV(pdf, tr, "Vigência", line.EffectiveDate.Format("02/01/2006"))
		pdf.Ln(3)
	}
	if len(lines) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 7, tr("Nenhum reajuste no período."), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeKV(pdf *gofpdf.Fpdf, tr func(string) string, key, value string) {
	pdf.CellFormat(55, 6, tr(key)+":", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

// formatBRL renders a decimal as Brazilian currency: R$ 1.234,56.
func formatBRL(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}
