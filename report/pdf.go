package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

// WritePDF renders the payroll as an A4 landscape document.
func WritePDF(w io.Writer, p *payroll.Payroll) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Folha de pagamento do dia %s", p.Date))
	pdf.Ln(12)

	money := generic.FormatMoney
	for _, g := range p.Groups {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 8, g.Kind.Label())
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 9)
		for _, h := range []struct {
			text  string
			width float64
		}{{"Nome", 80}, {"Periodo", 50}, {"Bruto", 28}, {"Descontos", 28}, {"Liquido", 28}, {"Metodo", 60}} {
			pdf.CellFormat(h.width, 6, h.text, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, pc := range g.Paychecks {
			pdf.CellFormat(80, 6, tr(pc.Name), "", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, pc.Period.Start.Format()+" - "+pc.Period.End.Format(), "", 0, "L", false, 0, "")
			pdf.CellFormat(28, 6, money(pc.Gross), "", 0, "R", false, 0, "")
			pdf.CellFormat(28, 6, money(pc.Deductions), "", 0, "R", false, 0, "")
			pdf.CellFormat(28, 6, money(pc.Net), "", 0, "R", false, 0, "")
			pdf.CellFormat(60, 6, tr(pc.Payment), "", 0, "L", false, 0, "")
			pdf.Ln(-1)
		}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(130, 6, "Total "+g.Kind.Label(), "T", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, money(g.Total.Gross), "T", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, money(g.Total.Deductions), "T", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, money(g.Total.Net), "T", 0, "R", false, 0, "")
		pdf.Ln(10)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total da folha: "+money(p.Total.Net))
	return pdf.Output(w)
}
