/*
Package report renders a computed payroll.

FORMATS:
  - Text (Write, WriteFile): the printable payroll sheet, one block per
    variant (HORISTAS, ASSALARIADOS, COMISSIONADOS) with per-block totals
    and the grand total. Money uses two decimals and a comma separator.
  - CSV (WriteCSV): one row per paycheck for spreadsheets.
  - PDF (WritePDF): the same blocks as the text sheet.

Rendering never changes the payroll; a write failure is returned as is and
callers decide how to report it.
*/
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

const ruleWidth = 127

var (
	rule       = strings.Repeat("=", ruleWidth)
	headerRule = strings.Repeat("=", 36)
)

// column layout per variant: header line and row format (name first, payment last)
var layouts = map[payroll.Kind]struct {
	header string
	row    string
}{
	payroll.KindHourly: {
		header: "Nome                                 Horas Extra Salario Bruto Descontos Salario Liquido Metodo",
		row:    "%-36s %5s %5s %13s %9s %15s %s",
	},
	payroll.KindSalaried: {
		header: "Nome                                             Salario Bruto Descontos Salario Liquido Metodo",
		row:    "%-48s %13s %9s %15s %s",
	},
	payroll.KindCommissioned: {
		header: "Nome                  Fixo     Vendas   Comissao Salario Bruto Descontos Salario Liquido Metodo",
		row:    "%-21s %8s %8s %8s %13s %9s %15s %s",
	},
}

// WriteFile writes the text sheet to path, replacing any existing file.
func WriteFile(path string, p *payroll.Payroll) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write renders the text sheet.
func Write(w io.Writer, p *payroll.Payroll) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "FOLHA DE PAGAMENTO DO DIA %s\n", p.Date)
	fmt.Fprintln(bw, headerRule)

	for _, g := range p.Groups {
		layout := layouts[g.Kind]
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, rule)
		fmt.Fprintln(bw, banner(g.Kind.Label()))
		fmt.Fprintln(bw, rule)
		fmt.Fprintln(bw, layout.header)
		fmt.Fprintln(bw, underline(layout.header))
		for _, pc := range g.Paychecks {
			fmt.Fprintln(bw, strings.TrimRight(fmt.Sprintf(layout.row, row(pc, g.Kind)...), " "))
		}
		fmt.Fprintln(bw)
		total := payroll.Paycheck{Name: "TOTAL " + g.Kind.Label()}
		applyTotals(&total, g.Total)
		fmt.Fprintln(bw, strings.TrimRight(fmt.Sprintf(layout.row, row(total, g.Kind)...), " "))
	}

	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "TOTAL FOLHA: %s\n", generic.FormatMoney(p.Total.Net))
	return bw.Flush()
}

// row returns the format arguments of a paycheck line for kind.
func row(pc payroll.Paycheck, kind payroll.Kind) []any {
	money, hours := generic.FormatMoney, generic.FormatHours
	switch kind {
	case payroll.KindHourly:
		return []any{clip(pc.Name, 36), hours(pc.NormalHours), hours(pc.ExtraHours),
			money(pc.Gross), money(pc.Deductions), money(pc.Net), pc.Payment}
	case payroll.KindCommissioned:
		return []any{clip(pc.Name, 21), money(pc.Base), money(pc.Sales), money(pc.Commission),
			money(pc.Gross), money(pc.Deductions), money(pc.Net), pc.Payment}
	default:
		return []any{clip(pc.Name, 48), money(pc.Gross), money(pc.Deductions), money(pc.Net), pc.Payment}
	}
}

func applyTotals(pc *payroll.Paycheck, t payroll.Totals) {
	pc.NormalHours, pc.ExtraHours = t.NormalHours, t.ExtraHours
	pc.Base, pc.Sales, pc.Commission = t.Base, t.Sales, t.Commission
	pc.Gross, pc.Deductions, pc.Net = t.Gross, t.Deductions, t.Net
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func banner(label string) string {
	head := strings.Repeat("=", 21) + " " + label + " "
	return head + strings.Repeat("=", ruleWidth-len(head))
}

// underline turns each header word into a run of '=' of the column width.
func underline(header string) string {
	var b strings.Builder
	for i, r := range header {
		if r == ' ' && (i+1 < len(header) && header[i+1] != ' ') {
			b.WriteByte(' ')
			continue
		}
		b.WriteByte('=')
	}
	return b.String()
}
