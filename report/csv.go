package report

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/warp/payroll-engine/payroll"
)

// Row is one CSV line. Amounts use a '.' separator for spreadsheet import.
type Row struct {
	EmployeeID  int    `csv:"id"`
	Name        string `csv:"nome"`
	Kind        string `csv:"tipo"`
	PeriodStart string `csv:"inicio"`
	PeriodEnd   string `csv:"fim"`
	NormalHours string `csv:"horas"`
	ExtraHours  string `csv:"horas_extras"`
	Base        string `csv:"fixo"`
	Sales       string `csv:"vendas"`
	Commission  string `csv:"comissao"`
	Gross       string `csv:"bruto"`
	Deductions  string `csv:"descontos"`
	Net         string `csv:"liquido"`
	Payment     string `csv:"metodo"`
}

// Rows flattens the payroll in employee id order.
func Rows(p *payroll.Payroll) []*Row {
	var rows []*Row
	for _, pc := range p.Paychecks() {
		rows = append(rows, &Row{
			EmployeeID:  int(pc.EmployeeID),
			Name:        pc.Name,
			Kind:        string(pc.Kind),
			PeriodStart: pc.Period.Start.String(),
			PeriodEnd:   pc.Period.End.String(),
			NormalHours: pc.NormalHours.String(),
			ExtraHours:  pc.ExtraHours.String(),
			Base:        pc.Base.StringFixed(2),
			Sales:       pc.Sales.StringFixed(2),
			Commission:  pc.Commission.StringFixed(2),
			Gross:       pc.Gross.StringFixed(2),
			Deductions:  pc.Deductions.StringFixed(2),
			Net:         pc.Net.StringFixed(2),
			Payment:     pc.Payment,
		})
	}
	return rows
}

// WriteCSV writes a header line and one row per paycheck.
func WriteCSV(w io.Writer, p *payroll.Payroll) error {
	rows := Rows(p)
	if rows == nil {
		rows = []*Row{}
	}
	return gocsv.Marshal(rows, w)
}
