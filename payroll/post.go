package payroll

import (
	"github.com/warp/payroll-engine/generic"
)

// =============================================================================
// ENTRIES - Timecards, sales and service charges
// =============================================================================

// PostTimeCard records hours for an hourly employee. Posting the same date
// again overwrites its hours.
func (s *System) PostTimeCard(id, date, hours string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	pay, ok := e.Pay.(*HourlyPay)
	if !ok {
		return generic.ErrWrongVariant
	}
	day, err := generic.ParseDate("data", date)
	if err != nil {
		return err
	}
	h, err := generic.ParsePositive("horas", hours)
	if err != nil {
		return err
	}
	pay.TimeCards = upsertTimeCard(pay.TimeCards, TimeCard{Date: day, Hours: h})
	return nil
}

func (s *System) RemoveTimeCard(id, date string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	pay, ok := e.Pay.(*HourlyPay)
	if !ok {
		return generic.ErrWrongVariant
	}
	day, err := generic.ParseDate("data", date)
	if err != nil {
		return err
	}
	for i, c := range pay.TimeCards {
		if c.Date.Equal(day) {
			pay.TimeCards = append(pay.TimeCards[:i:i], pay.TimeCards[i+1:]...)
			return nil
		}
	}
	return generic.ErrEntryNotFound
}

// PostSale records a sale and returns its receipt handle.
func (s *System) PostSale(id, date, amount string) (string, error) {
	e, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	pay, ok := e.Pay.(*CommissionedPay)
	if !ok {
		return "", generic.ErrWrongVariant
	}
	day, err := generic.ParseDate("data", date)
	if err != nil {
		return "", err
	}
	value, err := generic.ParsePositive("valor", amount)
	if err != nil {
		return "", err
	}
	receipt := SalesReceipt{ID: s.NewHandle(), Date: day, Amount: value}
	pay.Sales = append(pay.Sales, receipt)
	return receipt.ID, nil
}

// RemoveSale removes exactly the receipt identified by handle.
func (s *System) RemoveSale(id, handle string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	pay, ok := e.Pay.(*CommissionedPay)
	if !ok {
		return generic.ErrWrongVariant
	}
	for i, r := range pay.Sales {
		if r.ID == handle {
			pay.Sales = append(pay.Sales[:i:i], pay.Sales[i+1:]...)
			return nil
		}
	}
	return generic.ErrEntryNotFound
}

// PostServiceCharge charges a union member and returns the charge handle.
func (s *System) PostServiceCharge(memberID, date, amount string) (string, error) {
	e, err := s.lookupMember(memberID)
	if err != nil {
		return "", err
	}
	day, err := generic.ParseDate("data", date)
	if err != nil {
		return "", err
	}
	value, err := generic.ParsePositive("valor", amount)
	if err != nil {
		return "", err
	}
	charge := ServiceCharge{ID: s.NewHandle(), Date: day, Amount: value}
	e.Union.Charges = append(e.Union.Charges, charge)
	return charge.ID, nil
}

func (s *System) RemoveServiceCharge(memberID, handle string) error {
	e, err := s.lookupMember(memberID)
	if err != nil {
		return err
	}
	for i, c := range e.Union.Charges {
		if c.ID == handle {
			e.Union.Charges = append(e.Union.Charges[:i:i], e.Union.Charges[i+1:]...)
			return nil
		}
	}
	return generic.ErrEntryNotFound
}
