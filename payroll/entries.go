package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// TimeCard records hours worked on one date. The date is its identity.
type TimeCard struct {
	Date  generic.TimePoint
	Hours decimal.Decimal
}

// Normal returns the hours paid at the regular rate (at most 8 per day).
func (c TimeCard) Normal() decimal.Decimal { return generic.Min(c.Hours, dailyHours) }

// Extra returns the hours beyond 8, paid at 1.5x.
func (c TimeCard) Extra() decimal.Decimal { return generic.Max(c.Hours.Sub(dailyHours), decimal.Zero) }

// SalesReceipt is one sale by a commissioned employee. Two receipts may carry
// the same date and amount; ID tells them apart.
type SalesReceipt struct {
	ID     string
	Date   generic.TimePoint
	Amount decimal.Decimal
}

// ServiceCharge is a union service fee, identified like SalesReceipt.
type ServiceCharge struct {
	ID     string
	Date   generic.TimePoint
	Amount decimal.Decimal
}

var dailyHours = decimal.NewFromInt(8)

// upsertTimeCard overwrites the card for the same date or inserts keeping date order.
func upsertTimeCard(cards []TimeCard, card TimeCard) []TimeCard {
	i := sort.Search(len(cards), func(i int) bool { return !cards[i].Date.Before(card.Date) })
	if i < len(cards) && cards[i].Date.Equal(card.Date) {
		cards[i].Hours = card.Hours
		return cards
	}
	cards = append(cards, TimeCard{})
	copy(cards[i+1:], cards[i:])
	cards[i] = card
	return cards
}

func sumSales(sales []SalesReceipt, in func(generic.TimePoint) bool) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		if in(s.Date) {
			total = total.Add(s.Amount)
		}
	}
	return total
}

func sumCharges(charges []ServiceCharge, in func(generic.TimePoint) bool) decimal.Decimal {
	total := decimal.Zero
	for _, c := range charges {
		if in(c.Date) {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// sumHours returns normal and extra hours of the cards accepted by in.
func sumHours(cards []TimeCard, in func(generic.TimePoint) bool) (normal, extra decimal.Decimal) {
	normal, extra = decimal.Zero, decimal.Zero
	for _, c := range cards {
		if in(c.Date) {
			normal = normal.Add(c.Normal())
			extra = extra.Add(c.Extra())
		}
	}
	return normal, extra
}
