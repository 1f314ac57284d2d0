package model

import (
	"github.com/FACorreiaa/statement-ingest/pkg/money"
)

// Summary aggregates the imported transactions into per-direction totals
// for display. Credits carry the sum of non-negative amounts, Debits the
// absolute sum of negative ones.
type Summary struct {
	Credits *money.Money
	Debits  *money.Money
	Net     *money.Money
}

// Summary totals the result's transactions in the given currency.
func (r *ImportResult) Summary(currencyCode string) Summary {
	credits := money.Zero(currencyCode)
	debits := money.Zero(currencyCode)
	net := money.Zero(currencyCode)
	for _, tx := range r.Transactions {
		m := money.NewFromDecimal(tx.Amount, currencyCode)
		net = net.MustAdd(m)
		if m.IsNegative() {
			debits = debits.MustAdd(m.Abs())
		} else {
			credits = credits.MustAdd(m)
		}
	}
	return Summary{Credits: credits, Debits: debits, Net: net}
}
