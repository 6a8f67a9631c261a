package foliosync

import "github.com/shopspring/decimal"

// Operation classifies one reconciliation verdict.
type Operation string

const (
	OperationNew       Operation = "new"
	OperationUpdated   Operation = "updated"
	OperationRemoved   Operation = "removed"
	OperationDuplicate Operation = "duplicate"
)

// MergeOrder is one reconciliation verdict for a single logical transaction.
//
// Order1 is always present: the imported activity for new orders, the
// recorded one otherwise. Order2 is present only for updated orders and
// carries the imported side of the pair.
type MergeOrder struct {
	Operation Operation
	Profile   *SymbolProfile
	Order1    *Activity
	Order2    *Activity
}

// Merge diffs an existing holding set against a newly imported one and
// returns one merge order per activity in existing ∪ imported.
//
// Holdings are paired by structural profile equality (two nil profiles pair
// as the unresolved/cash bucket). Within a pair, activities are joined by
// transaction id: unmatched imported activities are new, unmatched recorded
// ones are removed, and matched pairs are duplicates when equal under the
// tolerant money comparison, updated otherwise.
//
// Merging a set against itself yields only duplicates, so repeated imports
// are idempotent. The engine never mutates activities; adjusted fields are
// owned by the adjustment pipeline.
func Merge(rates ExchangeRateService, existing, imported []*Holding) []MergeOrder {
	orders := make([]MergeOrder, 0)
	pairedExisting := make([]bool, len(existing))

	for _, imp := range imported {
		imp.Sort()

		var rec *Holding
		for i, cand := range existing {
			if !pairedExisting[i] && cand.Profile.Equal(imp.Profile) {
				rec, pairedExisting[i] = cand, true
				break
			}
		}

		if rec == nil {
			// Symbol only present on the imported side: everything is new.
			for _, a := range imp.Activities {
				orders = append(orders, MergeOrder{Operation: OperationNew, Profile: imp.Profile, Order1: a})
			}
			continue
		}

		rec.Sort()
		consumed := make([]bool, len(rec.Activities))
		for _, na := range imp.Activities {
			j := indexByTransactionID(rec.Activities, consumed, na.TransactionID)
			if j < 0 {
				orders = append(orders, MergeOrder{Operation: OperationNew, Profile: imp.Profile, Order1: na})
				continue
			}
			consumed[j] = true
			ea := rec.Activities[j]
			if activitiesEqual(rates, ea, na) {
				orders = append(orders, MergeOrder{Operation: OperationDuplicate, Profile: imp.Profile, Order1: ea})
			} else {
				orders = append(orders, MergeOrder{Operation: OperationUpdated, Profile: imp.Profile, Order1: ea, Order2: na})
			}
		}
		for j, ea := range rec.Activities {
			if !consumed[j] {
				orders = append(orders, MergeOrder{Operation: OperationRemoved, Profile: rec.Profile, Order1: ea})
			}
		}
	}

	// Symbols only present on the recorded side: everything is removed.
	for i, rec := range existing {
		if pairedExisting[i] {
			continue
		}
		rec.Sort()
		for _, a := range rec.Activities {
			orders = append(orders, MergeOrder{Operation: OperationRemoved, Profile: rec.Profile, Order1: a})
		}
	}
	return orders
}

// indexByTransactionID returns the first unconsumed activity carrying the
// given transaction id, or -1. Colliding ids across unrelated activities are
// treated as the same logical transaction; parsers are expected to emit
// globally unique ids per real transaction.
func indexByTransactionID(activities []*Activity, consumed []bool, transactionID string) int {
	for j, a := range activities {
		if !consumed[j] && a.TransactionID == transactionID {
			return j
		}
	}
	return -1
}

// activitiesEqual compares the recorded and imported side of a transaction id
// match, with epsilon tolerance on numbers and cross-currency equivalence on
// money fields.
func activitiesEqual(rates ExchangeRateService, recorded, imported *Activity) bool {
	if recorded.Kind != imported.Kind ||
		recorded.Account != imported.Account ||
		recorded.Date != imported.Date ||
		recorded.Description != imported.Description {
		return false
	}
	if !NumbersEqual(recorded.Quantity.Decimal(), imported.Quantity.Decimal()) {
		return false
	}

	// The recorded activity names the comparison currency; money on both
	// sides is converted to it at the recorded date.
	target := comparisonCurrency(recorded, imported)
	on := recorded.Date
	return moneysEqual(rates, target, on, []Money{recorded.UnitPrice}, []Money{imported.UnitPrice}) &&
		moneysEqual(rates, target, on, []Money{recorded.Amount}, []Money{imported.Amount}) &&
		moneysEqual(rates, target, on, recorded.Fees, imported.Fees)
}

// moneysEqual is MoneyEqual except that a pair without any comparison
// currency is decided without conversion: two sides carrying no money at all
// are equal, and bare amounts (no currency anywhere on either activity)
// compare directly with epsilon tolerance.
func moneysEqual(rates ExchangeRateService, target Currency, on Date, a, b []Money) bool {
	if allAbsent(a) && allAbsent(b) {
		return true
	}
	if target.IsZero() {
		return NumbersEqual(sumAmounts(a), sumAmounts(b))
	}
	return MoneyEqual(rates, target, on, a, b)
}

func sumAmounts(list []Money) decimal.Decimal {
	var sum decimal.Decimal
	for _, m := range list {
		sum = sum.Add(m.Amount())
	}
	return sum
}

func allAbsent(list []Money) bool {
	for _, m := range list {
		if !m.IsAbsent() {
			return false
		}
	}
	return true
}

// comparisonCurrency picks the first currency found on the recorded activity,
// falling back to the imported one. Zero when neither side carries money.
func comparisonCurrency(recorded, imported *Activity) Currency {
	for _, a := range []*Activity{recorded, imported} {
		if !a.UnitPrice.Currency().IsZero() {
			return a.UnitPrice.Currency()
		}
		if !a.Amount.Currency().IsZero() {
			return a.Amount.Currency()
		}
		for _, fee := range a.Fees {
			if !fee.Currency().IsZero() {
				return fee.Currency()
			}
		}
	}
	return ""
}
