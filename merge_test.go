package foliosync

import (
	"testing"
)

// countByOperation buckets a result set for compact assertions.
func countByOperation(orders []MergeOrder) map[Operation]int {
	counts := make(map[Operation]int)
	for _, o := range orders {
		counts[o.Operation]++
	}
	return counts
}

func TestMerge_Duplicate(t *testing.T) {
	existing := []*Holding{NewHolding(aapl(),
		NewBuySell("broker", MustParse("2025-01-10"), "A", Q(2), USD(100), USD(1)),
	)}
	imported := []*Holding{NewHolding(aapl(),
		NewBuySell("broker", MustParse("2025-01-10"), "A", Q(2), USD(100), USD(1)),
	)}

	orders := Merge(identityRates{}, existing, imported)
	if len(orders) != 1 {
		t.Fatalf("Merge() returned %d orders, want 1", len(orders))
	}
	if orders[0].Operation != OperationDuplicate {
		t.Errorf("Merge() operation = %q, want %q", orders[0].Operation, OperationDuplicate)
	}
	if orders[0].Order1 != existing[0].Activities[0] {
		t.Errorf("Merge() Order1 is not the recorded activity")
	}
}

func TestMerge_Updated(t *testing.T) {
	existing := []*Holding{NewHolding(aapl(),
		NewBuySell("broker", MustParse("2025-01-10"), "A", Q(2), USD(100), USD(10)),
	)}
	imported := []*Holding{NewHolding(aapl(),
		NewBuySell("broker", MustParse("2025-01-10"), "A", Q(2), USD(100), USD(20)),
	)}

	orders := Merge(identityRates{}, existing, imported)
	if len(orders) != 1 {
		t.Fatalf("Merge() returned %d orders, want 1", len(orders))
	}
	o := orders[0]
	if o.Operation != OperationUpdated {
		t.Fatalf("Merge() operation = %q, want %q", o.Operation, OperationUpdated)
	}
	if o.Order1 != existing[0].Activities[0] {
		t.Errorf("Updated Order1 is not the recorded activity")
	}
	if o.Order2 != imported[0].Activities[0] {
		t.Errorf("Updated Order2 is not the imported activity")
	}
}

func TestMerge_AbsenceSymmetry(t *testing.T) {
	holding := func() *Holding {
		return NewHolding(aapl(),
			NewBuySell("broker", MustParse("2025-01-10"), "A", Q(1), USD(10)),
			NewBuySell("broker", MustParse("2025-02-10"), "B", Q(1), USD(11)),
		)
	}

	// Symbol only on the imported side: everything is new.
	orders := Merge(identityRates{}, nil, []*Holding{holding()})
	if got := countByOperation(orders); got[OperationNew] != 2 || len(orders) != 2 {
		t.Errorf("Merge(nil, h) = %v, want 2 new", got)
	}

	// Symbol only on the recorded side: everything is removed.
	orders = Merge(identityRates{}, []*Holding{holding()}, nil)
	if got := countByOperation(orders); got[OperationRemoved] != 2 || len(orders) != 2 {
		t.Errorf("Merge(h, nil) = %v, want 2 removed", got)
	}
}

func TestMerge_Idempotence(t *testing.T) {
	build := func() []*Holding {
		return []*Holding{
			NewHolding(aapl(),
				NewBuySell("broker", MustParse("2025-01-10"), "A", Q(2), USD(100), USD(1)),
				NewDividend("broker", MustParse("2025-03-01"), "B", USD(12)),
			),
			NewHolding(nil,
				NewActivity(KindCashDepositWithdrawal, "bank", MustParse("2025-01-02"), "C"),
			),
		}
	}

	orders := Merge(identityRates{}, build(), build())
	if len(orders) != 3 {
		t.Fatalf("Merge() returned %d orders, want 3", len(orders))
	}
	for _, o := range orders {
		if o.Operation != OperationDuplicate {
			t.Errorf("Merge(x, x) produced %q for tx %s, want only duplicates", o.Operation, o.Order1.TransactionID)
		}
	}
}

func TestMerge_Totality(t *testing.T) {
	existing := []*Holding{
		NewHolding(aapl(),
			NewBuySell("broker", MustParse("2025-01-10"), "A", Q(1), USD(10)),
			NewBuySell("broker", MustParse("2025-01-11"), "GONE", Q(1), USD(10)),
		),
		NewHolding(btc(),
			NewBuySell("exchange", MustParse("2025-01-12"), "X", Q(1), USD(50000)),
		),
	}
	imported := []*Holding{
		NewHolding(aapl(),
			NewBuySell("broker", MustParse("2025-01-10"), "A", Q(1), USD(10)),
			NewBuySell("broker", MustParse("2025-01-20"), "FRESH", Q(2), USD(12)),
		),
	}

	orders := Merge(identityRates{}, existing, imported)

	// Every activity in existing ∪ imported appears in exactly one order.
	seen := make(map[*Activity]int)
	for _, o := range orders {
		seen[o.Order1]++
		if o.Order2 != nil {
			seen[o.Order2]++
		}
	}
	var all []*Activity
	for _, h := range append(existing, imported...) {
		all = append(all, h.Activities...)
	}
	// The duplicate "A" pair is reported once through its recorded side.
	for _, a := range all {
		if a.TransactionID == "A" && seen[a] == 0 {
			continue
		}
		if seen[a] != 1 {
			t.Errorf("activity %s appears in %d orders, want 1", a.TransactionID, seen[a])
		}
	}

	want := map[Operation]int{
		OperationDuplicate: 1, // A
		OperationNew:       1, // FRESH
		OperationRemoved:   2, // GONE and the whole BTC holding
	}
	got := countByOperation(orders)
	for op, n := range want {
		if got[op] != n {
			t.Errorf("Merge() produced %d %q orders, want %d", got[op], op, n)
		}
	}
}

func TestMerge_CrossCurrencyDuplicate(t *testing.T) {
	// The same trade reported in a different currency is still a duplicate
	// when the converted amounts agree within tolerance.
	rates := stubRates{"EURUSD": 2, "USDEUR": 0.5}
	existing := []*Holding{NewHolding(aapl(),
		NewBuySell("broker", MustParse("2025-01-10"), "A", Q(2), USD(100), USD(2)),
	)}
	imported := []*Holding{NewHolding(aapl(),
		NewBuySell("broker", MustParse("2025-01-10"), "A", Q(2), EUR(50), EUR(1)),
	)}

	orders := Merge(rates, existing, imported)
	if len(orders) != 1 || orders[0].Operation != OperationDuplicate {
		t.Fatalf("Merge() = %v, want one duplicate", countByOperation(orders))
	}
}

func TestMerge_UnresolvedBucketPairsWithItself(t *testing.T) {
	existing := []*Holding{NewHolding(nil,
		NewActivity(KindInterest, "bank", MustParse("2025-01-02"), "I1"),
	)}
	imported := []*Holding{NewHolding(nil,
		NewActivity(KindInterest, "bank", MustParse("2025-01-02"), "I1"),
		NewActivity(KindInterest, "bank", MustParse("2025-02-02"), "I2"),
	)}

	orders := Merge(identityRates{}, existing, imported)
	got := countByOperation(orders)
	if got[OperationDuplicate] != 1 || got[OperationNew] != 1 || len(orders) != 2 {
		t.Errorf("Merge() = %v, want 1 duplicate and 1 new", got)
	}
}

func TestMerge_CurrencylessAmounts(t *testing.T) {
	// Some parsers emit cash amounts without naming a currency. With no
	// currency anywhere there is nothing to convert: identical bare amounts
	// are a duplicate, differing ones an update.
	build := func(amount float64) []*Holding {
		return []*Holding{NewHolding(nil,
			NewDividend("bank", MustParse("2025-01-02"), "D1", NO(amount)),
		)}
	}

	orders := Merge(identityRates{}, build(100), build(100))
	if len(orders) != 1 || orders[0].Operation != OperationDuplicate {
		t.Fatalf("Merge() same bare amounts = %v, want one duplicate", countByOperation(orders))
	}

	orders = Merge(identityRates{}, build(100), build(101))
	if len(orders) != 1 || orders[0].Operation != OperationUpdated {
		t.Fatalf("Merge() differing bare amounts = %v, want one updated", countByOperation(orders))
	}
}

func TestMerge_KindChangeIsUpdate(t *testing.T) {
	existing := []*Holding{NewHolding(aapl(),
		NewActivity(KindGift, "broker", MustParse("2025-01-10"), "A"),
	)}
	imported := []*Holding{NewHolding(aapl(),
		NewBuySell("broker", MustParse("2025-01-10"), "A", Q(0), Money{}),
	)}

	orders := Merge(identityRates{}, existing, imported)
	if len(orders) != 1 || orders[0].Operation != OperationUpdated {
		t.Fatalf("Merge() = %v, want one updated", countByOperation(orders))
	}
}
