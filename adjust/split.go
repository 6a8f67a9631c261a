package adjust

import (
	"fmt"

	"github.com/finbridge/foliosync"
)

// stockSplit retroactively rescales every activity dated strictly before a
// split: the unit price shrinks by before/after and the quantity grows by
// after/before, so the position value is preserved.
//
// Splits are applied in chronological order and each pass reads the already
// adjusted values of the previous pass, so multiple splits compound.
type stockSplit struct{}

func (stockSplit) Priority() int { return priorityStockSplit }

func (stockSplit) Execute(h *foliosync.Holding) error {
	if h.Profile == nil {
		return nil
	}
	for _, split := range h.Profile.SortedSplits() {
		if !split.Valid() {
			continue
		}
		reason := fmt.Sprintf("Stock split %s", split)
		for _, a := range h.Activities {
			if !a.HasQuantity() || !a.Date.Before(split.Date) {
				continue
			}
			a.AdjustedUnitPrice = a.AdjustedUnitPrice.Scale(split.Before.Div(split.After))
			a.AdjustedQuantity = a.AdjustedQuantity.Mul(foliosync.Q(split.After.Div(split.Before)))
			a.TraceAdjusted(reason)
		}
	}
	return nil
}
