package adjust

import "github.com/finbridge/foliosync"

// roundAdjusted clamps quantities and unit prices to the shared precision,
// both the raw figures and the adjusted ones, so downstream consumers never
// see the long decimal tails that split and merge arithmetic produces.
type roundAdjusted struct{}

func (roundAdjusted) Priority() int { return priorityRound }

func (roundAdjusted) Execute(h *foliosync.Holding) error {
	for _, a := range h.Activities {
		if !a.HasQuantity() {
			continue
		}
		a.Quantity = a.Quantity.Round(foliosync.AdjustedPrecision)
		a.UnitPrice = a.UnitPrice.Round(foliosync.AdjustedPrecision)
		a.AdjustedQuantity = a.AdjustedQuantity.Round(foliosync.AdjustedPrecision)
		a.AdjustedUnitPrice = a.AdjustedUnitPrice.Round(foliosync.AdjustedPrecision)
	}
	return nil
}
