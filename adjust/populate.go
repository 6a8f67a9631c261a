package adjust

import "github.com/finbridge/foliosync"

// populateAdjusted seeds the adjusted fields from the raw imported figures.
// It runs first so that every later strategy reads adjusted values only.
type populateAdjusted struct{}

func (populateAdjusted) Priority() int { return priorityPopulate }

func (populateAdjusted) Execute(h *foliosync.Holding) error {
	for _, a := range h.Activities {
		if !a.HasQuantity() {
			continue
		}
		a.AdjustedQuantity = a.Quantity
		a.AdjustedUnitPrice = a.UnitPrice
		a.TraceAdjusted("Initial value")
	}
	return nil
}
