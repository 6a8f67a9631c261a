package adjust

import "github.com/finbridge/foliosync"

// determinePrice sets a unit price on activities that have no inherent
// market price (transfers, gifts, staking rewards), using the earliest
// market data point on or after the activity's date. When no market data
// covers the date, the price keeps its seeded default; that is never fatal.
type determinePrice struct{}

func (determinePrice) Priority() int { return priorityDeterminePrice }

func (determinePrice) Execute(h *foliosync.Holding) error {
	if h.Profile == nil {
		return nil
	}
	for _, a := range h.Activities {
		switch a.Kind {
		case foliosync.KindReceive, foliosync.KindSend, foliosync.KindGift, foliosync.KindStakingReward:
		default:
			continue
		}
		point, ok := h.Profile.MarketData.FirstOnOrAfter(a.Date)
		if !ok {
			continue
		}
		a.AdjustedUnitPrice = foliosync.M(point.Close, h.Profile.Currency)
		a.TraceAdjusted("Determine price")
	}
	return nil
}
