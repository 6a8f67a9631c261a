package adjust

import "github.com/finbridge/foliosync"

// stakeRewardMerge folds crypto staking rewards into the most recent prior
// buy, as a weighted-average cost basis blend: the buy's quantity grows by
// the reward and its unit price shrinks so the total cost is unchanged.
// The reward activity is then removed from the holding.
//
// The strategy is gated by a feature flag and only applies to crypto
// instruments; a reward without an eligible prior buy is left alone.
type stakeRewardMerge struct {
	settings foliosync.Settings
}

func (stakeRewardMerge) Priority() int { return priorityStakeRewardMerge }

func (s stakeRewardMerge) Execute(h *foliosync.Holding) error {
	if !s.settings.StakeRewardMerge || !isCrypto(s.settings, h.Profile) {
		return nil
	}
	h.Sort()

	var rewards []*foliosync.Activity
	for _, a := range h.Activities {
		if a.Kind == foliosync.KindStakingReward {
			rewards = append(rewards, a)
		}
	}

	for _, reward := range rewards {
		buy := lastBuyBefore(h, reward)
		if buy == nil {
			continue
		}
		oldQuantity := buy.Quantity
		buy.Quantity = oldQuantity.Add(reward.Quantity)
		if buy.Quantity.IsZero() {
			// Degenerate blend, leave the reward alone.
			buy.Quantity = oldQuantity
			continue
		}
		buy.UnitPrice = buy.UnitPrice.Scale(oldQuantity.Div(buy.Quantity).Decimal())

		// Downstream valuation reads the adjusted pair, so the blend is
		// applied there too, on the already split-scaled values.
		oldAdjusted := buy.AdjustedQuantity
		buy.AdjustedQuantity = oldAdjusted.Add(reward.AdjustedQuantity)
		if !buy.AdjustedQuantity.IsZero() {
			buy.AdjustedUnitPrice = buy.AdjustedUnitPrice.Scale(oldAdjusted.Div(buy.AdjustedQuantity).Decimal())
		}
		buy.TraceAdjusted("Stake reward " + reward.TransactionID)
		h.Remove(reward)
	}
	return nil
}

// lastBuyBefore returns the most recent positive-quantity buy recorded
// before the reward, or nil.
func lastBuyBefore(h *foliosync.Holding, reward *foliosync.Activity) *foliosync.Activity {
	var buy *foliosync.Activity
	for _, a := range h.Activities {
		if a == reward {
			break
		}
		if a.Kind == foliosync.KindBuySell && a.Quantity.IsPositive() && !a.Date.After(reward.Date) {
			buy = a
		}
	}
	return buy
}
