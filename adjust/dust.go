package adjust

import "github.com/finbridge/foliosync"

// dustCorrection absorbs the tiny residual quantity that fee and rounding
// discrepancies leave on a closed crypto position. The residual is folded
// into the closing sell: its quantity grows to cover the dust and its unit
// price rescales so the proceeds are unchanged.
//
// Gated by a feature flag and a value threshold; only crypto holdings
// qualify. The correction applies only when the closing sell is the last
// quantity-bearing activity of the holding, so no real later trade can be
// silently rescaled away.
type dustCorrection struct {
	settings foliosync.Settings
}

func (dustCorrection) Priority() int { return priorityDustCorrection }

func (d dustCorrection) Execute(h *foliosync.Holding) error {
	if !d.settings.DustCorrection || !d.settings.DustThreshold.IsPositive() || !isCrypto(d.settings, h.Profile) {
		return nil
	}
	h.Sort()

	var net foliosync.Quantity
	var closing *foliosync.Activity
	closingIndex := -1
	for i, a := range h.Activities {
		if !a.HasQuantity() {
			continue
		}
		net = net.Add(a.Quantity)
		if a.Quantity.IsNegative() {
			closing, closingIndex = a, i
		}
	}
	if closing == nil || net.IsZero() {
		return nil
	}
	// Later real trades would be corrupted by a rescale; leave them alone.
	for _, a := range h.Activities[closingIndex+1:] {
		if a.HasQuantity() {
			return nil
		}
	}

	// A zero dust value carries no information (an unpriced closing trade),
	// not a correction worth applying.
	dustValue := net.Decimal().Mul(closing.UnitPrice.Amount())
	if dustValue.IsZero() || dustValue.Abs().GreaterThanOrEqual(d.settings.DustThreshold) {
		return nil
	}

	oldQuantity := closing.Quantity
	newQuantity := oldQuantity.Sub(net)
	if newQuantity.IsZero() {
		return nil
	}
	// Proceeds are preserved: quantity * price is unchanged by the rescale.
	closing.UnitPrice = closing.UnitPrice.Scale(oldQuantity.Div(newQuantity).Decimal())
	closing.Quantity = newQuantity
	closing.Traced("Dust correction", closing.Quantity, closing.UnitPrice)
	return nil
}
