package foliosync

import "slices"

// Holding aggregates all activities for one resolved symbol, or for the
// unresolved/cash bucket when Profile is nil.
//
// A Holding is a transient in-memory aggregate, rebuilt for every run; it is
// never persisted as such. Distinct holdings share no state, so they may be
// processed concurrently.
type Holding struct {
	Profile    *SymbolProfile
	Activities []*Activity
}

// NewHolding creates a holding for the given profile.
func NewHolding(profile *SymbolProfile, activities ...*Activity) *Holding {
	return &Holding{Profile: profile, Activities: activities}
}

// Symbol returns the profile's symbol, or "" for the unresolved/cash bucket.
func (h *Holding) Symbol() string {
	if h.Profile == nil {
		return ""
	}
	return h.Profile.Symbol
}

// Sort orders the activities by (date, transaction id, description).
// The sort is stable so same-key activities keep their imported order.
func (h *Holding) Sort() {
	slices.SortStableFunc(h.Activities, CompareActivities)
}

// Remove deletes the given activity from the holding. It is a no-op when the
// activity is not part of the holding.
func (h *Holding) Remove(a *Activity) {
	for i, cand := range h.Activities {
		if cand == a {
			h.Activities = slices.Delete(h.Activities, i, i+1)
			return
		}
	}
}
