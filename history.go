package foliosync

import (
	"encoding/json"
	"iter"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// PricePoint is a single market data observation for one day.
type PricePoint struct {
	Date  Date            `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// PriceHistory stores a chronological series of daily closing prices.
// It ensures that dates are unique and the series is always sorted.
type PriceHistory struct {
	days   []Date
	closes []decimal.Decimal
}

// Len returns the number of points in the history.
func (h *PriceHistory) Len() int { return len(h.days) }

// chronological is a private implementation to make this history chronologically sorted.
type chronological struct{ *PriceHistory }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.closes[i], s.closes[j] = s.closes[j], s.closes[i]
}

// sort sorts the history in chronological order.
func (h *PriceHistory) sort() { sort.Sort(chronological{h}) }

// Append adds a point to the history.
//
// An existing value at that date is overwritten.
func (h *PriceHistory) Append(on Date, close decimal.Decimal) *PriceHistory {
	if i := slices.Index(h.days, on); i >= 0 {
		// Found a point at that exact same day.
		// We choose to replace, because it will give higher priority to the last data
		h.closes[i] = close
		return h
	}
	h.days, h.closes = append(h.days, on), append(h.closes, close)
	h.sort()
	return h
}

// Get returns the closing price recorded exactly on that day.
func (h *PriceHistory) Get(on Date) (decimal.Decimal, bool) {
	if i := slices.Index(h.days, on); i >= 0 {
		return h.closes[i], true
	}
	return decimal.Decimal{}, false
}

// FirstOnOrAfter returns the earliest point dated on or after the given day.
// It returns false when no point covers that day.
func (h *PriceHistory) FirstOnOrAfter(on Date) (PricePoint, bool) {
	// The series is sorted, the first non-before day wins.
	for i, day := range h.days {
		if !day.Before(on) {
			return PricePoint{Date: day, Close: h.closes[i]}, true
		}
	}
	return PricePoint{}, false
}

// Values returns an iterator over all points in the history, in chronological order.
func (h *PriceHistory) Values() iter.Seq[PricePoint] {
	return func(yield func(PricePoint) bool) {
		for i, on := range h.days {
			if !yield(PricePoint{Date: on, Close: h.closes[i]}) {
				return
			}
		}
	}
}

// MarshalJSON encodes the history as a chronological array of points.
func (h PriceHistory) MarshalJSON() ([]byte, error) {
	points := make([]PricePoint, 0, len(h.days))
	for i, on := range h.days {
		points = append(points, PricePoint{Date: on, Close: h.closes[i]})
	}
	return json.Marshal(points)
}

// UnmarshalJSON decodes an array of points into a sorted history.
func (h *PriceHistory) UnmarshalJSON(data []byte) error {
	var points []PricePoint
	if err := json.Unmarshal(data, &points); err != nil {
		return err
	}
	h.days, h.closes = h.days[:0], h.closes[:0]
	for _, p := range points {
		h.Append(p.Date, p.Close)
	}
	return nil
}
