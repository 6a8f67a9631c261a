package foliosync

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// moneyCmd is a specialized struct to read a money value from two fields.
type moneyCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a moneyCmd) Money() Money {
	return M(a.Amount, Currency(a.Currency))
}

// MarshalJSON implements the json.Marshaler interface for Activity, with a
// stable field order.
func (a *Activity) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", a.Kind)
	w.Append("account", a.Account)
	w.Append("date", a.Date)
	w.Append("transactionId", a.TransactionID)
	w.Optional("sortingPriority", a.SortingPriority)
	w.Optional("description", a.Description)
	w.Optional("id", a.ID)
	if a.HasQuantity() {
		w.Append("quantity", a.Quantity)
		w.Append("unitPrice", a.UnitPrice)
		w.Append("adjustedQuantity", a.AdjustedQuantity)
		w.Append("adjustedUnitPrice", a.AdjustedUnitPrice)
	}
	if !a.Amount.IsAbsent() {
		w.Append("amount", a.Amount)
	}
	if len(a.Fees) > 0 {
		w.Append("fees", a.Fees)
	}
	if len(a.Trace) > 0 {
		w.Append("trace", a.Trace)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Activity.
func (a *Activity) UnmarshalJSON(data []byte) error {
	var temp struct {
		Kind              ActivityKind `json:"kind"`
		Account           string       `json:"account"`
		Date              Date         `json:"date"`
		TransactionID     string       `json:"transactionId"`
		SortingPriority   int          `json:"sortingPriority"`
		Description       string       `json:"description"`
		ID                string       `json:"id"`
		Quantity          Quantity     `json:"quantity"`
		UnitPrice         Money        `json:"unitPrice"`
		AdjustedQuantity  Quantity     `json:"adjustedQuantity"`
		AdjustedUnitPrice Money        `json:"adjustedUnitPrice"`
		Amount            Money        `json:"amount"`
		Fees              []Money      `json:"fees"`
		Trace             []TraceEntry `json:"trace"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if !temp.Kind.Valid() {
		return fmt.Errorf("unknown activity kind %q", temp.Kind)
	}
	*a = Activity{
		Kind:              temp.Kind,
		Account:           temp.Account,
		Date:              temp.Date,
		TransactionID:     temp.TransactionID,
		SortingPriority:   temp.SortingPriority,
		Description:       temp.Description,
		ID:                temp.ID,
		Quantity:          temp.Quantity,
		UnitPrice:         temp.UnitPrice,
		AdjustedQuantity:  temp.AdjustedQuantity,
		AdjustedUnitPrice: temp.AdjustedUnitPrice,
		Amount:            temp.Amount,
		Fees:              temp.Fees,
		Trace:             temp.Trace,
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Holding.
func (h *Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	if h.Profile != nil {
		w.Append("profile", h.Profile)
	}
	w.Append("activities", h.Activities)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Holding.
func (h *Holding) UnmarshalJSON(data []byte) error {
	var temp struct {
		Profile    *SymbolProfile `json:"profile"`
		Activities []*Activity    `json:"activities"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	h.Profile, h.Activities = temp.Profile, temp.Activities
	return nil
}

// MarshalJSON implements the json.Marshaler interface for MergeOrder.
func (o MergeOrder) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("operation", o.Operation)
	if o.Profile != nil {
		w.Append("symbol", o.Profile.Symbol)
	}
	w.Append("order1", o.Order1)
	if o.Order2 != nil {
		w.Append("order2", o.Order2)
	}
	return w.MarshalJSON()
}

// EncodeHoldings writes holdings as JSONL, one holding per line.
func EncodeHoldings(w io.Writer, holdings []*Holding) error {
	enc := json.NewEncoder(w)
	for _, h := range holdings {
		if err := enc.Encode(h); err != nil {
			return fmt.Errorf("could not encode holding %q: %w", h.Symbol(), err)
		}
	}
	return nil
}

// DecodeHoldings reads holdings from a stream of JSONL data, one holding per
// line. Empty lines are skipped.
func DecodeHoldings(r io.Reader) ([]*Holding, error) {
	var holdings []*Holding
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		h := new(Holding)
		if err := json.Unmarshal(lineBytes, h); err != nil {
			return nil, fmt.Errorf("could not decode holding line %q: %w", string(lineBytes), err)
		}
		holdings = append(holdings, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return holdings, nil
}

// EncodeMergeOrders writes merge orders as JSONL, one order per line.
func EncodeMergeOrders(w io.Writer, orders []MergeOrder) error {
	enc := json.NewEncoder(w)
	for _, o := range orders {
		if err := enc.Encode(o); err != nil {
			return fmt.Errorf("could not encode merge order: %w", err)
		}
	}
	return nil
}
