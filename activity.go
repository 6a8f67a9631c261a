package foliosync

import (
	"fmt"
	"strings"
)

// ActivityKind is a typed string discriminating the closed set of activity
// variants. The set is fixed; switches over it are meant to be exhaustive.
type ActivityKind string

const (
	KindBuySell               ActivityKind = "buy-sell"
	KindDividend              ActivityKind = "dividend"
	KindCashDepositWithdrawal ActivityKind = "cash-deposit-withdrawal"
	KindInterest              ActivityKind = "interest"
	KindFee                   ActivityKind = "fee"
	KindStakingReward         ActivityKind = "staking-reward"
	KindSend                  ActivityKind = "send"
	KindReceive               ActivityKind = "receive"
	KindSendAndReceive        ActivityKind = "send-and-receive"
	KindStockSplit            ActivityKind = "stock-split"
	KindGift                  ActivityKind = "gift"
	KindValuable              ActivityKind = "valuable"
	KindLiability             ActivityKind = "liability"
)

// allKinds lists every member of the closed set, for validation on decode.
var allKinds = []ActivityKind{
	KindBuySell, KindDividend, KindCashDepositWithdrawal, KindInterest,
	KindFee, KindStakingReward, KindSend, KindReceive, KindSendAndReceive,
	KindStockSplit, KindGift, KindValuable, KindLiability,
}

// Valid reports whether k belongs to the closed kind set.
func (k ActivityKind) Valid() bool {
	for _, kind := range allKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// HasQuantity reports whether activities of this kind carry a quantity and a
// unit price, and therefore adjusted values and a trace.
func (k ActivityKind) HasQuantity() bool {
	switch k {
	case KindBuySell, KindStakingReward, KindSend, KindReceive, KindSendAndReceive, KindGift:
		return true
	}
	return false
}

// TraceEntry records one mutation of an activity's figures, for audit.
type TraceEntry struct {
	Reason   string   `json:"reason"`
	Quantity Quantity `json:"quantity"`
	Price    Money    `json:"price"`
}

// Activity is a single financial event tied to an account and, through its
// holding, optionally to a symbol.
//
// Quantity and UnitPrice hold the figures as imported and are never touched
// after parsing, except by the bookkeeping strategies that fold activities
// into one another. AdjustedQuantity and AdjustedUnitPrice belong to the
// adjustment pipeline; every mutation of them is appended to Trace.
type Activity struct {
	Kind          ActivityKind
	Account       string
	Date          Date
	TransactionID string // parser-assigned idempotency key, not a database id

	SortingPriority int
	Description     string
	ID              string

	Quantity  Quantity
	UnitPrice Money
	Amount    Money // cash value for kinds without quantity (dividend, interest, fee...)
	Fees      []Money

	AdjustedQuantity  Quantity
	AdjustedUnitPrice Money
	Trace             []TraceEntry
}

// NewActivity creates an activity of the given kind with the common fields set.
func NewActivity(kind ActivityKind, account string, on Date, transactionID string) *Activity {
	return &Activity{Kind: kind, Account: account, Date: on, TransactionID: transactionID}
}

// NewBuySell creates a buy (positive quantity) or sell (negative quantity)
// activity.
func NewBuySell(account string, on Date, transactionID string, quantity Quantity, unitPrice Money, fees ...Money) *Activity {
	a := NewActivity(KindBuySell, account, on, transactionID)
	a.Quantity, a.UnitPrice, a.Fees = quantity, unitPrice, fees
	return a
}

// NewStakingReward creates a staking reward activity for the given quantity.
func NewStakingReward(account string, on Date, transactionID string, quantity Quantity) *Activity {
	a := NewActivity(KindStakingReward, account, on, transactionID)
	a.Quantity = quantity
	return a
}

// NewSendAndReceive creates a transfer activity that is both a send and a
// receive; the pipeline later rewrites it into a canonical buy/sell.
func NewSendAndReceive(account string, on Date, transactionID string, quantity Quantity, unitPrice Money, fees ...Money) *Activity {
	a := NewActivity(KindSendAndReceive, account, on, transactionID)
	a.Quantity, a.UnitPrice, a.Fees = quantity, unitPrice, fees
	return a
}

// NewDividend creates a dividend activity for the given cash amount.
func NewDividend(account string, on Date, transactionID string, amount Money) *Activity {
	a := NewActivity(KindDividend, account, on, transactionID)
	a.Amount = amount
	return a
}

// HasQuantity reports whether the activity carries a quantity and unit price.
func (a *Activity) HasQuantity() bool { return a.Kind.HasQuantity() }

// Traced appends an audit entry recording the given figures.
// The trace is append-only; prior entries are never overwritten.
func (a *Activity) Traced(reason string, quantity Quantity, price Money) {
	a.Trace = append(a.Trace, TraceEntry{Reason: reason, Quantity: quantity, Price: price})
}

// TraceAdjusted appends an audit entry recording the current adjusted figures.
func (a *Activity) TraceAdjusted(reason string) {
	a.Traced(reason, a.AdjustedQuantity, a.AdjustedUnitPrice)
}

func (a *Activity) String() string {
	return fmt.Sprintf("%s %s on %s (tx %s)", a.Kind, a.Account, a.Date, a.TransactionID)
}

// CompareActivities defines the total order used for deterministic diffing:
// by date, then transaction id, then description.
func CompareActivities(a, b *Activity) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	if c := strings.Compare(a.TransactionID, b.TransactionID); c != 0 {
		return c
	}
	return strings.Compare(a.Description, b.Description)
}
