package foliosync

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// AssetClass is the broad class of a tradable instrument.
type AssetClass string

const (
	AssetClassEquity      AssetClass = "equity"
	AssetClassFixedIncome AssetClass = "fixed-income"
	AssetClassCommodity   AssetClass = "commodity"
	AssetClassRealEstate  AssetClass = "real-estate"
	AssetClassLiquidity   AssetClass = "liquidity"
)

// AssetSubClass refines the asset class.
type AssetSubClass string

const (
	SubClassStock          AssetSubClass = "stock"
	SubClassEtf            AssetSubClass = "etf"
	SubClassMutualFund     AssetSubClass = "mutual-fund"
	SubClassBond           AssetSubClass = "bond"
	SubClassCryptoCurrency AssetSubClass = "crypto-currency"
	SubClassPreciousMetal  AssetSubClass = "precious-metal"
)

// StockSplit records a share split event: Before shares become After shares
// on the given date.
type StockSplit struct {
	Date   Date            `json:"date"`
	Before decimal.Decimal `json:"before"`
	After  decimal.Decimal `json:"after"`
}

// Valid reports whether both legs of the ratio are positive, so the split can
// be applied without degenerate arithmetic.
func (s StockSplit) Valid() bool {
	return s.Before.IsPositive() && s.After.IsPositive()
}

func (s StockSplit) String() string {
	return fmt.Sprintf("%s:%s on %s", s.Before, s.After, s.Date)
}

// SymbolProfile is the identity of a tradable instrument, together with the
// market data and split records attached to it.
//
// Identity is carried by the five scalar fields; market data and splits are
// payload and never take part in equality.
type SymbolProfile struct {
	Symbol        string        `json:"symbol"`
	DataSource    string        `json:"dataSource"`
	AssetClass    AssetClass    `json:"assetClass"`
	AssetSubClass AssetSubClass `json:"assetSubClass"`
	Currency      Currency      `json:"currency"`

	MarketData PriceHistory `json:"marketData,omitempty"`
	Splits     []StockSplit `json:"splits,omitempty"`
}

// NewSymbolProfile creates a profile identified by the given five fields.
func NewSymbolProfile(symbol, dataSource string, class AssetClass, subClass AssetSubClass, currency Currency) *SymbolProfile {
	return &SymbolProfile{
		Symbol:        symbol,
		DataSource:    dataSource,
		AssetClass:    class,
		AssetSubClass: subClass,
		Currency:      currency,
	}
}

// Equal reports structural equality on the five identity fields.
// Two nil profiles are equal; they both stand for the unresolved/cash bucket.
func (p *SymbolProfile) Equal(o *SymbolProfile) bool {
	if p == nil || o == nil {
		return p == nil && o == nil
	}
	return p.Symbol == o.Symbol &&
		p.DataSource == o.DataSource &&
		p.AssetClass == o.AssetClass &&
		p.AssetSubClass == o.AssetSubClass &&
		p.Currency == o.Currency
}

// IsCrypto reports whether the profile describes a crypto currency instrument.
func (p *SymbolProfile) IsCrypto() bool {
	return p != nil && p.AssetSubClass == SubClassCryptoCurrency
}

// SortedSplits returns the split records in chronological order.
func (p *SymbolProfile) SortedSplits() []StockSplit {
	splits := slices.Clone(p.Splits)
	slices.SortFunc(splits, func(a, b StockSplit) int { return a.Date.Compare(b.Date) })
	return splits
}

func (p *SymbolProfile) String() string {
	if p == nil {
		return "<unresolved>"
	}
	return fmt.Sprintf("%s (%s, %s)", p.Symbol, p.DataSource, p.Currency)
}
