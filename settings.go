package foliosync

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Environment variables read by LoadSettings.
const (
	envStakeRewardMerge = "FOLIOSYNC_STAKE_REWARD_MERGE"
	envDustCorrection   = "FOLIOSYNC_DUST_CORRECTION"
	envDustThreshold    = "FOLIOSYNC_DUST_THRESHOLD"
)

// CryptoTable maps crypto symbols to their full names. It is constructed
// explicitly and passed by reference wherever crypto instruments must be
// recognized; there is no ambient global table.
type CryptoTable struct {
	names map[string]string
}

// NewCryptoTable creates a table from an explicit symbol to name mapping.
func NewCryptoTable(names map[string]string) *CryptoTable {
	table := &CryptoTable{names: make(map[string]string, len(names))}
	for symbol, name := range names {
		table.names[symbol] = name
	}
	return table
}

// DefaultCryptoTable covers the common coins.
func DefaultCryptoTable() *CryptoTable {
	return NewCryptoTable(map[string]string{
		"BTC":   "Bitcoin",
		"ETH":   "Ethereum",
		"ADA":   "Cardano",
		"SOL":   "Solana",
		"DOT":   "Polkadot",
		"MATIC": "Polygon",
		"ATOM":  "Cosmos",
		"XRP":   "XRP",
		"LTC":   "Litecoin",
		"DOGE":  "Dogecoin",
	})
}

// Name returns the full name registered for a crypto symbol.
func (t *CryptoTable) Name(symbol string) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.names[symbol]
	return name, ok
}

// Known reports whether the symbol is a registered crypto currency.
func (t *CryptoTable) Known(symbol string) bool {
	_, ok := t.Name(symbol)
	return ok
}

// Settings carries the configuration the adjustment pipeline consumes but
// does not own: the feature flags for the crypto-only strategies and the
// dust threshold.
type Settings struct {
	StakeRewardMerge bool
	DustCorrection   bool
	DustThreshold    decimal.Decimal
	Crypto           *CryptoTable
}

// DefaultSettings returns settings with both crypto workarounds disabled and
// the default crypto table.
func DefaultSettings() Settings {
	return Settings{Crypto: DefaultCryptoTable()}
}

// LoadSettings reads settings from the environment, seeded from a .env file
// when one is present in the working directory.
func LoadSettings() (Settings, error) {
	// A missing .env file is fine, the environment alone is enough.
	_ = godotenv.Load()

	settings := DefaultSettings()
	var err error
	if settings.StakeRewardMerge, err = boolEnv(envStakeRewardMerge); err != nil {
		return settings, err
	}
	if settings.DustCorrection, err = boolEnv(envDustCorrection); err != nil {
		return settings, err
	}
	if raw := os.Getenv(envDustThreshold); raw != "" {
		settings.DustThreshold, err = decimal.NewFromString(raw)
		if err != nil {
			return settings, fmt.Errorf("invalid %s %q: %w", envDustThreshold, raw, err)
		}
	}
	return settings, nil
}

func boolEnv(key string) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}
