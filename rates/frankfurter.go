// Package rates provides exchange rate services: a client for the public
// Frankfurter API and a fixed in-memory table for tests and offline runs.
package rates

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/go-resty/resty/v2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/finbridge/foliosync"
)

// DefaultBaseURL is the public Frankfurter endpoint.
const DefaultBaseURL = "https://api.frankfurter.app"

// Frankfurter fetches historical fiat exchange rates from the Frankfurter
// API. Historical rates never change, so every (from, to, date) lookup is
// cached forever and hits the network at most once per run.
type Frankfurter struct {
	client *resty.Client
	cache  *gocache.Cache
}

// NewFrankfurter creates a client against the public endpoint.
func NewFrankfurter() *Frankfurter { return NewFrankfurterAt(DefaultBaseURL) }

// NewFrankfurterAt creates a client against the given base URL.
func NewFrankfurterAt(baseURL string) *Frankfurter {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)

	return &Frankfurter{
		client: client,
		cache:  gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// ConversionRate returns the (from -> to) spot rate on the given date.
// Identical or absent currencies convert at 1 without any network call.
func (f *Frankfurter) ConversionRate(from, to foliosync.Currency, on foliosync.Date) (decimal.Decimal, error) {
	if from == to || from.IsZero() || to.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	key := from.String() + to.String() + "@" + on.String()
	if cached, ok := f.cache.Get(key); ok {
		return cached.(decimal.Decimal), nil
	}
	rate, err := f.fetch(from, to, on)
	if err != nil {
		return decimal.Decimal{}, err
	}
	f.cache.Set(key, rate, gocache.NoExpiration)
	return rate, nil
}

/*
	{
	    "amount": 1.0,
	    "base": "EUR",
	    "date": "2024-03-01",
	    "rates": {
	        "USD": 1.0837
	    }
	}
*/
func (f *Frankfurter) fetch(from, to foliosync.Currency, on foliosync.Date) (decimal.Decimal, error) {
	resp, err := f.client.R().
		SetQueryParam("from", from.String()).
		SetQueryParam("to", to.String()).
		Get("/" + on.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("error retrieving rate %s/%s: %w", from, to, err)
	}
	if resp.IsError() {
		return decimal.Decimal{}, fmt.Errorf("error retrieving rate %s/%s: status %s", from, to, resp.Status())
	}

	var jobj any
	if err := json.Unmarshal(resp.Body(), &jobj); err != nil {
		return decimal.Decimal{}, fmt.Errorf("error parsing rate %s/%s: %w", from, to, err)
	}
	path := "$.rates." + to.String()
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("error parsing rate %s/%s: %q %w", from, to, path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer or a
	// single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("error parsing rate %s/%s: %q not a float: %v", from, to, path, jval)
	}
	return decimal.NewFromFloat(val), nil
}
