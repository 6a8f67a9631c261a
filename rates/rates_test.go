package rates

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbridge/foliosync"
)

var mar1 = foliosync.NewDate(2024, time.March, 1)

func TestFixed(t *testing.T) {
	table := NewFixed().Set("EUR", "USD", decimal.NewFromFloat(1.25))

	rate, err := table.ConversionRate("EUR", "USD", mar1)
	if err != nil {
		t.Fatal(err)
	}
	if !rate.Equal(decimal.NewFromFloat(1.25)) {
		t.Errorf("EUR/USD = %s, want 1.25", rate)
	}

	// The reciprocal is registered too.
	rate, err = table.ConversionRate("USD", "EUR", mar1)
	if err != nil {
		t.Fatal(err)
	}
	if !rate.Equal(decimal.NewFromFloat(0.8)) {
		t.Errorf("USD/EUR = %s, want 0.8", rate)
	}

	// Identity needs no entry.
	rate, err = table.ConversionRate("NOK", "NOK", mar1)
	if err != nil {
		t.Fatal(err)
	}
	if !rate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("NOK/NOK = %s, want 1", rate)
	}

	if _, err := table.ConversionRate("NOK", "USD", mar1); !errors.Is(err, ErrNoRate) {
		t.Errorf("NOK/USD error = %v, want ErrNoRate", err)
	}
}

func TestFrankfurter(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/2024-03-01" {
			t.Errorf("path = %q, want /2024-03-01", r.URL.Path)
		}
		if from := r.URL.Query().Get("from"); from != "EUR" {
			t.Errorf("from = %q, want EUR", from)
		}
		w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2024-03-01","rates":{"USD":1.0837}}`))
	}))
	defer srv.Close()

	f := NewFrankfurterAt(srv.URL)
	rate, err := f.ConversionRate("EUR", "USD", mar1)
	if err != nil {
		t.Fatal(err)
	}
	if !rate.Equal(decimal.NewFromFloat(1.0837)) {
		t.Errorf("EUR/USD = %s, want 1.0837", rate)
	}

	// The second lookup is served from the cache.
	if _, err := f.ConversionRate("EUR", "USD", mar1); err != nil {
		t.Fatal(err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}

	// Identity never goes to the network.
	rate, err = f.ConversionRate("USD", "USD", mar1)
	if err != nil {
		t.Fatal(err)
	}
	if !rate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("USD/USD = %s, want 1", rate)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times after identity lookup, want 1", got)
	}
}

func TestFrankfurter_Errors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer srv.Close()
		if _, err := NewFrankfurterAt(srv.URL).ConversionRate("EUR", "USD", mar1); err == nil {
			t.Error("want an error on http 404")
		}
	})
	t.Run("pair missing from payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2024-03-01","rates":{}}`))
		}))
		defer srv.Close()
		if _, err := NewFrankfurterAt(srv.URL).ConversionRate("EUR", "USD", mar1); err == nil {
			t.Error("want an error when the rate is missing")
		}
	})
}
