package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/subcommands"

	"github.com/finbridge/foliosync"
)

func TestAdjustCmd(t *testing.T) {
	dir := t.TempDir()
	on := foliosync.NewDate(2024, time.March, 1)
	profile := foliosync.NewSymbolProfile("AAPL", "YAHOO", foliosync.AssetClassEquity, foliosync.SubClassStock, "USD")
	h := foliosync.NewHolding(profile,
		foliosync.NewBuySell("main", on, "t1", foliosync.Q(10), foliosync.M(50, "USD")))

	inputFile := writeHoldings(t, dir, "holdings.jsonl", h)
	outputFile := filepath.Join(dir, "adjusted.jsonl")

	p := &adjustCmd{inputFile: inputFile, outputFile: outputFile, workers: 2}
	if status := p.Execute(context.Background(), flag.NewFlagSet("adjust", flag.ContinueOnError)); status != subcommands.ExitSuccess {
		t.Fatalf("exit status = %v, want success", status)
	}

	f, err := os.Open(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	adjusted, err := foliosync.DecodeHoldings(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(adjusted) != 1 || len(adjusted[0].Activities) != 1 {
		t.Fatalf("got %d holdings, want 1 with 1 activity", len(adjusted))
	}
	a := adjusted[0].Activities[0]
	if !a.AdjustedQuantity.Equal(foliosync.Q(10)) {
		t.Errorf("adjusted quantity = %s, want 10", a.AdjustedQuantity)
	}
	if !a.AdjustedUnitPrice.Equal(foliosync.M(50, "USD")) {
		t.Errorf("adjusted unit price = %s, want 50 USD", a.AdjustedUnitPrice)
	}
	if len(a.Trace) == 0 {
		t.Error("adjusted activity carries no trace")
	}
}
