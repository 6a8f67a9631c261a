package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"

	"github.com/finbridge/foliosync"
)

// writeHoldings encodes holdings into a fresh JSONL file under dir.
func writeHoldings(t *testing.T, dir, name string, holdings ...*foliosync.Holding) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	f, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := foliosync.EncodeHoldings(f, holdings); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestMergeCmd(t *testing.T) {
	dir := t.TempDir()
	on := foliosync.NewDate(2024, time.March, 1)
	profile := foliosync.NewSymbolProfile("AAPL", "YAHOO", foliosync.AssetClassEquity, foliosync.SubClassStock, "USD")

	recorded := foliosync.NewHolding(profile,
		foliosync.NewBuySell("main", on, "t1", foliosync.Q(10), foliosync.M(50, "USD")))
	imported := foliosync.NewHolding(profile,
		foliosync.NewBuySell("main", on, "t1", foliosync.Q(10), foliosync.M(50, "USD")),
		foliosync.NewBuySell("main", on.Add(1), "t2", foliosync.Q(5), foliosync.M(51, "USD")))

	existingFile := writeHoldings(t, dir, "existing.jsonl", recorded)
	importedFile := writeHoldings(t, dir, "imported.jsonl", imported)
	outputFile := filepath.Join(dir, "orders.jsonl")

	p := &mergeCmd{existingFile: existingFile, importedFile: importedFile, outputFile: outputFile, offline: true}
	if status := p.Execute(context.Background(), flag.NewFlagSet("merge", flag.ContinueOnError)); status != subcommands.ExitSuccess {
		t.Fatalf("exit status = %v, want success", status)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var order struct {
			Operation string `json:"operation"`
			Symbol    string `json:"symbol"`
		}
		if err := json.Unmarshal([]byte(line), &order); err != nil {
			t.Fatalf("invalid order line %q: %v", line, err)
		}
		got = append(got, order.Operation+" "+order.Symbol)
	}
	want := []string{"duplicate AAPL", "new AAPL"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge orders mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeCmd_MissingFlags(t *testing.T) {
	p := &mergeCmd{}
	if status := p.Execute(context.Background(), flag.NewFlagSet("merge", flag.ContinueOnError)); status != subcommands.ExitUsageError {
		t.Errorf("exit status = %v, want usage error", status)
	}
}
