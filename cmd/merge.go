package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/finbridge/foliosync"
	"github.com/finbridge/foliosync/rates"
)

type mergeCmd struct {
	existingFile string
	importedFile string
	outputFile   string
	offline      bool
}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "diff imported holdings against recorded ones" }
func (*mergeCmd) Usage() string {
	return `fsync merge -e <existing.jsonl> -i <imported.jsonl> [-o <orders.jsonl>] [-offline]

  Joins recorded and imported activities by transaction id and emits one merge
  order (new, updated, removed or duplicate) per activity, as JSONL.
`
}

func (p *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.existingFile, "e", "", "Recorded holdings file (JSONL).")
	f.StringVar(&p.importedFile, "i", "", "Imported holdings file (JSONL).")
	f.StringVar(&p.outputFile, "o", "", "Output file for merge orders. Defaults to stdout.")
	f.BoolVar(&p.offline, "offline", false, "Never fetch exchange rates; cross-currency amounts compare as updated.")
}

func (p *mergeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.existingFile == "" || p.importedFile == "" {
		fmt.Fprintln(os.Stderr, "Error: both -e and -i files are required.")
		return subcommands.ExitUsageError
	}

	existing, err := readHoldings(p.existingFile)
	if err != nil {
		return fail(err)
	}
	imported, err := readHoldings(p.importedFile)
	if err != nil {
		return fail(err)
	}

	var service foliosync.ExchangeRateService = rates.NewFrankfurter()
	if p.offline {
		service = rates.NewFixed()
	}

	orders := foliosync.Merge(service, existing, imported)

	w, closeOutput, err := outputTo(p.outputFile)
	if err != nil {
		return fail(err)
	}
	defer closeOutput()
	if err := foliosync.EncodeMergeOrders(w, orders); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
