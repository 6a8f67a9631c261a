package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/finbridge/foliosync"
	"github.com/finbridge/foliosync/adjust"
)

type adjustCmd struct {
	inputFile  string
	outputFile string
	workers    int
}

func (*adjustCmd) Name() string     { return "adjust" }
func (*adjustCmd) Synopsis() string { return "run the adjustment pipeline over a holdings file" }
func (*adjustCmd) Usage() string {
	return `fsync adjust -i <holdings.jsonl> [-o <adjusted.jsonl>] [-workers <n>]

  Runs every adjustment strategy (price determination, stock splits, crypto
  workarounds, rounding) over each holding and writes the adjusted holdings
  as JSONL. Strategy toggles are read from the environment or a .env file.
`
}

func (p *adjustCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.inputFile, "i", "", "Holdings file to adjust (JSONL).")
	f.StringVar(&p.outputFile, "o", "", "Output file for adjusted holdings. Defaults to stdout.")
	f.IntVar(&p.workers, "workers", 1, "Number of holdings processed concurrently.")
}

func (p *adjustCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: the -i holdings file is required.")
		return subcommands.ExitUsageError
	}

	settings, err := foliosync.LoadSettings()
	if err != nil {
		return fail(err)
	}
	holdings, err := readHoldings(p.inputFile)
	if err != nil {
		return fail(err)
	}

	pipeline := adjust.NewPipeline(settings)
	if p.workers > 1 {
		err = pipeline.RunConcurrent(ctx, holdings, p.workers)
	} else {
		err = pipeline.Run(holdings)
	}
	if err != nil {
		// Failing holdings were skipped and logged; the rest is still written.
		fmt.Fprintln(os.Stderr, err)
	}

	w, closeOutput, werr := outputTo(p.outputFile)
	if werr != nil {
		return fail(werr)
	}
	defer closeOutput()
	if werr := foliosync.EncodeHoldings(w, holdings); werr != nil {
		return fail(werr)
	}
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
