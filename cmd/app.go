// Package cmd implements the CLI application to reconcile and adjust
// imported activity files.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/finbridge/foliosync"
)

// Commands lists every subcommand of the application.
// A main package ranges over it to register them all.
var Commands = []subcommands.Command{
	&mergeCmd{},
	&adjustCmd{},
	&rateCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so a plain
// helper returning an exit status per error is enough.

// readHoldings decodes a JSONL holdings file.
func readHoldings(filename string) ([]*foliosync.Holding, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening holdings file %q: %w", filename, err)
	}
	defer f.Close()
	holdings, err := foliosync.DecodeHoldings(f)
	if err != nil {
		return nil, fmt.Errorf("error reading holdings file %q: %w", filename, err)
	}
	return holdings, nil
}

// outputTo returns the stream to write results to: stdout for "", a created
// file otherwise. The returned closer is a no-op for stdout.
func outputTo(filename string) (io.Writer, func() error, error) {
	if filename == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output file %q: %w", filename, err)
	}
	return f, f.Close, nil
}

// fail prints the error and returns the failure status, to keep Execute
// bodies short.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
