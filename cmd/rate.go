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

type rateCmd struct {
	from string
	to   string
	date string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "look up an exchange rate" }
func (*rateCmd) Usage() string {
	return `fsync rate -from <currency> -to <currency> [-d <date>]

  Prints the (from -> to) exchange rate on the given date, today by default.
`
}

func (p *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.from, "from", "", "Source currency (e.g. EUR).")
	f.StringVar(&p.to, "to", "", "Target currency (e.g. USD).")
	f.StringVar(&p.date, "d", "", "Date of the rate (YYYY-MM-DD). Defaults to today.")
}

func (p *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.from == "" || p.to == "" {
		fmt.Fprintln(os.Stderr, "Error: both -from and -to currencies are required.")
		return subcommands.ExitUsageError
	}

	on := foliosync.Today()
	if p.date != "" {
		var err error
		on, err = foliosync.ParseDate(p.date)
		if err != nil {
			return fail(err)
		}
	}

	rate, err := rates.NewFrankfurter().ConversionRate(foliosync.Currency(p.from), foliosync.Currency(p.to), on)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s/%s on %s: %s\n", p.from, p.to, on, rate)
	return subcommands.ExitSuccess
}
