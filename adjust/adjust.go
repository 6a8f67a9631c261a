// Package adjust implements the ordered pipeline of strategies that turns
// raw imported activity figures into adjusted ones.
//
// Each strategy mutates a holding's activities in place; later strategies
// observe earlier mutations, so the pipeline is strictly sequential within
// one holding. Distinct holdings share no state and can be processed
// concurrently. A failing or panicking holding is skipped; the other
// holdings are unaffected.
package adjust

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/finbridge/foliosync"
)

// Strategy priorities, ascending execution order.
const (
	priorityPopulate = iota + 1
	priorityDeterminePrice
	priorityStockSplit
	priorityStakeRewardMerge
	prioritySendAndReceive
	priorityDustCorrection
	priorityRound
)

// Strategy is one adjustment step. Execute mutates the holding in place and
// must degrade to a no-op for a holding with no activities, a nil profile or
// missing prices.
type Strategy interface {
	Priority() int
	Execute(h *foliosync.Holding) error
}

// Pipeline runs a fixed list of strategies, sorted once by ascending
// priority, against each holding.
type Pipeline struct {
	strategies []Strategy
}

// NewPipeline builds the full strategy list for the given settings.
// The list is fixed: there is no runtime registration.
func NewPipeline(settings foliosync.Settings) *Pipeline {
	return newPipeline(
		populateAdjusted{},
		determinePrice{},
		stockSplit{},
		stakeRewardMerge{settings: settings},
		sendAndReceiveRewrite{},
		dustCorrection{settings: settings},
		roundAdjusted{},
	)
}

func newPipeline(strategies ...Strategy) *Pipeline {
	p := &Pipeline{strategies: strategies}
	sort.SliceStable(p.strategies, func(i, j int) bool {
		return p.strategies[i].Priority() < p.strategies[j].Priority()
	})
	return p
}

// Strategies returns the strategies in execution order.
func (p *Pipeline) Strategies() []Strategy { return p.strategies }

// Run processes each holding through the whole pipeline, sequentially.
// A failing holding is logged and skipped; the joined errors are returned
// once every holding has been attempted.
func (p *Pipeline) Run(holdings []*foliosync.Holding) error {
	var errs error
	for _, h := range holdings {
		if err := p.apply(h); err != nil {
			log.Printf("skipping holding %q: %v", h.Symbol(), err)
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// RunConcurrent fans the holdings out to the given number of workers.
// Holdings share no state, so no locking is needed; cancellation applies
// between holdings, never mid-strategy.
func (p *Pipeline) RunConcurrent(ctx context.Context, holdings []*foliosync.Holding, workers int) error {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan *foliosync.Holding)
	errc := make(chan error, len(holdings))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for h := range jobs {
				if err := p.apply(h); err != nil {
					log.Printf("skipping holding %q: %v", h.Symbol(), err)
					errc <- err
				}
			}
		}()
	}

feed:
	for _, h := range holdings {
		if err := ctx.Err(); err != nil {
			errc <- err
			break feed
		}
		select {
		case <-ctx.Done():
			errc <- ctx.Err()
			break feed
		case jobs <- h:
		}
	}
	close(jobs)
	wg.Wait()
	close(errc)

	var errs error
	for err := range errc {
		errs = errors.Join(errs, err)
	}
	return errs
}

// isCrypto reports whether the holding's instrument is a crypto currency,
// by its profile subclass or by the configured symbol table. Some parsers
// emit profiles without a subclass, the table covers those.
func isCrypto(settings foliosync.Settings, p *foliosync.SymbolProfile) bool {
	if p == nil {
		return false
	}
	return p.IsCrypto() || settings.Crypto.Known(p.Symbol)
}

// apply runs every strategy, in priority order, against one holding.
// A panic in a strategy is converted into an error so that one malformed
// holding cannot abort a whole import run.
func (p *Pipeline) apply(h *foliosync.Holding) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("adjustment panic on holding %q: %v", h.Symbol(), r)
		}
	}()
	for _, s := range p.strategies {
		if err := s.Execute(h); err != nil {
			return fmt.Errorf("adjustment failed on holding %q: %w", h.Symbol(), err)
		}
	}
	return nil
}
