package sequences

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/af-prep/internal/ratelimit"
	"github.com/jonathan/af-prep/internal/types"
	"golang.org/x/sync/errgroup"
)

// Result is one row of the sequence table. Found is false for unresolved genes.
type Result struct {
	Gene     string
	Sequence string
	Found    bool
}

// Entry returns the table row for r. Unresolved genes get an empty sequence.
func (r Result) Entry() types.ProteinSequenceEntry {
	if !r.Found {
		return types.ProteinSequenceEntry{TFGene: r.Gene}
	}
	return types.ProteinSequenceEntry{TFGene: r.Gene, AminoAcidSequence: r.Sequence}
}

// FetchOptions configures a batch fetch.
type FetchOptions struct {
	// Concurrency bounds parallel lookups; values below 1 mean sequential.
	Concurrency int
	// Interval is the minimum spacing between the start of two gene lookups.
	Interval time.Duration
	// OnResult, if set, is called once per gene as it completes, serialized.
	OnResult func(done, total int, r Result)
}

// FetchAll resolves every gene and returns results in the order of genes.
// Individual failures yield Found=false; only context cancellation returns an error.
func (c *Client) FetchAll(ctx context.Context, genes []string, opts FetchOptions) ([]Result, error) {
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	spacer := ratelimit.NewSpacer(opts.Interval)

	results := make([]Result, len(genes))
	var mu sync.Mutex
	done := 0

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, gene := range genes {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := spacer.Wait(gCtx); err != nil {
				return err
			}

			sequence, ok := c.FetchSequence(gCtx, gene)
			r := Result{Gene: gene, Sequence: sequence, Found: ok}
			results[i] = r

			if opts.OnResult != nil {
				mu.Lock()
				done++
				opts.OnResult(done, len(genes), r)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Count returns how many results were resolved.
func Count(results []Result) (found, missing int) {
	for _, r := range results {
		if r.Found {
			found++
		} else {
			missing++
		}
	}
	return found, missing
}
