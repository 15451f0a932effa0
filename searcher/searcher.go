package searcher

import (
	"context"
	"strings"
	"sync"

	"github.com/pie-314/trx/errors"
	"github.com/pie-314/trx/provider"
	"github.com/pie-314/trx/search"
	"go.uber.org/zap"
)

const (
	// DefaultMinScore is the default for the min-score flag
	DefaultMinScore = 0.01
	// DefaultLimit caps result lists when no limit is configured
	DefaultLimit = 50
)

// Result is a ranked package
type Result struct {
	provider.Package
	Score     float64
	Positions search.Positions
}

// Results is the outcome of one search. Err aggregates provider failures and does not invalidate Packages.
type Results struct {
	Query    string
	Packages []Result
	Err      error
}

// Searcher queries every provider and ranks the combined packages by name
type Searcher struct {
	logger    *zap.Logger
	opts      search.Options
	providers provider.Registry
}

// New creates a Searcher. A zero Limit falls back to DefaultLimit. MinScore is used as given, so zero keeps every positive score.
func New(logger *zap.Logger, opts search.Options, providers provider.Registry) *Searcher {
	if opts.Limit == 0 {
		opts.Limit = DefaultLimit
	}
	return &Searcher{
		logger:    logger,
		opts:      opts,
		providers: providers,
	}
}

// Providers returns the providers searched, in tie-breaking order
func (s *Searcher) Providers() provider.Registry {
	return s.providers
}

// Search runs query against all providers concurrently and ranks the results best first
func (s *Searcher) Search(ctx context.Context, query string) Results {
	query = strings.TrimSpace(query)
	results := Results{Query: query, Packages: []Result{}}
	if query == "" {
		return results
	}

	lists := make([][]provider.Package, len(s.providers))
	providerErrs := make([]error, len(s.providers))
	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p provider.Provider) {
			defer wg.Done()
			lists[i], providerErrs[i] = p.Search(ctx, query)
		}(i, p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		results.Err = err
		return results
	}

	var errs errors.Errors
	var candidates []provider.Package
	for i, p := range s.providers {
		if providerErrs[i] != nil {
			s.logger.Warn("Provider search failed", zap.String("provider", p.Name()), zap.String("query", query), zap.Error(providerErrs[i]))
			errs.AddErr(errors.NewProviderError(p.Name(), providerErrs[i]))
			continue
		}
		candidates = append(candidates, lists[i]...)
	}
	results.Err = errs.ErrOrNil()

	names := make([]string, len(candidates))
	for i, p := range candidates {
		names[i] = p.Name
	}
	for _, match := range search.Rank(names, query, s.opts) {
		results.Packages = append(results.Packages, Result{
			Package:   candidates[match.Index],
			Score:     match.Score,
			Positions: match.Positions,
		})
	}
	s.logger.Debug("Search complete",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results.Packages)),
	)
	return results
}
