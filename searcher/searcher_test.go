package searcher

import (
	"context"
	"testing"

	"github.com/pie-314/trx/errors"
	"github.com/pie-314/trx/provider"
	"github.com/pie-314/trx/search"
	pkgErrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingProvider struct {
	*provider.Static
	err error
}

func (f failingProvider) Search(ctx context.Context, query string) ([]provider.Package, error) {
	return nil, f.err
}

func resultNames(results Results) []string {
	names := make([]string, len(results.Packages))
	for i, r := range results.Packages {
		names[i] = r.Provider + ":" + r.Name
	}
	return names
}

func TestSearch(t *testing.T) {
	repo := provider.NewStatic("repo", []provider.Package{
		{Name: "firefox"},
		{Name: "vim"},
		{Name: "fox-news"},
	})
	aur := provider.NewStatic("aur", []provider.Package{
		{Name: "fox-news"},
		{Name: "foxtrot"},
	})
	s := New(zap.NewNop(), search.Options{}, provider.Registry{repo, aur})

	results := s.Search(context.Background(), "  fox ")
	assert.Equal(t, "fox", results.Query)
	assert.NoError(t, results.Err)
	require.Len(t, results.Packages, 4)
	assert.Equal(t, []string{
		"aur:foxtrot",
		"repo:fox-news",
		"aur:fox-news",
		"repo:firefox",
	}, resultNames(results))
	assert.Equal(t, search.Positions{0, 1, 2}, results.Packages[0].Positions)
	assert.Equal(t, results.Packages[1].Score, results.Packages[2].Score, "equal scores keep provider order")
	assert.Equal(t, search.Positions{0, 5, 6}, results.Packages[3].Positions)
}

func TestSearchEmptyQuery(t *testing.T) {
	s := New(zap.NewNop(), search.Options{}, provider.Registry{provider.Demo()})
	results := s.Search(context.Background(), "   ")
	assert.Equal(t, Results{Query: "", Packages: []Result{}}, results)
}

func TestSearchLimit(t *testing.T) {
	s := New(zap.NewNop(), search.Options{Limit: 2}, provider.Registry{provider.Demo()})
	results := s.Search(context.Background(), "fox")
	assert.Len(t, results.Packages, 2)
	assert.Equal(t, "fox", results.Packages[0].Name)
}

func TestNewKeepsMinScore(t *testing.T) {
	s := New(zap.NewNop(), search.Options{}, provider.Registry{provider.Demo()})
	assert.Equal(t, 0.0, s.opts.MinScore)
	assert.Equal(t, DefaultLimit, s.opts.Limit)

	s = New(zap.NewNop(), search.Options{MinScore: 2.1}, provider.Registry{provider.Demo()})
	assert.Equal(t, 2.1, s.opts.MinScore)
}

func TestSearchProviderFailure(t *testing.T) {
	broken := failingProvider{
		Static: provider.NewStatic("aur", nil),
		err:    pkgErrors.New("yay not found"),
	}
	s := New(zap.NewNop(), search.Options{}, provider.Registry{broken, provider.Demo()})

	results := s.Search(context.Background(), "vim")
	require.NotEmpty(t, results.Packages)
	assert.Equal(t, "vim", results.Packages[0].Name)
	assert.EqualError(t, results.Err, "aur: yay not found")
	require.IsType(t, errors.ProviderError{}, results.Err)
	assert.Equal(t, "aur", results.Err.(errors.ProviderError).Provider)
}

func TestSearchAllProvidersFail(t *testing.T) {
	s := New(zap.NewNop(), search.Options{}, provider.Registry{
		failingProvider{Static: provider.NewStatic("pacman", nil), err: pkgErrors.New("db locked")},
		failingProvider{Static: provider.NewStatic("aur", nil), err: pkgErrors.New("offline")},
	})
	results := s.Search(context.Background(), "vim")
	assert.Empty(t, results.Packages)
	assert.EqualError(t, results.Err, "pacman: db locked\naur: offline")
}

func TestSearchCancelled(t *testing.T) {
	s := New(zap.NewNop(), search.Options{}, provider.Registry{provider.Demo()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := s.Search(ctx, "vim")
	assert.Empty(t, results.Packages)
	assert.Equal(t, context.Canceled, results.Err)
}
