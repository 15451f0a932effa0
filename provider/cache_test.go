package provider

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingProvider struct {
	Provider
	calls   int
	details Details
	err     error
}

func (c *countingProvider) Details(ctx context.Context, name string) (Details, error) {
	c.calls++
	return c.details, c.err
}

func TestDetailsCache(t *testing.T) {
	p := &countingProvider{
		Provider: NewPacman(zap.NewNop()),
		details:  Details{Provider: "pacman", Name: "firefox", Fields: []Field{{Key: "Name", Value: "firefox"}}},
	}
	cache := NewDetailsCache(time.Hour)

	_, found := cache.Lookup("pacman", "firefox")
	assert.False(t, found)

	details, err := cache.Details(context.Background(), p, "extra/firefox")
	require.NoError(t, err)
	assert.Equal(t, p.details, details)

	details, err = cache.Details(context.Background(), p, "firefox")
	require.NoError(t, err)
	assert.Equal(t, p.details, details)
	assert.Equal(t, 1, p.calls, "second lookup must be served from the cache")

	cached, found := cache.Lookup("pacman", "extra/firefox")
	assert.True(t, found)
	assert.Equal(t, p.details, cached)

	_, found = cache.Lookup("aur", "firefox")
	assert.False(t, found, "entries are per provider")
}

func TestDetailsCacheSkipsFailures(t *testing.T) {
	p := &countingProvider{Provider: NewPacman(zap.NewNop()), err: errors.New("some error")}
	cache := NewDetailsCache(0)

	_, err := cache.Details(context.Background(), p, "firefox")
	assert.EqualError(t, err, "some error")
	_, err = cache.Details(context.Background(), p, "firefox")
	assert.Error(t, err)
	assert.Equal(t, 2, p.calls)
}

func TestDetailsCacheFillsIdentity(t *testing.T) {
	p := &countingProvider{Provider: NewPacman(zap.NewNop()), details: Details{Fields: []Field{{Key: "Name", Value: "vim"}}}}
	cache := NewDetailsCache(time.Minute)
	details, err := cache.Details(context.Background(), p, "extra/vim")
	require.NoError(t, err)
	assert.Equal(t, "pacman", details.Provider)
	assert.Equal(t, "vim", details.Name)

	_, found := cache.Lookup("pacman", "vim")
	assert.True(t, found)
}

func TestDetailsCacheInsert(t *testing.T) {
	cache := NewDetailsCache(time.Minute)
	cache.Insert(Details{Provider: "aur", Name: "yay-bin"})
	details, found := cache.Lookup("aur", "aur/yay-bin")
	assert.True(t, found)
	assert.Equal(t, "yay-bin", details.Name)
}
