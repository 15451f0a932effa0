package provider

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Provider looks up packages in one package source, i.e. the sync repositories or the AUR
type Provider interface {
	// Name identifies the provider in results, selections and errors
	Name() string
	// Search returns the provider's packages relevant to query, in no particular order
	Search(ctx context.Context, query string) ([]Package, error)
	// Details returns the full description of a single package
	Details(ctx context.Context, name string) (Details, error)
	// InstallCommand returns the command line installing the named packages
	InstallCommand(names []string) []string
}

// Registry is an ordered set of providers. Order breaks ties when ranking merged results.
type Registry []Provider

// Find returns the provider with the given name
func (r Registry) Find(name string) (Provider, bool) {
	for _, p := range r {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Names returns each provider's name in order
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, p := range r {
		names[i] = p.Name()
	}
	return names
}

// Options configures providers created by New
type Options struct {
	// AURInterval is the minimum time between two AUR helper invocations
	AURInterval time.Duration
}

// New creates providers from a comma separated list of names: pacman, aur, demo
func New(names string, opts Options, logger *zap.Logger) (Registry, error) {
	var registry Registry
	seen := make(map[string]bool)
	for _, name := range strings.Split(names, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		switch name {
		case pacmanName:
			registry = append(registry, NewPacman(logger))
		case aurName:
			registry = append(registry, NewAUR(opts.AURInterval, logger))
		case DemoName:
			registry = append(registry, Demo())
		default:
			return nil, errors.Errorf("Unknown provider: %q", name)
		}
	}
	if len(registry) == 0 {
		return nil, errors.New("At least one provider is required")
	}
	return registry, nil
}
