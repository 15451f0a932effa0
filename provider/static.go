package provider

import (
	"context"
	"strings"

	"github.com/pie-314/trx/search"
)

// DemoName is the provider name of the built-in demo catalog
const DemoName = "demo"

// Static is a Provider serving a fixed catalog, useful for demos and tests
type Static struct {
	name     string
	packages []Package
	details  map[string]Details
	install  []string
}

// NewStatic creates a Static provider. Every package is reported under this provider's name.
func NewStatic(name string, packages []Package, details ...Details) *Static {
	s := &Static{
		name:     name,
		packages: make([]Package, len(packages)),
		details:  make(map[string]Details, len(details)),
		install:  []string{"echo", "Installing"},
	}
	for i, p := range packages {
		p.Provider = name
		s.packages[i] = p
	}
	for _, d := range details {
		d.Provider = name
		s.details[d.Name] = d
	}
	return s
}

// Name implements Provider
func (s *Static) Name() string {
	return s.name
}

// Search implements Provider. Like a registry search, it returns every package whose name contains query as a subsequence.
func (s *Static) Search(ctx context.Context, query string) ([]Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	var results []Package
	for _, p := range s.packages {
		if _, ok := search.Locate(query, p.Name); ok {
			results = append(results, p)
		}
	}
	return results, nil
}

// Details implements Provider. Packages without explicit details are described by their listing fields.
func (s *Static) Details(ctx context.Context, name string) (Details, error) {
	if err := ctx.Err(); err != nil {
		return Details{}, err
	}
	name = PureName(name)
	if d, ok := s.details[name]; ok {
		return d, nil
	}
	for _, p := range s.packages {
		if p.Name == name {
			return Details{
				Provider: s.name,
				Name:     p.Name,
				Fields: []Field{
					{Key: "Repository", Value: p.Repository},
					{Key: "Name", Value: p.Name},
					{Key: "Version", Value: p.Version},
					{Key: "Description", Value: p.Description},
				},
			}, nil
		}
	}
	return Details{}, ErrNoDetails
}

// InstallCommand implements Provider. Nothing is installed, the command only echoes the names.
func (s *Static) InstallCommand(names []string) []string {
	command := append([]string{}, s.install...)
	for _, name := range names {
		command = append(command, PureName(name))
	}
	return command
}
