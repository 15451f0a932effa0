package install

import (
	"context"
	"fmt"
	"strings"

	"github.com/pie-314/trx/errors"
	"github.com/pie-314/trx/provider"
	"github.com/shopspring/decimal"
)

// Step installs a group of packages from one provider with a single command
type Step struct {
	Provider provider.Provider
	Packages []provider.Package
	Command  []string
}

// Plan is the ordered list of install steps for a selection
type Plan struct {
	Steps []Step
}

// NewPlan groups selected packages by provider, in registry order
func NewPlan(selected []provider.Package, providers provider.Registry) (Plan, error) {
	var errs errors.Errors
	groups := make(map[string][]provider.Package)
	for _, pkg := range selected {
		_, found := providers.Find(pkg.Provider)
		if errs.ErrIf(!found, "Unknown provider %q for package %s", pkg.Provider, pkg.FullName()) {
			continue
		}
		groups[pkg.Provider] = append(groups[pkg.Provider], pkg)
	}
	if err := errs.ErrOrNil(); err != nil {
		return Plan{}, err
	}

	var plan Plan
	for _, p := range providers {
		packages := groups[p.Name()]
		if len(packages) == 0 {
			continue
		}
		names := make([]string, len(packages))
		for i, pkg := range packages {
			names[i] = pkg.FullName()
		}
		plan.Steps = append(plan.Steps, Step{
			Provider: p,
			Packages: packages,
			Command:  p.InstallCommand(names),
		})
	}
	return plan, nil
}

// Len returns the number of packages in the plan
func (p Plan) Len() int {
	count := 0
	for _, step := range p.Steps {
		count += len(step.Packages)
	}
	return count
}

// Summary describes the commands to run and the total download size.
// Packages without a known size are counted separately.
func (p Plan) Summary(ctx context.Context, details *provider.DetailsCache) string {
	var buf strings.Builder
	total := decimal.Zero
	unknown := 0
	for _, step := range p.Steps {
		fmt.Fprintf(&buf, "%s: %s\n", step.Provider.Name(), strings.Join(step.Command, " "))
		for _, pkg := range step.Packages {
			d, err := details.Details(ctx, step.Provider, pkg.FullName())
			if err != nil {
				unknown++
				continue
			}
			size, found, err := d.DownloadSize()
			if !found || err != nil {
				unknown++
				continue
			}
			total = total.Add(size)
		}
	}
	fmt.Fprintf(&buf, "Packages: %d\n", p.Len())
	fmt.Fprintf(&buf, "Total download size: %s", provider.FormatSize(total))
	if unknown > 0 {
		fmt.Fprintf(&buf, " (%d unknown)", unknown)
	}
	return buf.String()
}
