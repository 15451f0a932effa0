package install

import (
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pie-314/trx/pipe"
	"github.com/pie-314/trx/prompter"
	"github.com/pie-314/trx/provider"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrCancelled is returned when the user declines to install
	ErrCancelled = errors.New("Installation cancelled")
	// ErrEmptyPlan is returned when there is nothing to install
	ErrEmptyPlan = errors.New("Nothing selected to install")
)

// Stdio connects install commands to a terminal
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type runFunc func(ctx context.Context, stdio Stdio, command []string) error

// Installer confirms a plan with the user, then runs its commands one at a time
type Installer struct {
	prompter prompter.Prompter
	details  *provider.DetailsCache
	stdio    Stdio
	logger   *zap.Logger
	run      runFunc
}

// New creates an Installer
func New(p prompter.Prompter, details *provider.DetailsCache, stdio Stdio, logger *zap.Logger) *Installer {
	return &Installer{
		prompter: p,
		details:  details,
		stdio:    stdio,
		logger:   logger,
		run:      execRun,
	}
}

func execRun(ctx context.Context, stdio Stdio, command []string) error {
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err
	return cmd.Run()
}

// Run asks for confirmation, then runs each step in order. Stops on the first failure.
func (i *Installer) Run(ctx context.Context, plan Plan) error {
	if len(plan.Steps) == 0 {
		return ErrEmptyPlan
	}
	message := plan.Summary(ctx, i.details) + "\nProceed with installation?"
	choice, err := i.prompter.PromptChoice(ctx, message, []string{"No", "Yes"})
	if err != nil {
		return err
	}
	if choice != 1 {
		return ErrCancelled
	}

	ops := make(pipe.Ops, len(plan.Steps))
	for ix := range plan.Steps {
		step := plan.Steps[ix]
		ops[ix] = pipe.OpFunc(func(ctx context.Context) error {
			commandLine := strings.Join(step.Command, " ")
			i.logger.Info("Installing packages", zap.String("provider", step.Provider.Name()), zap.String("command", commandLine))
			if err := i.run(ctx, i.stdio, step.Command); err != nil {
				return errors.Wrapf(err, "Failed to run %s", commandLine)
			}
			return nil
		})
	}
	return ops.Do(ctx)
}
