package provider

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	pacmanName = "pacman"
	aurName    = "aur"
)

// output is the result of a finished process
type output struct {
	stdout   []byte
	stderr   []byte
	exitCode int
}

type runner func(ctx context.Context, name string, args ...string) (output, error)

// Command is a Provider backed by a pacman compatible command line tool
type Command struct {
	name    string
	binary  string
	install []string
	limiter *rate.Limiter
	logger  *zap.Logger
	run     runner
}

// NewCommand creates a provider running "<binary> -Ss" and "<binary> -Si". install is the command prefix the package names are appended to.
// limiter bounds how often binary may be started.
func NewCommand(name, binary string, install []string, limiter *rate.Limiter, logger *zap.Logger) *Command {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Command{
		name:    name,
		binary:  binary,
		install: install,
		limiter: limiter,
		logger:  logger.With(zap.String("provider", name)),
		run:     execRun,
	}
}

// NewPacman searches the sync repositories
func NewPacman(logger *zap.Logger) *Command {
	return NewCommand(pacmanName, "pacman", []string{"sudo", "pacman", "-S"}, nil, logger)
}

// NewAUR searches the Arch User Repository through yay. Invocations are spaced at least interval apart.
func NewAUR(interval time.Duration, logger *zap.Logger) *Command {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return NewCommand(aurName, "yay", []string{"yay", "-S"}, limiter, logger)
}

func execRun(ctx context.Context, name string, args ...string) (output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	out := output{stdout: stdout.Bytes(), stderr: stderr.Bytes()}
	if exitErr, ok := err.(*exec.ExitError); ok {
		out.exitCode = exitErr.ExitCode()
		err = nil
	}
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return out, err
}

// Name implements Provider
func (c *Command) Name() string {
	return c.name
}

func (c *Command) exec(ctx context.Context, args ...string) (output, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return output{}, err
	}
	start := time.Now()
	out, err := c.run(ctx, c.binary, args...)
	if err != nil {
		return out, errors.Wrapf(err, "Failed to run %s", c.binary)
	}
	c.logger.Debug("Command finished",
		zap.Strings("args", args),
		zap.Int("exitCode", out.exitCode),
		zap.Duration("duration", time.Since(start)),
	)
	return out, nil
}

func (c *Command) exitErr(out output, args ...string) error {
	return errors.Errorf("%s %s exited with status %d: %s",
		c.binary, strings.Join(args, " "), out.exitCode, strings.TrimSpace(decodeLossy(out.stderr)))
}

// noResults reports the status pacman and yay use for an empty search
func noResults(out output) bool {
	return out.exitCode == 1 && len(bytes.TrimSpace(out.stdout)) == 0
}

// Search implements Provider. A blank query returns nothing without running anything.
func (c *Command) Search(ctx context.Context, query string) ([]Package, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	args := []string{"-Ss", query}
	out, err := c.exec(ctx, args...)
	if err != nil {
		return nil, err
	}
	if noResults(out) {
		return nil, nil
	}
	if out.exitCode != 0 {
		return nil, c.exitErr(out, args...)
	}
	packages := ParseListing(out.stdout, c.name)
	c.logger.Debug("Search finished", zap.String("query", query), zap.Int("results", len(packages)))
	return packages, nil
}

// Details implements Provider
func (c *Command) Details(ctx context.Context, name string) (Details, error) {
	name = PureName(name)
	args := []string{"-Si", name}
	out, err := c.exec(ctx, args...)
	if err != nil {
		return Details{}, err
	}
	if out.exitCode != 0 {
		return Details{}, c.exitErr(out, args...)
	}
	fields, err := ParseDetails(out.stdout)
	if err != nil {
		return Details{}, errors.Wrapf(err, "%s %s", c.binary, strings.Join(args, " "))
	}
	return Details{Provider: c.name, Name: name, Fields: fields}, nil
}

// InstallCommand implements Provider
func (c *Command) InstallCommand(names []string) []string {
	command := append([]string{}, c.install...)
	for _, name := range names {
		command = append(command, PureName(name))
	}
	return command
}
