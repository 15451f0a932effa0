package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pie-314/trx/consts"
	"github.com/pie-314/trx/install"
	"github.com/pie-314/trx/plaindb"
	"github.com/pie-314/trx/provider"
	"github.com/pie-314/trx/search"
	"github.com/pie-314/trx/searcher"
	"github.com/pie-314/trx/selection"
	"github.com/pie-314/trx/server"
	"github.com/pie-314/trx/tui"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const envPrefix = "TRX_"

type options struct {
	providers  string
	limit      int
	minScore   float64
	debounce   time.Duration
	detailsTTL time.Duration
	aurRate    time.Duration
	dataDir    string
	query      string
	isServer   bool
	port       uint
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "trx")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trx"
	}
	return filepath.Join(home, ".local", "share", "trx")
}

func usage(flagSet *flag.FlagSet) string {
	oldOutput := flagSet.Output()
	buf := bytes.NewBuffer(nil)
	flagSet.SetOutput(buf)
	flagSet.Usage()
	flagSet.SetOutput(oldOutput)
	return buf.String()
}

func envName(flagName string) string {
	return envPrefix + strings.ToUpper(strings.Replace(flagName, "-", "_", -1))
}

// applyEnv sets flags missing from the command line from their TRX_ environment variables
func applyEnv(flagSet *flag.FlagSet) error {
	setFlags := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})
	var err error
	flagSet.VisitAll(func(f *flag.Flag) {
		if err != nil || setFlags[f.Name] {
			return
		}
		if value, ok := os.LookupEnv(envName(f.Name)); ok {
			if setErr := flagSet.Set(f.Name, value); setErr != nil {
				err = errors.Wrapf(setErr, "Invalid %s", envName(f.Name))
			}
		}
	})
	return err
}

func parseFlags(args []string, output io.Writer) (opts options, showVersion bool, err error) {
	flagSet := flag.NewFlagSet("trx", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.StringVar(&opts.providers, "providers", "pacman,aur", "Comma separated package providers to search: pacman, aur, demo")
	flagSet.IntVar(&opts.limit, "limit", searcher.DefaultLimit, "Maximum number of results")
	flagSet.Float64Var(&opts.minScore, "min-score", searcher.DefaultMinScore, "Drop results scoring at or below this value")
	flagSet.DurationVar(&opts.debounce, "debounce", 100*time.Millisecond, "Idle time after typing before searching")
	flagSet.DurationVar(&opts.detailsTTL, "details-ttl", 30*time.Minute, "How long package details are cached. 0 caches forever")
	flagSet.DurationVar(&opts.aurRate, "aur-rate", 500*time.Millisecond, "Minimum time between two AUR searches")
	flagSet.StringVar(&opts.dataDir, "data", defaultDataDir(), "Directory for the package selection and logs")
	flagSet.StringVar(&opts.query, "query", "", "Search once, print the results and exit")
	flagSet.BoolVar(&opts.isServer, "server", false, "Starts the HTTP API server")
	flagSet.UintVar(&opts.port, "port", 0, "Sets the port the server listens on. Defaults to 8080. Implies -server")
	flagSet.BoolVar(&showVersion, "version", false, "Print the version and exit")
	if err := flagSet.Parse(args); err != nil {
		return opts, false, err
	}
	if err := applyEnv(flagSet); err != nil {
		return opts, false, errors.Errorf("%s\n%s", err.Error(), usage(flagSet))
	}

	opts.isServer = opts.isServer || opts.port != 0
	if opts.port == 0 {
		opts.port = 8080
	}
	if opts.port > 65535 {
		return opts, false, errors.Errorf("Port number must be a positive 16-bit integer: %d", opts.port)
	}
	if opts.limit < 0 {
		return opts, false, errors.Errorf("Limit must not be negative: %d", opts.limit)
	}
	return opts, showVersion, nil
}

// newLogger builds the production logger, or the development logger if DEVELOPMENT=true. A non-empty logFile replaces stderr.
func newLogger(logFile string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if os.Getenv("DEVELOPMENT") == "true" {
		config = zap.NewDevelopmentConfig()
	}
	if logFile != "" {
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
	}
	return config.Build()
}

func printResults(out io.Writer, results searcher.Results) {
	for _, r := range results.Packages {
		installed := ""
		if r.Installed {
			installed = " [installed]"
		}
		fmt.Fprintf(out, "%s %s %s%s\n", r.Provider, r.FullName(), r.Version, installed)
		if r.Description != "" {
			fmt.Fprintf(out, "    %s\n", r.Description)
		}
	}
}

func run(opts options, logger *zap.Logger) error {
	registry, err := provider.New(opts.providers, provider.Options{AURInterval: opts.aurRate}, logger)
	if err != nil {
		return err
	}
	pipeline := searcher.New(logger, search.Options{MinScore: opts.minScore, Limit: opts.limit}, registry)
	details := provider.NewDetailsCache(opts.detailsTTL)

	switch {
	case opts.isServer:
		gin.SetMode(gin.ReleaseMode)
		err := server.Run(fmt.Sprintf("0.0.0.0:%d", opts.port), pipeline, details, logger)
		if err != nil {
			logger.Error("Server run failed", zap.Error(err))
		}
		return err
	case opts.query != "":
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		results := pipeline.Search(ctx, opts.query)
		printResults(os.Stdout, results)
		if results.Err != nil {
			fmt.Fprintln(os.Stderr, results.Err.Error())
		}
		return nil
	}

	db, err := plaindb.Open(opts.dataDir)
	if err != nil {
		return err
	}
	defer db.Close()
	store, err := selection.New(db)
	if err != nil {
		return err
	}
	session := searcher.NewSession(pipeline, opts.debounce, logger)
	defer session.Close()
	app := tui.New(tui.Config{
		Session:   session,
		Providers: registry,
		Details:   details,
		Selection: store,
		Logger:    logger,
		Stdio:     install.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
	})
	return app.Run()
}

func handleErrors() (usageErr bool, err error) {
	opts, showVersion, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		return true, err
	}
	if showVersion {
		fmt.Println(consts.Version)
		return false, nil
	}

	logFile := ""
	if !opts.isServer && opts.query == "" {
		// the terminal belongs to the UI
		if err := os.MkdirAll(opts.dataDir, 0750); err != nil {
			return false, errors.Wrap(err, "Failed to create data directory")
		}
		logFile = filepath.Join(opts.dataDir, "trx.log")
	}
	logger, err := newLogger(logFile)
	if err != nil {
		return false, err
	}
	defer logger.Sync() // nolint:errcheck
	return false, run(opts, logger)
}

func main() {
	usageErr, err := handleErrors()
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
		}
		if usageErr {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
