package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pie-314/trx/install"
	"github.com/pie-314/trx/plaindb"
	"github.com/pie-314/trx/provider"
	"github.com/pie-314/trx/search"
	"github.com/pie-314/trx/searcher"
	"github.com/pie-314/trx/selection"
	"github.com/pie-314/trx/server"
	"github.com/pie-314/trx/tui"
	"go.uber.org/zap"
)

// runs trx against the built-in demo catalog, no package manager required
func main() {
	isServer := flag.Bool("server", false, "Serve the HTTP API instead of the terminal UI")
	port := flag.Uint("port", 8080, "Server port to listen on")
	flag.Parse()

	if err := run(*isServer, *port); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(isServer bool, port uint) error {
	dataDir := filepath.Join(os.TempDir(), "trx-demo")
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return err
	}
	config := zap.NewDevelopmentConfig()
	if !isServer {
		config.OutputPaths = []string{filepath.Join(dataDir, "trx.log")}
		config.ErrorOutputPaths = config.OutputPaths
	}
	logger, err := config.Build()
	if err != nil {
		return err
	}

	registry := provider.Registry{provider.Demo()}
	pipeline := searcher.New(logger, search.Options{MinScore: searcher.DefaultMinScore}, registry)
	details := provider.NewDetailsCache(time.Minute)
	if isServer {
		gin.SetMode(gin.DebugMode)
		return server.Run(fmt.Sprintf("0.0.0.0:%d", port), pipeline, details, logger)
	}

	db, err := plaindb.Open(dataDir)
	if err != nil {
		return err
	}
	defer db.Close()
	store, err := selection.New(db)
	if err != nil {
		return err
	}
	session := searcher.NewSession(pipeline, 50*time.Millisecond, logger)
	defer session.Close()
	return tui.New(tui.Config{
		Session:   session,
		Providers: registry,
		Details:   details,
		Selection: store,
		Logger:    logger,
		Stdio:     install.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
	}).Run()
}
