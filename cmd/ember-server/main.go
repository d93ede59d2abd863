// Command ember-server runs Ember's TCP key-value server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sagararora86/ember/internal/buildinfo"
	"github.com/sagararora86/ember/internal/engine"
	"github.com/sagararora86/ember/internal/engine/boltengine"
	"github.com/sagararora86/ember/internal/engine/storeengine"
	"github.com/sagararora86/ember/internal/server"
	"github.com/sagararora86/ember/internal/sidecar"
	"github.com/sagararora86/ember/pkg/filesys"
	"github.com/sagararora86/ember/pkg/logging"
	"github.com/sagararora86/ember/pkg/options"
)

func main() {
	addr := flag.String("addr", options.DefaultAddr, "address to listen on")
	engineName := flag.String("engine", options.DefaultEngine, fmt.Sprintf("storage engine: %q or %q", options.DefaultEngine, options.BoltEngine))
	dir := flag.String("dir", options.DefaultDataDir, "data directory")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(buildinfo.Version)
		return
	}

	log := logging.New("ember-server")
	defer log.Sync()

	if err := run(*addr, *engineName, *dir, log); err != nil {
		log.Errorw("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(addr, engineName, dir string, log *zap.SugaredLogger) error {
	if err := filesys.CreateDir(dir, 0755, true); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	if err := sidecar.Check(dir, engineName); err != nil {
		return fmt.Errorf("engine lock-in check: %w", err)
	}

	var eng engine.Engine
	var err error
	switch engineName {
	case options.BoltEngine:
		eng, err = boltengine.Open(dir, log)
	case options.DefaultEngine:
		eng, err = storeengine.Open(dir, log)
	default:
		return fmt.Errorf("unknown engine %q", engineName)
	}
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	defer eng.Close()

	srv, err := server.New(addr, eng, log)
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ctx) }()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
