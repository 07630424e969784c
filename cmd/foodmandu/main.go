package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aluiziolira/go-scrape-foodmandu/config"
	"github.com/aluiziolira/go-scrape-foodmandu/scraper"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// command is one subcommand: its flags bind directly into the shared config.
type command struct {
	name  string
	flags *flag.FlagSet
	run   func(ctx context.Context) error
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(os.Stderr)
		return 2
	}

	cfg := config.DefaultConfig()
	if err := applyEnv(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
		return 1
	}

	cmd, ok := newCommand(args[0], cfg)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage(os.Stderr)
		return 2
	}
	if err := cmd.flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger, level := newLogger(cfg.Verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("interrupted, no output written", slog.String("command", cmd.name))
		} else {
			slog.Error("command failed", slog.String("command", cmd.name), slog.Any("error", err))
		}
		return 1
	}
	return 0
}

func newCommand(name string, cfg *config.Config) (*command, bool) {
	switch name {
	case "zones":
		return newZonesCommand(cfg), true
	case "menus":
		return newMenusCommand(cfg), true
	case "catalog":
		return newCatalogCommand(cfg), true
	}
	return nil, false
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: foodmandu <command> [flags]

Commands:
  zones     fetch every vendor of each delivery zone
  menus     fetch the menu of every vendor in a saved zone listing
  catalog   join saved vendors and menus into flat menu-item rows

Run "foodmandu <command> -h" for the flags of a command.
`)
}

// startMetricsServer serves the scraper registry on addr and returns a stop
// function. An empty addr disables it.
func startMetricsServer(addr string, m *scraper.Metrics) func() {
	if addr == "" || m == nil {
		return func() {}
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", slog.Any("error", err))
		}
	}()
	slog.Info("metrics server enabled", slog.String("addr", addr))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
	}
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
