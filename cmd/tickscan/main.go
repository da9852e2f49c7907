// Command tickscan aggregates order record files.
//
//	tickscan [-config FILE] stats    [-mode M] [-workers N] [-instruments 1,2] [-format F] FILE
//	tickscan [-config FILE] volume   [-mode M] FILE
//	tickscan [-config FILE] generate [-n N] [-seed S] [-compress KIND] FILE
//	tickscan [-config FILE] export   [-o OUT] [-codec CODEC] FILE
//
// FILE names a local path, or a blob when storage.backend is s3 or minio.
// Usage errors exit with status 2, failures with status 1.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/tickscan"
	"github.com/hupe1980/tickscan/internal/config"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type env struct {
	cfg    *config.Config
	log    *tickscan.Logger
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tickscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to YAML config file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: tickscan [-config FILE] <stats|volume|generate|export> [flags] FILE")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(stderr, "tickscan: %v\n", err)
		return exitFailure
	}
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "tickscan: %v\n", err)
		return exitUsage
	}

	e := &env{cfg: cfg, log: newLogger(cfg.Log, stderr), stdout: stdout, stderr: stderr}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "stats":
		err = e.stats(ctx, rest)
	case "volume":
		err = e.volume(ctx, rest)
	case "generate":
		err = e.generate(ctx, rest)
	case "export":
		err = e.export(ctx, rest)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitUsage
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "tickscan: %v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "tickscan %s: %v\n", cmd, err)
		return exitFailure
	}
}

func newLogger(cfg config.LogConfig, w io.Writer) *tickscan.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(cfg.Level))

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return tickscan.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return tickscan.NewLogger(slog.NewTextHandler(w, opts))
}
