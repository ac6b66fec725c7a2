package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/myrjola/fitplan/internal/config"
	"github.com/myrjola/fitplan/internal/docstore"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/flightrecorder"
	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/logging"
	"github.com/myrjola/fitplan/internal/sqlite"
	"github.com/myrjola/fitplan/internal/training"
)

const usage = `usage: fitplan [-config file] <command> [flags]

commands:
  profile     show the saved profile or replace it with -file
  conditions  list known health conditions or replace them with -file
  import      merge an exercise dataset into the catalog
  generate    generate and save a new training plan
  show        print the saved plan as Markdown or HTML
  export      write the saved plan to an Excel workbook
`

var errUsage = errors.NewSentinel("invalid usage")

// app is the state shared by the sub-commands.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	stdout  io.Writer
	service *training.Service
}

type command func(ctx context.Context, a *app, args []string) error

//nolint:gochecknoglobals // command table.
var commands = map[string]command{
	"profile":    runProfile,
	"conditions": runConditions,
	"import":     runImport,
	"generate":   runGenerate,
	"show":       runShow,
	"export":     runExport,
}

func run(
	ctx context.Context,
	args []string,
	stdout io.Writer,
	stderr io.Writer,
	lookupEnv func(string) (string, bool),
) error {
	fs := flag.NewFlagSet("fitplan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { _, _ = fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errUsage, err.Error())
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.Wrap(errUsage, "missing command")
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fs.Usage()
		return errors.Wrap(errUsage, "unknown command", slog.String("command", name))
	}

	cfg, err := config.Load(*configPath, lookupEnv)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	logger := logging.NewLogger(stderr, logging.ParseLevel(cfg.LogLevel))
	ctx = logging.WithAttrs(ctx, slog.String("run_id", uuid.NewString()), slog.String("command", name))

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelWarn, "close store", errors.SlogError(closeErr))
		}
	}()

	a := &app{
		cfg:     cfg,
		logger:  logger,
		stdout:  stdout,
		service: training.NewService(store, logger, training.WithLanguage(i18n.Language(cfg.Language))),
	}
	recorder := startRecorder(ctx, cfg, logger)
	if recorder != nil {
		defer recorder.Stop(ctx)
	}
	if err = cmd(ctx, a, fs.Args()[1:]); err != nil {
		if recorder != nil {
			if _, traceErr := recorder.Capture(ctx, name); traceErr != nil {
				logger.LogAttrs(ctx, slog.LevelWarn, "capture trace", errors.SlogError(traceErr))
			}
		}
		return errors.Wrap(err, "run command", slog.String("command", name))
	}
	return nil
}

// startRecorder returns a running flight recorder, or nil when tracing is disabled or unavailable.
func startRecorder(ctx context.Context, cfg config.Config, logger *slog.Logger) *flightrecorder.Recorder {
	if cfg.TraceDir == "" {
		return nil
	}
	recorder, err := flightrecorder.New(flightrecorder.Config{
		Logger:    logger,
		MinAge:    0,
		MaxBytes:  0,
		Directory: cfg.TraceDir,
	})
	if err == nil {
		err = recorder.Start(ctx)
	}
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, "continuing without flight recorder", errors.SlogError(err))
		return nil
	}
	return recorder
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (docstore.Store, func() error, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open db", slog.String("url", cfg.SQLiteURL))
		}
		logger.LogAttrs(ctx, slog.LevelDebug, "connected to db", slog.String("url", cfg.SQLiteURL))
		return docstore.NewSQLite(db), db.Close, nil
	default:
		store, err := docstore.NewDir(cfg.DataDir)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open data directory")
		}
		return store, func() error { return nil }, nil
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv)
	cancel()
	if err != nil {
		logger := logging.NewLogger(os.Stderr, slog.LevelError)
		logger.LogAttrs(ctx, slog.LevelError, "fitplan failed", errors.SlogError(err))
		if errors.Is(err, errUsage) {
			os.Exit(2) //nolint:mnd // usage exit code
		}
		os.Exit(1)
	}
}
