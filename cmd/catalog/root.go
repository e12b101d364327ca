package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/music-catalog/internal/config"
	"github.com/handiism/music-catalog/internal/library"
	"github.com/handiism/music-catalog/internal/logging"
	"github.com/handiism/music-catalog/internal/metrics"
	"github.com/handiism/music-catalog/internal/model"
)

// Command annotations read by setup.
const (
	annotationSetup = "setup"
	setupNone       = "none"
	setupTUI        = "tui"
)

// app holds the flags and the per-invocation state shared by all commands.
type app struct {
	configPath  string
	endpoint    string
	verbose     bool
	metricsAddr string

	out    io.Writer
	errOut io.Writer

	settings *config.Settings
	logger   *zap.Logger
	recorder *metrics.Recorder

	stopMetrics context.CancelFunc
	metricsDone chan error
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut, logger: zap.NewNop()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the artists, albums and songs of a music catalog server",
		Long: `catalog talks to a music catalog GraphQL server.

Every add, update and delete is validated locally first and, once the
server accepts it, followed by a reload of the affected list so what you
see is what the server stored.

Run without arguments to start the interactive terminal UI.`,
		Annotations:       map[string]string{annotationSetup: setupTUI},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath(), "path to config file")
	flags.StringVar(&a.endpoint, "endpoint", "", "GraphQL endpoint URL (overrides config and "+config.EnvEndpoint+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "show verbose output and debug logs")
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	for _, kind := range model.Kinds {
		root.AddCommand(newEntityCmd(a, kind))
	}
	root.AddCommand(newTUICmd(a), newConfigCmd(a))
	return root
}

// setup resolves settings (file, then environment, then flags), builds the
// logger and starts the metrics endpoint when configured.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationSetup] == setupNone {
		return nil
	}

	settings, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	settings.ApplyEnv()
	if a.endpoint != "" {
		settings.Endpoint = a.endpoint
	}
	if a.metricsAddr != "" {
		settings.MetricsAddr = a.metricsAddr
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.configPath, err)
	}
	if cmd.Annotations[annotationSetup] == setupTUI && settings.LogFile == "" {
		settings.LogFile = config.DefaultLogFile()
	}
	a.settings = settings

	logger, err := logging.New(settings.ToLogConfig(), a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	if settings.MetricsAddr != "" {
		a.recorder = metrics.NewRecorder()
		ctx, cancel := context.WithCancel(context.Background())
		a.stopMetrics = cancel
		a.metricsDone = make(chan error, 1)
		go func() {
			a.metricsDone <- a.recorder.Serve(ctx, settings.MetricsAddr, a.logger.Named("metrics"))
		}()
	}
	return nil
}

// close stops the metrics endpoint and flushes the logger.
func (a *app) close() {
	if a.stopMetrics != nil {
		a.stopMetrics()
		if err := <-a.metricsDone; err != nil {
			a.logger.Warn("metrics endpoint stopped", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// open connects a library to the configured server.
func (a *app) open(onEvent func(library.Event)) (*library.Library, error) {
	opts := []library.Option{library.WithLogger(a.logger)}
	if a.recorder != nil {
		opts = append(opts, library.WithMetrics(a.recorder))
	}
	return library.Open(a.settings, onEvent, opts...)
}

// printEvent writes library events to the error stream.
func (a *app) printEvent(event library.Event) {
	if event.Level == library.LevelVerbose && !a.verbose {
		return
	}

	prefix := ""
	switch event.Level {
	case library.LevelError:
		prefix = "✗ "
	case library.LevelWarning:
		prefix = "! "
	case library.LevelSuccess:
		prefix = "✓ "
	case library.LevelInfo:
		prefix = "› "
	default:
		prefix = "  "
	}

	fmt.Fprintln(a.errOut, prefix+event.Message)
}
