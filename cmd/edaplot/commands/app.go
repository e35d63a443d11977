// Package commands implements CLI command handlers for edaplot.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/edaplot/pkg/config"
	"github.com/Sumatoshi-tech/edaplot/pkg/observability"
	"github.com/Sumatoshi-tech/edaplot/pkg/terminal"
	"github.com/Sumatoshi-tech/edaplot/pkg/version"
)

// App holds the global flags and the per-run state shared by all commands.
type App struct {
	configPath string
	verbose    bool
	quiet      bool
	stats      bool
	noColor    bool

	cfg       *config.Config
	providers observability.Providers
	metrics   *observability.RenderMetrics
	term      terminal.Config
}

// NewRootCommand creates the edaplot root command with all subcommands.
func NewRootCommand() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   "edaplot",
		Short: "edaplot - exploratory data analysis plots for tabular files",
		Long: `edaplot renders exploratory data analysis figures from CSV, JSON and XLSX files.

Commands:
  overview  Null, dtype and target correlation summary per column
  plot      Render a figure (png, jpg, svg, pdf or html)
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (default: edaplot.yaml in ., ./config or $HOME/.config/edaplot)")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&app.quiet, "quiet", "q", false, "suppress output")
	flags.BoolVar(&app.stats, "stats", false, "print collected metrics after the run")
	flags.BoolVar(&app.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		NewOverviewCommand(app),
		NewPlotCommand(app),
		NewVersionCommand(),
	)

	return rootCmd
}

// setup loads the configuration and installs logging, tracing and metrics.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}

	switch {
	case a.verbose:
		level = slog.LevelDebug
	case a.quiet:
		level = slog.LevelError
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.Format == "json"
	obsCfg.LogWriter = cmd.ErrOrStderr()

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewRenderMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	slog.SetDefault(providers.Logger)

	a.cfg = cfg
	a.providers = providers
	a.metrics = metrics
	a.term = terminal.NewConfig()
	a.term.NoColor = a.term.NoColor || a.noColor

	return nil
}

// run wraps fn in a span named op, prints metrics when requested and
// releases the providers.
func (a *App) run(cmd *cobra.Command, op string, fn func(ctx context.Context) error) error {
	err := a.setup(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	defer func() {
		shutdownErr := a.providers.Shutdown(context.WithoutCancel(ctx))
		if shutdownErr != nil {
			slog.Default().Debug("observability shutdown", "error", shutdownErr)
		}
	}()

	spanCtx, span := a.providers.Tracer.Start(ctx, op, trace.WithAttributes(attribute.String("command", cmd.CommandPath())))

	err = fn(spanCtx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()

	if err != nil {
		return err
	}

	if a.stats {
		return observability.WriteStats(ctx, cmd.OutOrStdout(), a.providers.Reader)
	}

	return nil
}
