package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/format"
	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
	"github.com/Sumatoshi-tech/edaplot/pkg/render"
	"github.com/Sumatoshi-tech/edaplot/pkg/render/plotpage"
)

// plotFlags are shared by every plot kind.
type plotFlags struct {
	out     string
	width   float64
	height  float64
	dpi     float64
	theme   string
	title   string
	palette string
	cols    int
}

// buildFunc draws a figure from a loaded frame.
type buildFunc func(df *frame.Frame) (*figure.Figure, error)

// NewPlotCommand creates the plot command and one subcommand per kind.
func NewPlotCommand(app *App) *cobra.Command {
	f := &plotFlags{}

	formats := make([]string, 0, len(render.Formats()))
	for _, fm := range render.Formats() {
		formats = append(formats, string(fm))
	}

	cmd := &cobra.Command{
		Use:   "plot <kind> <file>",
		Short: "Render an exploratory figure",
		Long: fmt.Sprintf(`Render an exploratory figure from a CSV, JSON or XLSX file.

The output format follows the --out extension: %s.
Sizes are in inches; unset sizes use the plot's own defaults.`, strings.Join(formats, ", ")),
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.out, "out", "o", "", "output file (required)")
	flags.Float64Var(&f.width, "width", 0, "figure width in inches")
	flags.Float64Var(&f.height, "height", 0, "figure height in inches")
	flags.Float64Var(&f.dpi, "dpi", 0, "raster resolution (default from config)")
	flags.StringVar(&f.theme, "theme", "", "html theme: light or dark (default from config)")
	flags.StringVar(&f.title, "title", "", "figure title")
	flags.StringVar(&f.palette, "palette", "", "palette name (default from config)")
	flags.IntVar(&f.cols, "cols", 0, "panels per row (default from config)")

	_ = cmd.MarkPersistentFlagRequired("out")

	cmd.AddCommand(
		newDistCommand(app, f),
		newStripCommand(app, f),
		newBoxenCommand(app, f),
		newCountCommand(app, f),
		newSingleCountCommand(app, f),
		newCatplotCommand(app, f),
		newNumplotCommand(app, f),
		newCatPctCommand(app, f),
		newMeanSumCommand(app, f),
		newDonutCommand(app, f),
		newCorrCommand(app, f),
		newAnswerCommand(app, f),
	)

	return cmd
}

// plot loads path, builds the figure and saves it to the output file.
func (a *App) plot(cmd *cobra.Command, f *plotFlags, kind, path string, build buildFunc) error {
	return a.run(cmd, "plot."+kind, func(ctx context.Context) error {
		df, err := frame.Load(path)
		if err != nil {
			return err
		}

		slog.Default().DebugContext(ctx, "loaded frame", "file", path, "rows", df.Nrow(), "cols", len(df.Names()))

		start := time.Now()

		fig, err := build(df)
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}

		return a.save(ctx, cmd, f, kind, fig, start)
	})
}

func (a *App) save(ctx context.Context, cmd *cobra.Command, f *plotFlags, kind string, fig *figure.Figure, start time.Time) error {
	theme, err := plotpage.ParseTheme(orDefault(f.theme, a.cfg.Figure.Theme))
	if err != nil {
		return err
	}

	fig.DPI = orDefault(f.dpi, a.cfg.Figure.DPI)
	fig.Title = orDefault(f.title, fig.Title)

	outFormat, err := render.Save(fig, f.out, render.Options{Theme: theme, Title: fig.Title})
	if err != nil {
		return err
	}

	grid := fig.Grid()
	hidden := grid.HiddenCount()
	elapsed := time.Since(start)

	a.metrics.RecordRender(ctx, kind, string(outFormat), hidden, elapsed)

	slog.Default().DebugContext(ctx, "figure saved",
		"kind", kind, "format", outFormat, "path", f.out,
		"rows", grid.Rows(), "cols", grid.Cols(), "hidden", hidden, "elapsed", elapsed)

	if !a.quiet {
		a.term.Success(cmd.ErrOrStderr(), "wrote %s (%s, %s panels)", f.out, kind, format.Count(grid.Len()-hidden))
	}

	return nil
}

// single builds a one-surface figure sized from the flags or the config.
func (a *App) single(f *plotFlags) (*figure.Figure, *figure.Axes, error) {
	fig := figure.New(orDefault(f.width, a.cfg.Figure.Width), orDefault(f.height, a.cfg.Figure.Height))

	grid, err := fig.Subplots(1, 1)
	if err != nil {
		return nil, nil, err
	}

	return fig, grid.At(0, 0), nil
}

func (a *App) palette(f *plotFlags) string {
	return orDefault(f.palette, a.cfg.Plot.Palette)
}

func (a *App) cols(f *plotFlags) int {
	return orDefault(f.cols, a.cfg.Plot.Cols)
}

// numericFeatures returns features, or every numeric column except skip.
func numericFeatures(df *frame.Frame, features []string, skip string) []string {
	if len(features) > 0 {
		return features
	}

	return slices.DeleteFunc(df.NumericNames(), func(name string) bool { return name == skip })
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}

	return v
}
