package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/edaplot/pkg/format"
	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
	"github.com/Sumatoshi-tech/edaplot/pkg/overview"
	"github.com/Sumatoshi-tech/edaplot/pkg/terminal"
)

type overviewFlags struct {
	label      string
	corr       bool
	sortBy     string
	output     string
	filter     bool
	threshNull float64
	threshCorr float64
}

// NewOverviewCommand creates the overview subcommand.
func NewOverviewCommand(app *App) *cobra.Command {
	f := &overviewFlags{}

	styles := make([]string, 0, len(overview.Styles()))
	for _, s := range overview.Styles() {
		styles = append(styles, string(s))
	}

	cmd := &cobra.Command{
		Use:   "overview <file>",
		Short: "Summarize nulls, dtypes and category counts per column",
		Long: `Summarize every column of a CSV, JSON or XLSX file.

Columns: feature, qtd_null, percent_null, dtype, qtd_cat and, with --corr,
target_pearson_corr against the --label column. Rows are sorted descending
by --sort-by (default from config, qtd_null).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, "overview", func(_ context.Context) error {
				return runOverview(cmd, app, f, args[0])
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.label, "label", "", "target column for --corr")
	flags.BoolVar(&f.corr, "corr", false, "add the Pearson correlation with --label")
	flags.StringVar(&f.sortBy, "sort-by", "", "overview column to sort on, descending")
	flags.StringVarP(&f.output, "output", "o", string(overview.StyleTable), "output style: "+strings.Join(styles, ", "))
	flags.BoolVar(&f.filter, "filter", false, "keep only rows above the thresholds")
	flags.Float64Var(&f.threshNull, "thresh-null", -1, "percent_null threshold for --filter (default from config)")
	flags.Float64Var(&f.threshCorr, "thresh-corr", -1, "target correlation threshold for --filter (default from config)")

	return cmd
}

func runOverview(cmd *cobra.Command, app *App, f *overviewFlags, path string) error {
	if !slices.Contains(overview.Styles(), overview.Style(f.output)) {
		return fmt.Errorf("%w: %q", overview.ErrUnknownStyle, f.output)
	}

	df, err := frame.Load(path)
	if err != nil {
		return err
	}

	slog.Default().Debug("loaded frame", "file", path, "rows", df.Nrow(), "cols", len(df.Names()))

	opts := &overview.Options{
		Corr:              f.corr,
		Label:             f.label,
		SortBy:            app.cfg.Overview.SortBy,
		ThreshPercentNull: app.cfg.Overview.ThreshPercentNull,
		ThreshCorrLabel:   app.cfg.Overview.ThreshCorrLabel,
	}

	if f.sortBy != "" {
		opts.SortBy = f.sortBy
	}

	if f.threshNull >= 0 {
		opts.ThreshPercentNull = f.threshNull
	}

	if f.threshCorr >= 0 {
		opts.ThreshCorrLabel = f.threshCorr
	}

	tbl, err := overview.Build(df, opts)
	if err != nil {
		return err
	}

	if f.filter {
		tbl = tbl.FilterConfigured()
	}

	out := cmd.OutOrStdout()
	style := overview.Style(f.output)

	if style == overview.StyleTable {
		fmt.Fprintln(out, terminal.DrawHeader("OVERVIEW", filepath.Base(path), app.term.Width))
	}

	err = tbl.Write(out, style)
	if err != nil {
		return err
	}

	if style == overview.StyleTable && !app.quiet {
		reportNulls(cmd.ErrOrStderr(), app.term, tbl, df)
	}

	return nil
}

// reportNulls prints the columns with a notable share of missing values.
func reportNulls(w io.Writer, term terminal.Config, tbl *overview.Table, df *frame.Frame) {
	term.Note(w, "%s rows, %s columns", format.Count(df.Nrow()), format.Count(len(df.Names())))

	for _, r := range tbl.Rows {
		if math.IsNaN(r.PercentNull) || r.PercentNull < terminal.ShareThresholdFair {
			continue
		}

		term.Printf(w, terminal.ColorForShare(r.PercentNull), "%s: %s null", r.Feature, format.FractionPercent(r.PercentNull))
	}
}
