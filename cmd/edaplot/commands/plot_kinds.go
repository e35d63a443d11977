package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/edaplot/pkg/charts"
	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
)

func newDistCommand(app *App, f *plotFlags) *cobra.Command {
	var (
		features []string
		hue      string
		hist     bool
		colors   []string
	)

	cmd := &cobra.Command{
		Use:   "dist <file>",
		Short: "Density panel per numeric feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, "dist", args[0], func(df *frame.Frame) (*figure.Figure, error) {
				return charts.DistPlot(df, numericFeatures(df, features, hue), app.cols(f), &charts.DistOptions{
					Hue:    charts.Hue(hue),
					Colors: colors,
					Hist:   hist,
					Width:  f.width,
					Height: f.height,
				})
			})
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&features, "features", nil, "features to plot (default: every numeric column)")
	flags.StringVar(&hue, "hue", "", "categorical column splitting each panel")
	flags.BoolVar(&hist, "hist", false, "draw a density histogram under each curve")
	flags.StringSliceVar(&colors, "colors", nil, "curve colors, one per hue class")

	return cmd
}

func newCategoryCommand(app *App, f *plotFlags, kind, short string,
	draw func(*frame.Frame, []string, int, *charts.CategoryOptions) (*figure.Figure, error),
) *cobra.Command {
	var (
		features []string
		hue      string
		seed     uint64
	)

	cmd := &cobra.Command{
		Use:   kind + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, kind, args[0], func(df *frame.Frame) (*figure.Figure, error) {
				return draw(df, numericFeatures(df, features, hue), app.cols(f), &charts.CategoryOptions{
					Hue:     charts.Hue(hue),
					Palette: app.palette(f),
					Width:   f.width,
					Height:  f.height,
					Seed:    seed,
				})
			})
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&features, "features", nil, "features to plot (default: every numeric column)")
	flags.StringVar(&hue, "hue", "", "categorical column splitting each panel")
	flags.Uint64Var(&seed, "seed", 0, "jitter seed")

	return cmd
}

func newStripCommand(app *App, f *plotFlags) *cobra.Command {
	return newCategoryCommand(app, f, "strip", "Jittered points per numeric feature", charts.StripPlot)
}

func newBoxenCommand(app *App, f *plotFlags) *cobra.Command {
	return newCategoryCommand(app, f, "boxen", "Letter-value boxes per numeric feature", charts.BoxenPlot)
}

func newCountCommand(app *App, f *plotFlags) *cobra.Command {
	var (
		hue       string
		unordered bool
		labels    []string
		colors    []string
		legendLoc string
	)

	cmd := &cobra.Command{
		Use:   "count <file> <column>",
		Short: "Volumetry of a column, with hue shares when grouped",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, "count", args[0], func(df *frame.Frame) (*figure.Figure, error) {
				return charts.CountPlot(df, args[1], &charts.CountOptions{
					Hue:        charts.Hue(hue),
					Unordered:  unordered,
					LabelNames: labels,
					Palette:    app.palette(f),
					Colors:     colors,
					Width:      f.width,
					Height:     f.height,
					LegendLoc:  legendLoc,
				})
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&hue, "hue", "", "categorical column for the share panel")
	flags.BoolVar(&unordered, "unordered", false, "keep the category order of the data")
	flags.StringSliceVar(&labels, "labels", nil, "legend names of the hue classes")
	flags.StringSliceVar(&colors, "colors", nil, "colors of the hue classes")
	flags.StringVar(&legendLoc, "legend-loc", "", "legend location of the share panel")

	return cmd
}

func newSingleCountCommand(app *App, f *plotFlags) *cobra.Command {
	var (
		horizontal bool
		top        int
		unordered  bool
		hue        string
	)

	cmd := &cobra.Command{
		Use:   "single-count <file> <column>",
		Short: "Volumetry of a column on a single surface",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, "single-count", args[0], func(df *frame.Frame) (*figure.Figure, error) {
				fig, ax, err := app.single(f)
				if err != nil {
					return nil, err
				}

				opts := &charts.SingleCountOptions{
					X:         args[1],
					Top:       top,
					Unordered: unordered,
					Hue:       charts.Hue(hue),
					Palette:   app.palette(f),
				}

				if horizontal {
					opts.X, opts.Y = "", args[1]
				}

				return fig, charts.SingleCountPlot(df, ax, opts)
			})
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&horizontal, "horizontal", false, "draw horizontal bars")
	flags.IntVar(&top, "top", 0, "keep only the most frequent categories")
	flags.BoolVar(&unordered, "unordered", false, "keep the category order of the data")
	flags.StringVar(&hue, "hue", "", "categorical column splitting each bar")

	return cmd
}

func newCatplotCommand(app *App, f *plotFlags) *cobra.Command {
	var hue string

	cmd := &cobra.Command{
		Use:   "catplot <file>",
		Short: "Count panel per categorical column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, "catplot", args[0], func(df *frame.Frame) (*figure.Figure, error) {
				return charts.CatplotAnalysis(df, app.cols(f), &charts.CatplotOptions{
					Hue:     charts.Hue(hue),
					Palette: app.palette(f),
					Width:   f.width,
					Height:  f.height,
				})
			})
		},
	}

	cmd.Flags().StringVar(&hue, "hue", "", "categorical column splitting each panel")

	return cmd
}

func newNumplotCommand(app *App, f *plotFlags) *cobra.Command {
	var (
		hue       string
		hist      bool
		colors    []string
		hueColors []string
	)

	cmd := &cobra.Command{
		Use:   "numplot <file>",
		Short: "Density panel per column except the hue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, "numplot", args[0], func(df *frame.Frame) (*figure.Figure, error) {
				return charts.NumplotAnalysis(df, app.cols(f), &charts.NumplotOptions{
					Hue:           charts.Hue(hue),
					ColorSequence: colors,
					ColorHue:      hueColors,
					Hist:          hist,
				})
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&hue, "hue", "", "categorical column splitting each panel")
	flags.BoolVar(&hist, "hist", false, "draw a density histogram under each curve")
	flags.StringSliceVar(&colors, "colors", nil, "panel colors, cycled, without a hue")
	flags.StringSliceVar(&hueColors, "hue-colors", nil, "curve colors, one per hue class")

	return cmd
}

func newCatPctCommand(app *App, f *plotFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catpct <file> <hue>",
		Short: "Hue shares within every category of each categorical column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, "catpct", args[0], func(df *frame.Frame) (*figure.Figure, error) {
				return charts.CatplotPercentageAnalysis(df, args[1], app.cols(f), &charts.CatPctOptions{
					Palette: app.palette(f),
					Width:   f.width,
					Height:  f.height,
				})
			})
		},
	}
}

func newMeanSumCommand(app *App, f *plotFlags) *cobra.Command {
	var orient string

	cmd := &cobra.Command{
		Use:   "meansum <file> <group> <value>",
		Short: "Mean and sum of a value per group",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, "meansum", args[0], func(df *frame.Frame) (*figure.Figure, error) {
				return charts.MeanSumAnalysis(df, args[1], args[2], &charts.MeanSumOptions{
					Orient:  charts.Orient(orient),
					Palette: app.palette(f),
					Width:   f.width,
					Height:  f.height,
				})
			})
		},
	}

	cmd.Flags().StringVar(&orient, "orient", string(charts.OrientVertical), "vertical or horizontal")

	return cmd
}

func newDonutCommand(app *App, f *plotFlags) *cobra.Command {
	var (
		labels   []string
		text     string
		colors   []string
		radius   float64
		title    string
		dropLast int
	)

	cmd := &cobra.Command{
		Use:   "donut <file> <column>",
		Short: "Ring of the value counts of a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, "donut", args[0], func(df *frame.Frame) (*figure.Figure, error) {
				fig, ax, err := app.single(f)
				if err != nil {
					return nil, err
				}

				return fig, charts.DonutPlot(df, args[1], ax, &charts.DonutOptions{
					LabelNames:   labels,
					Text:         text,
					Colors:       colors,
					CircleRadius: radius,
					Title:        title,
					DropLast:     dropLast,
				})
			})
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&labels, "labels", nil, "category names, in value-count order")
	flags.StringVar(&text, "text", "", "text at the center of the ring")
	flags.StringSliceVar(&colors, "colors", nil, "wedge colors")
	flags.Float64Var(&radius, "radius", 0, "hole radius relative to the pie (default 0.8)")
	flags.StringVar(&title, "donut-title", "", "surface title")
	flags.IntVar(&dropLast, "drop-last", 0, "drop the least frequent categories")

	return cmd
}

func newCorrCommand(app *App, f *plotFlags) *cobra.Command {
	var (
		nvars      int
		direction  string
		colormap   string
		numFormat  string
		noAnnotate bool
		noColorBar bool
	)

	cmd := &cobra.Command{
		Use:   "corr <file> <label>",
		Short: "Correlation heatmap of a target and its top correlates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, "corr", args[0], func(df *frame.Frame) (*figure.Figure, error) {
				opts := charts.DefaultCorrelationOptions()
				opts.NVars = orDefault(nvars, opts.NVars)
				opts.Colormap = orDefault(colormap, opts.Colormap)
				opts.Format = orDefault(numFormat, opts.Format)
				opts.Annotate = !noAnnotate
				opts.ColorBar = !noColorBar

				if direction != "" {
					dir, err := charts.ParseDirection(direction)
					if err != nil {
						return nil, err
					}

					opts.Direction = dir
				}

				fig, ax, err := app.single(f)
				if err != nil {
					return nil, err
				}

				return fig, charts.TargetCorrelationMatrix(df, args[1], ax, opts)
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&nvars, "nvars", 0, "number of correlates (default 10)")
	flags.StringVar(&direction, "direction", "", "positive or negative")
	flags.StringVar(&colormap, "colormap", "", "heatmap colormap (default YlGnBu)")
	flags.StringVar(&numFormat, "format", "", "cell number format (default %.2f)")
	flags.BoolVar(&noAnnotate, "no-annotate", false, "omit the cell values")
	flags.BoolVar(&noColorBar, "no-colorbar", false, "omit the color bar")

	return cmd
}

// answerRows is the number of grid rows AnswerPlot fills.
const answerRows = 3

func newAnswerCommand(app *App, f *plotFlags) *cobra.Command {
	var (
		columns         []string
		top             int
		keepNonPositive bool
	)

	cmd := &cobra.Command{
		Use:   "answer <grouped-file> <group>",
		Short: "Mean, highest and lowest groups for each column",
		Long: `Draw one column of panels per --columns entry from a file holding one
row per group: the column mean, the groups with the highest values and the
groups with the lowest values.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.plot(cmd, f, "answer", args[0], func(df *frame.Frame) (*figure.Figure, error) {
				fig := figure.New(orDefault(f.width, app.cfg.Figure.Width), orDefault(f.height, app.cfg.Figure.Height))

				grid, err := fig.Subplots(answerRows, max(len(columns), 1))
				if err != nil {
					return nil, err
				}

				return fig, charts.AnswerPlot(df, args[1], columns, grid, &charts.AnswerOptions{
					Top:             top,
					KeepNonPositive: keepNonPositive,
					Palette:         app.palette(f),
				})
			})
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&columns, "columns", nil, "value columns, one panel column each")
	flags.IntVar(&top, "top", 0, "entries in the highest and lowest panels (default 5)")
	flags.BoolVar(&keepNonPositive, "keep-non-positive", false, "let zero and negative values into the lowest panel")

	_ = cmd.MarkFlagRequired("columns")

	return cmd
}
