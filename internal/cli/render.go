package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/binheat/pkg/errors"
	pkgio "github.com/matzehuels/binheat/pkg/io"
	"github.com/matzehuels/binheat/pkg/pipeline"
)

// renderFlags holds the command-line flags for rendering.
type renderFlags struct {
	font       string  // TrueType font file
	fontSize   float64 // label font size in points
	transpose  bool    // swap rows and columns
	multiline  bool    // use every column token per line
	noSort     bool    // keep insertion order
	leftLabels string  // row label file
	topLabels  string  // column label file
	output     string  // output file
	format     string  // pdf, png, svg, json
	scale      float64 // PNG scale factor
	configPath string  // TOML config file
}

// renderCommand creates the root render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "binheat [infile] [outfile]",
		Short: "Draw a binary relation as a grid of markers",
		Long: `Binheat draws a binary relation as a grid: every row label on the left,
every column label on top, and a dot wherever the pair is related.

Input lines hold a row label followed by one or more column labels,
separated by tabs. Blank lines and lines starting with '#' are skipped.
Both infile and outfile default to '-' (stdin and stdout).

Label files (-1, -2) fix the order and the set of row and column labels;
pairs naming other labels are dropped.`,
		Example: `  binheat groups.tsv                     # writes groups.pdf
  binheat -m -o groups.svg groups.tsv
  cut -f1,3 data.tsv | binheat -T -1 cols.txt > grid.pdf`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f.configPath)
			if err != nil {
				return err
			}
			opts := f.options(cmd, cfg)

			input := pkgio.Stdin
			if len(args) > 0 {
				input = args[0]
			}
			output := f.output
			if len(args) > 1 {
				if f.output != "" && f.output != args[1] {
					return errors.New(errors.ErrCodeInvalidInput,
						"output given twice: --output %s and %s", f.output, args[1])
				}
				output = args[1]
			}

			formatSet := cmd.Flags().Changed("format")
			opts.Format = resolveFormat(opts.Format, formatSet, output)
			if err := pipeline.ValidateFormat(opts.Format); err != nil {
				return err
			}
			output = resolveOutput(input, output, opts.Format)

			return c.runRender(cmd.Context(), renderPaths{
				input:  input,
				output: output,
				left:   f.leftLabels,
				top:    f.topLabels,
			}, opts)
		},
	}

	f.bind(cmd)

	return cmd
}

// bind registers the render flags on cmd.
func (f *renderFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.font, "font", "F", "", "typeset labels in a TrueType font `TTF_FILE`")
	flags.Float64VarP(&f.fontSize, "font-size", "f", pipeline.DefaultFontSize, "font size in points")
	flags.BoolVarP(&f.transpose, "transpose", "T", false, "swap rows and columns")
	flags.BoolVarP(&f.multiline, "multiline", "m", false, "use every column of a line, not just the first")
	flags.BoolVarP(&f.noSort, "no-sort", "S", false, "keep labels in order of first appearance")
	flags.StringVarP(&f.leftLabels, "left-labels", "1", "", "fix row labels from `FILE`")
	flags.StringVarP(&f.topLabels, "top-labels", "2", "", "fix column labels from `FILE`")
	flags.StringVarP(&f.output, "output", "o", "", "output file (default: input name with the format's extension)")
	flags.StringVar(&f.format, "format", "", "output format: pdf (default), png, svg, json")
	flags.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	flags.StringVar(&f.configPath, "config", "", "config file (default: ~/.config/binheat/config.toml)")
	registerCompletions(cmd)
}

// options merges config values and flags. A flag wins only when set on the
// command line, so config values beat flag defaults.
func (f *renderFlags) options(cmd *cobra.Command, cfg Config) pipeline.Options {
	changed := cmd.Flags().Changed

	opts := pipeline.Options{
		Sort:        true,
		FontFile:    cfg.Font,
		FontSize:    cfg.FontSize,
		Multiline:   cfg.Multiline,
		Format:      cfg.Format,
		Scale:       cfg.Scale,
		ColumnColor: cfg.Colors.ColumnBand,
		RowColor:    cfg.Colors.RowBand,
	}
	if cfg.Sort != nil {
		opts.Sort = *cfg.Sort
	}

	if changed("font") {
		opts.FontFile = f.font
	}
	if changed("font-size") || opts.FontSize == 0 {
		opts.FontSize = f.fontSize
	}
	if changed("multiline") {
		opts.Multiline = f.multiline
	}
	if changed("no-sort") {
		opts.Sort = !f.noSort
	}
	if changed("format") {
		opts.Format = f.format
	}
	if changed("scale") || opts.Scale == 0 {
		opts.Scale = f.scale
	}
	opts.Transpose = f.transpose
	return opts
}

// resolveFormat picks the output format: an explicit --format wins, then the
// output file's extension, then the configured format, then the default.
func resolveFormat(configured string, explicit bool, output string) string {
	if explicit && configured != "" {
		return configured
	}
	if ext := pipeline.FormatFromPath(output); ext != "" {
		return ext
	}
	if configured != "" {
		return configured
	}
	return pipeline.DefaultFormat
}

// resolveOutput picks the output path: an explicit output wins; otherwise
// the input name with its extension replaced; otherwise stdout.
func resolveOutput(input, output, format string) string {
	if output != "" {
		return output
	}
	if input == pkgio.Stdin || input == "" {
		return pkgio.Stdin
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + pipeline.Extension(format)
}

type renderPaths struct {
	input, output string
	left, top     string
}

// runRender opens all inputs, executes the pipeline, and writes the artifact.
func (c *CLI) runRender(ctx context.Context, paths renderPaths, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	if paths.output != pkgio.Stdin && paths.output == paths.input {
		return errors.New(errors.ErrCodeInvalidPath, "output would overwrite input %s", paths.input)
	}

	in, err := pkgio.Open(paths.input)
	if err != nil {
		return err
	}
	defer in.Close()
	src := pipeline.Sources{Input: in}

	if paths.left != "" {
		r, err := pkgio.Open(paths.left)
		if err != nil {
			return err
		}
		defer r.Close()
		src.RowLabels = r
	}
	if paths.top != "" {
		r, err := pkgio.Open(paths.top)
		if err != nil {
			return err
		}
		defer r.Close()
		src.ColumnLabels = r
	}

	logger.Debug("rendering",
		"input", paths.input,
		"output", paths.output,
		"format", opts.Format,
		"transpose", opts.Transpose,
		"multiline", opts.Multiline,
		"sort", opts.Sort)

	prog := newProgress(logger)
	result, err := pipeline.NewRunner(logger).Execute(ctx, src, opts)
	if err != nil {
		return err
	}

	if err := c.writeArtifact(paths.output, result.Artifact); err != nil {
		return err
	}
	prog.done("Rendered " + opts.Format)

	if paths.output != pkgio.Stdin {
		printSuccess("Rendered %s", StyleHighlight.Render(opts.Format))
		printStats(result.Stats.Rows, result.Stats.Columns, result.Stats.Pairs, result.Stats.Dropped)
		printFile(paths.output)
	} else if result.Stats.Dropped > 0 {
		printWarning("%d pairs outside the label files were dropped", result.Stats.Dropped)
	}
	return nil
}

// writeArtifact writes data to path, or to c.Stdout for "-".
func (c *CLI) writeArtifact(path string, data []byte) error {
	if path == pkgio.Stdin {
		var w io.Writer = c.Stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(data)
		return err
	}
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
