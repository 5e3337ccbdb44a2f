package cmd

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ArnaudCalmettes/seuil/imp"
	"github.com/ArnaudCalmettes/seuil/input"
	"github.com/ArnaudCalmettes/seuil/metrics"
	"github.com/ArnaudCalmettes/seuil/models"
)

const callerCLI = "cli"

type applyFlags struct {
	method    string
	threshold int
	format    string
	output    string
	workers   int
}

var applyOpts applyFlags

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply <image>",
	Short: "Threshold an image file",
	Long: `Thresholds an image and writes the black & white result, by default to
thresholded-image.<ext> in the current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApply(context.Background(), cmd, args[0], applyOpts)
	},
}

// Settings from the command line, falling back to the configured defaults
func (f applyFlags) settings(cmd *cobra.Command) models.Settings {
	var o models.Override
	if cmd.Flags().Changed("method") {
		o.Method = f.method
	}
	if cmd.Flags().Changed("threshold") {
		o.Threshold = &f.threshold
	}
	if cmd.Flags().Changed("format") {
		o.Format = f.format
	} else if f.output != "" {
		// Guess the format from the output file name.
		if format, err := imp.ParseFormat(filepath.Ext(f.output)); err == nil {
			o.Format = format.Extension()
		}
	}
	return defaultSettings().Merge(o)
}

func runApply(ctx context.Context, cmd *cobra.Command, filename string, f applyFlags) error {
	cfg, format, err := resolveSettings(f.settings(cmd))
	if err != nil {
		return err
	}

	src, err := readInput(filename)
	if err != nil {
		return err
	}

	res, err := imp.Export(ctx, src, cfg, format, f.workers, encodeOptions()...)
	metrics.ObserveApply(callerCLI, cfg.Method.String(), elapsedOf(res), err)
	if err != nil {
		return err
	}
	metrics.ObserveEncode(format.String(), len(res.Data))

	output := f.output
	if output == "" {
		output = res.Filename()
	}
	if err := os.WriteFile(output, res.Data, 0644); err != nil {
		return errors.Wrapf(err, "couldn't write %s", output)
	}

	log.Info().
		Str("input", filename).
		Str("output", output).
		Str("method", cfg.Method.String()).
		Float64("level", res.Level).
		Int("width", src.Width).
		Int("height", src.Height).
		Dur("elapsed", res.Elapsed).
		Msg("image thresholded")
	return nil
}

// Resolve settings, rejecting out of range thresholds
func resolveSettings(s models.Settings) (imp.Config, imp.Format, error) {
	if s.Threshold < imp.MinLevel || s.Threshold > imp.MaxLevel {
		return imp.Config{}, 0, errors.Errorf("threshold %d is out of range (%d-%d)", s.Threshold, imp.MinLevel, imp.MaxLevel)
	}
	return s.Resolve()
}

func readInput(filename string) (*imp.Buffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return input.Decode(f, input.Limits{})
}

func elapsedOf(res *imp.Result) (d time.Duration) {
	if res != nil {
		d = res.Elapsed
	}
	return
}

func addSettingsFlags(cmd *cobra.Command, f *applyFlags) {
	cmd.Flags().StringVarP(&f.method, "method", "m", models.DefaultSettings.Method, "thresholding method (binary, otsu, adaptive)")
	cmd.Flags().IntVarP(&f.threshold, "threshold", "t", models.DefaultSettings.Threshold, "threshold, from 0 to 255")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", runtime.NumCPU(), "number of goroutines")
}

func init() {
	rootCmd.AddCommand(applyCmd)

	addSettingsFlags(applyCmd, &applyOpts)
	applyCmd.Flags().StringVarP(&applyOpts.format, "format", "f", models.DefaultSettings.Format, "output format (png, jpg, webp)")
	applyCmd.Flags().StringVarP(&applyOpts.output, "output", "o", "", "output file (default is thresholded-image.<ext>)")
}
