package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ArnaudCalmettes/seuil/imp"
	"github.com/ArnaudCalmettes/seuil/input"
)

var readOpts applyFlags

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <image>",
	Short: "Threshold an image file and print the text it contains",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := resolveSettings(readOpts.settings(cmd))
		if err != nil {
			return err
		}
		src, err := readInput(args[0])
		if err != nil {
			return err
		}
		bin, err := imp.ApplyConcurrent(context.Background(), src, cfg, readOpts.workers)
		if err != nil {
			return err
		}
		txt, err := input.Text(bin, viper.GetString("ocr.lang"))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), txt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	addSettingsFlags(readCmd, &readOpts)
	readCmd.Flags().String("lang", input.DefaultLanguage, "tesseract language")
	viper.BindPFlag("ocr.lang", readCmd.Flags().Lookup("lang"))
}
