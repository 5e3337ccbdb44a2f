package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ArnaudCalmettes/seuil/bot"
	"github.com/ArnaudCalmettes/seuil/metrics"
)

var token string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if token != "" {
			viper.Set("bot.token", token)
		}
		opts := botOptions()
		if opts.Token == "" {
			return errors.New("missing discord token (use --token or SEUIL_BOT_TOKEN)")
		}
		if _, _, err := opts.Defaults.Resolve(); err != nil {
			return errors.Wrap(err, "invalid default settings")
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := migrateDB(db); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
		defer stop()

		if addr := viper.GetString("metrics.addr"); addr != "" {
			go func() {
				if err := metrics.Serve(ctx, addr); err != nil {
					log.Error().Err(err).Str("component", "metrics").Msg("metrics endpoint stopped")
				}
			}()
		}

		return bot.Run(ctx, db, opts)
	},
}

func botOptions() bot.Options {
	opts := bot.DefaultOptions()
	opts.Token = viper.GetString("bot.token")
	opts.Prefix = viper.GetString("bot.prefix")
	opts.Workers = viper.GetInt("bot.workers")
	opts.Timeout = viper.GetDuration("bot.timeout")
	opts.Defaults = defaultSettings()
	opts.Limits.Bytes = viper.GetInt64("limits.bytes")
	opts.Limits.Pixels = viper.GetInt("limits.pixels")
	opts.Encode = encodeOptions()
	opts.OCRLanguage = viper.GetString("ocr.lang")
	return opts
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&token, "token", "t", "", "discord token")
}
