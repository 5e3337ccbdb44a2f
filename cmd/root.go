package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ArnaudCalmettes/seuil/imp"
	"github.com/ArnaudCalmettes/seuil/input"
	"github.com/ArnaudCalmettes/seuil/models"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "seuil",
	Short: "Black & white image thresholding",
	Long: `Converts images to pure black and white using a binary, Otsu-like or
adaptive-like threshold, from the command line or as a Discord bot.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.seuil.yaml)")
	rootCmd.PersistentFlags().String("db", "seuil.sqlite", "database")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("log.json", false)
	viper.SetDefault("bot.prefix", ".")
	viper.SetDefault("bot.workers", runtime.NumCPU())
	viper.SetDefault("bot.timeout", "30s")
	viper.SetDefault("defaults.method", models.DefaultSettings.Method)
	viper.SetDefault("defaults.threshold", models.DefaultSettings.Threshold)
	viper.SetDefault("defaults.format", models.DefaultSettings.Format)
	viper.SetDefault("limits.bytes", input.DefaultLimits.Bytes)
	viper.SetDefault("limits.pixels", input.DefaultLimits.Pixels)
	viper.SetDefault("encode.jpeg_quality", 95)
	viper.SetDefault("encode.webp_quality", 90)
	viper.SetDefault("encode.webp_lossless", true)
	viper.SetDefault("ocr.lang", input.DefaultLanguage)
	viper.SetDefault("metrics.addr", ":9090")
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".seuil" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".seuil")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("SEUIL")

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	initLogger()
	if err == nil {
		log.Info().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

func initLogger() {
	level, err := zerolog.ParseLevel(viper.GetString("log.level"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if viper.GetBool("log.json") {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// Encoding options from the configuration
func encodeOptions() []imp.EncodeOption {
	return []imp.EncodeOption{
		imp.JPEGQuality(viper.GetInt("encode.jpeg_quality")),
		imp.WebPQuality(float32(viper.GetFloat64("encode.webp_quality"))),
		imp.WebPLossless(viper.GetBool("encode.webp_lossless")),
	}
}

// Default settings from the configuration
func defaultSettings() models.Settings {
	return models.Settings{
		Method:    viper.GetString("defaults.method"),
		Threshold: viper.GetInt("defaults.threshold"),
		Format:    viper.GetString("defaults.format"),
	}
}
