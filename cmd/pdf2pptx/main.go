// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf2pptx CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2pptx/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured from log.level and log.format before any
// subcommand runs.
var logger = zerolog.Nop()

// rootCmd is the base command for the pdf2pptx CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf2pptx",
	Short: "Turn PDF documents into slide decks, one page per slide",
	Long: `pdf2pptx renders every page of a PDF document to an image and places
each image on its own slide, scaled to fit the slide canvas with its aspect
ratio preserved and centered on the unused axis.

Intermediate page images live in a private workspace that is removed when
the conversion ends, whether it succeeded or not.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(os.Stderr, logConfig())
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("config", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf2pptx.yaml or ~/.config/pdf2pptx/pdf2pptx.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2pptx")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		if dir := configDir(); dir != "" {
			viper.AddConfigPath(dir)
		}
	}

	setDefaults()

	viper.SetEnvPrefix("PDF2PPTX")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

// configDir returns ~/.config/pdf2pptx, or "" when there is no home.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pdf2pptx")
}

// signalContext is cancelled on SIGINT or SIGTERM so an interrupted
// conversion still releases its workspace.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: 2 for bad input, 1 for
// everything else.
func exitCode(err error) int {
	switch {
	case isAny(err, types.ErrInvalidParameter, types.ErrDocumentNotFound):
		return 2
	default:
		return 1
	}
}
