package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/adptarray/array"
	"github.com/joshuapare/adptarray/internal/logger"
)

var (
	// Global flags
	configPath string
	formatName string
	maxLen     int
	debug      bool
	logDir     string
	logStderr  bool

	// cfg is the merged configuration, filled in by PersistentPreRunE.
	cfg Config
)

var rootCmd = &cobra.Command{
	Use:   "adptctl",
	Short: "Drive an adaptive array from scripts",
	Long: `adptctl executes command scripts against an adaptive array: an
index-addressed container that grows on demand and owns copies of every
element it stores.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().
		StringVarP(&formatName, "format", "f", string(array.FormatIndexed), "Render format (indexed, plain)")
	rootCmd.PersistentFlags().IntVar(&maxLen, "max-len", array.DefaultMaxLen, "Largest array length allowed")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log directory (default ~/.adptctl/logs)")
	rootCmd.PersistentFlags().BoolVar(&logStderr, "log-stderr", false, "Write log records to stderr instead of a file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup merges the config file with flags and initializes logging.
func setup(cmd *cobra.Command, args []string) error {
	c, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") || c.Format == "" {
		c.Format = formatName
	}
	if flags.Changed("max-len") || c.MaxLen == 0 {
		c.MaxLen = maxLen
	}
	if flags.Changed("debug") {
		c.Log.Enabled = debug
	}
	if flags.Changed("log-dir") {
		c.Log.Dir = logDir
	}
	if flags.Changed("log-stderr") {
		c.Log.Stderr = logStderr
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	level := slog.LevelInfo
	if c.Log.Level != "" {
		if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
			return fmt.Errorf("log level %q: %w", c.Log.Level, err)
		}
	}
	if debug {
		level = slog.LevelDebug
	}
	if err := logger.Init(logger.Options{
		Enabled: c.Log.Enabled,
		LogDir:  c.Log.Dir,
		Level:   level,
		Stderr:  c.Log.Stderr,
	}); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to init logging: %v\n", err)
	}
	logger.Debug("config loaded", "path", configPath, "format", c.Format, "maxLen", c.MaxLen)
	return nil
}

// arrayOptions converts the merged config to array options.
// Zero values keep the array defaults.
func arrayOptions(c Config) []array.Option {
	opts := []array.Option{array.WithFormat(array.Format(c.Format))}
	if c.MaxLen > 0 {
		opts = append(opts, array.WithMaxLen(c.MaxLen))
	}
	if c.MaxBytes > 0 {
		opts = append(opts, array.WithMaxBytes(c.MaxBytes))
	}
	return opts
}
