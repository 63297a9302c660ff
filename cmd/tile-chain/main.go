package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/core"
	"github.com/lixenwraith/tile-chain/parameter"
)

const (
	logDir      = parameter.LogDir
	logFileName = parameter.LogFileName
	maxLogSize  = parameter.MaxLogSize
)

// rootOptions holds flags shared by every subcommand
type rootOptions struct {
	Debug      bool
	ConfigPath string

	logger  zerolog.Logger
	logFile *os.File
}

// loadConfig returns defaults when no --config was given
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.ConfigPath)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tile-chain",
		Short: "Connect-and-clear tile puzzle",
		Long: `tile-chain drags chains through same-flavor tiles and clears them.

Chains of three or more clear tile by tile, area-clear tiles cascade into
their neighbors, and the board refills with an animated pour.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logFile = setupLogging(opts.Debug)
			if opts.logFile != nil {
				opts.logger = newFileLogger(opts.logFile)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logFile != nil {
				opts.logFile.Close()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "write debug log to "+filepath.Join(logDir, logFileName))
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (.toml, .yaml)")

	cmd.AddCommand(newPlayCommand(opts))
	cmd.AddCommand(newSimCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging opens the rotated debug log file for the structured logger
// Returns nil when debug is off or the file cannot be opened
func setupLogging(debug bool) *os.File {
	if !debug {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "create log dir: %v\n", err)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("tile-chain-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "rotate log: %v\n", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		return nil
	}
	return f
}

// newFileLogger builds the structured logger, LOG_LEVEL overrides the debug default
func newFileLogger(w io.Writer) zerolog.Logger {
	level := zerolog.DebugLevel
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "debug")); err == nil {
		level = lvl
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
