package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/corey/strsearch/internal/app"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logFile  bool

	// logger is configured by the root pre-run hook.
	logger    = slog.New(slog.DiscardHandler)
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:               "strsearch",
	Short:             "strsearch: exact substring search benchmark",
	Long:              "Measures KMP, Boyer-Moore, and Rabin-Karp against strings.Index and regexp over a text corpus.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	return dir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.BoolVar(&logFile, "log-file", false, "Write JSON logs to .strsearch/log/bench.log instead of stderr")

	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(sampleCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := parseLevel(logLevel)
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}
	if !logFile {
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
		return nil
	}

	paths := app.NewPaths(projectRoot())
	if err := paths.EnsureDirs(); err != nil {
		return err
	}
	f, err := os.OpenFile(paths.BenchLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	logCloser = f
	logger = slog.New(slog.NewJSONHandler(f, opts))
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q", s)
	}
	return level, nil
}
