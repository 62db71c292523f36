// Package main provides the termlog-tail command - a viewer for log files
// written by the logger package.
//
// Usage:
//
//	termlog-tail [flags]
//
// Flags:
//
//	-f, --follow         Follow log output (like tail -f)
//	-n, --lines int      Number of lines to show (default 50)
//	    --level string   Minimum level (debug|info|warning|error|critical)
//	    --filter string  Filter messages by pattern (regex)
//	    --no-color       Disable colored output
//	    --file string    Log file path (default: newest .log in --dir)
//	    --dir string     Log directory to search (default "logs")
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mordilloSan/go-termlog/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		follow  bool
		lines   int
		level   string
		filter  string
		noColor bool
		logFile string
		logDir  string
	)

	cmd := &cobra.Command{
		Use:   "termlog-tail",
		Short: "View go-termlog log files",
		Long: `View and tail log files produced by the logger package.

By default, shows the last 50 lines of the newest .log file in the log
directory. Use -f to follow new log entries in real-time (like 'tail -f');
press Ctrl-C to stop.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(viewOptions{
				follow:  follow,
				lines:   lines,
				level:   level,
				filter:  filter,
				noColor: noColor,
				logFile: logFile,
				logDir:  logDir,
			})
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "follow log output")
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show")
	cmd.Flags().StringVar(&level, "level", "", "minimum level (debug|info|warning|error|critical)")
	cmd.Flags().StringVar(&filter, "filter", "", "filter messages by pattern (regex)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&logFile, "file", "", "log file path (default: newest .log in --dir)")
	cmd.Flags().StringVar(&logDir, "dir", "logs", "log directory to search")

	return cmd
}

type viewOptions struct {
	follow  bool
	lines   int
	level   string
	filter  string
	noColor bool
	logFile string
	logDir  string
}

func run(opts viewOptions) error {
	path := opts.logFile
	if path == "" {
		found, err := logger.LatestLogFile(opts.logDir)
		if err != nil {
			return err
		}
		path = found
	}

	var pattern *regexp.Regexp
	if opts.filter != "" {
		compiled, err := regexp.Compile(opts.filter)
		if err != nil {
			return fmt.Errorf("invalid filter pattern: %w", err)
		}
		pattern = compiled
	}

	var minLevel logger.Level
	if opts.level != "" {
		minLevel = logger.ParseLevel(opts.level)
	}

	noColor := opts.noColor
	if !noColor && !isTerminal(os.Stdout) {
		noColor = true
	}

	viewer := logger.NewViewer(logger.ViewerConfig{
		MinLevel: minLevel,
		Pattern:  pattern,
		NoColor:  noColor,
	}, os.Stdout)

	entries, err := viewer.Tail(path, opts.lines)
	if err != nil {
		return err
	}
	viewer.Print(entries)

	if !opts.follow {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ch := make(chan logger.Entry)
	errCh := make(chan error, 1)
	go func() {
		errCh <- viewer.Follow(ctx, path, ch)
	}()

	for {
		select {
		case entry := <-ch:
			fmt.Fprintln(os.Stdout, viewer.FormatEntry(entry))
		case err := <-errCh:
			return err
		}
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
