package main

import (
	"fmt"
	"os"

	"github.com/mordilloSan/go-termlog/logger"
)

// Example demonstrating a scoped logging session with output capture.
func main() {
	dir := "logs"

	// Usage: ./go-termlog [logdir]
	// Example: ./go-termlog /tmp/mylogs
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	lg, err := logger.New(logger.Config{
		Dir:      dir,
		Level:    "DEBUG", // Raise this to INFO or higher to drop debug output.
		Colorize: true,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = lg.Run(func() error {
		// Leveled logging goes to the terminal and the log file.
		lg.Debug("starting up")
		lg.Info("hello world")
		lg.Warning("be careful")
		lg.Error("oops: something happened")
		lg.Critical("this is as bad as it gets")

		// Plain prints are captured too while the session is open:
		// stdout is recorded at INFO, stderr at ERROR.
		fmt.Println("this print statement lands in the log file")
		fmt.Fprintln(os.Stderr, "and so does this stderr write")

		// Return an error (or panic) here to see it recorded in the log
		// before the session closes. It still propagates to the caller.
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("logs saved to: %s\n", lg.FilePath())
}
