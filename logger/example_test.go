package logger_test

import (
	"fmt"
	"os"
	"regexp"

	"github.com/mordilloSan/go-termlog/logger"
)

// This example runs a scoped session that also captures plain prints.
func ExampleLogger_Run() {
	lg, err := logger.New(logger.Config{Dir: "logs", Level: "DEBUG"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	_ = lg.Run(func() error {
		lg.Info("work starting")
		fmt.Println("this print is captured too")
		return nil
	})
}

// This example manages the session explicitly instead of using Run.
func ExampleLogger_Start() {
	lg, err := logger.New(logger.Config{Dir: "logs", Filename: "nightly", Overwrite: true})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	if err := lg.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer lg.Stop(nil)

	lg.Warning("running low on disk")
}

// This example customizes the log line template.
func ExampleNew_customTemplate() {
	lg, err := logger.New(logger.Config{
		Dir:      "logs",
		Template: "<asctime> <level> | <message>",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	_ = lg.Run(func() error { return lg.Info("custom layout") })
}

// This example tails the newest log file, keeping only errors.
func ExampleViewer_Tail() {
	path, err := logger.LatestLogFile("logs")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	v := logger.NewViewer(logger.ViewerConfig{
		MinLevel: logger.ErrorLevel,
		Pattern:  regexp.MustCompile(`timeout`),
		NoColor:  true,
	}, os.Stdout)

	entries, err := v.Tail(path, 50)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	v.Print(entries)
}
