// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

// Package main implements the artifactsweep command line tool that runs
// forensic analysis presets against disk images.
//     run       Run the preset bundle against disk images
//     query     Run a single analysis tool and capture its text output
//     info      Summarize disk images
//     presets   List the presets of the bundle
//     scopes    List the selectable preset categories
//
// Usage
//
// Run the event log and execution presets against an image
//     artifactsweep run --scope evtx --scope application_execution -o out disk.E01
// Run everything and export records to a store
//     artifactsweep run --export-url store://case.sweepstore -o out disk.E01
// Summarize an image
//     artifactsweep info -o out disk.E01
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/artifactsweep/cmd"
	"github.com/forensicanalysis/artifactsweep/internal/logging"
)

func main() {
	var logLevel, logFormat string
	rootCmd := &cobra.Command{
		Use:   "artifactsweep",
		Short: "Run forensic analysis presets against disk images",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				level = slog.LevelInfo
			}
			logging.Init(level, logFormat)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.AddCommand(cmd.Run(), cmd.Query(), cmd.Info(), cmd.Presets(), cmd.Scopes())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
