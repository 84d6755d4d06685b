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

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/artifactsweep"
	"github.com/forensicanalysis/artifactsweep/invoke"
)

// Query is the artifactsweep query commandline subcommand
func Query() *cobra.Command {
	var cfg artifactsweep.QueryConfig
	queryCommand := &cobra.Command{
		Use:   "query <image>...",
		Short: "Run a single analysis tool and capture its text output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := newRunner("query")
			if cfg.Tool != "" {
				invoke.RegisterExecutables(runner.Registry, cfg.Tool)
			}
			report, err := runner.RunQuery(inputFiles(args), cfg)
			if err != nil {
				return err
			}
			return printReport(cmd, report)
		},
	}

	flags := queryCommand.Flags()
	flags.StringVarP(&cfg.Tool, "tool", "t", "", "analysis tool to run, defaults to "+artifactsweep.DefaultQueryTool)
	flags.StringVarP(&cfg.Arguments, "arguments", "a", "", "shell-style argument string passed before the image path")
	flags.StringVarP(&cfg.OutputDir, "output", "o", "", "directory for produced artifacts")
	_ = queryCommand.MarkFlagRequired("output")
	return queryCommand
}

// Info is the artifactsweep info commandline subcommand
func Info() *cobra.Command {
	var output string
	infoCommand := &cobra.Command{
		Use:   "info <image>...",
		Short: "Summarize disk images with " + artifactsweep.DefaultQueryTool,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := newRunner("info")
			report, err := runner.RunQuery(inputFiles(args),
				artifactsweep.QueryConfig{OutputDir: output})
			if err != nil {
				return err
			}
			return printReport(cmd, report)
		},
	}
	infoCommand.Flags().StringVarP(&output, "output", "o", "", "directory for produced artifacts")
	_ = infoCommand.MarkFlagRequired("output")
	return infoCommand
}
