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
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/forensicanalysis/artifactsweep"
	"github.com/forensicanalysis/artifactsweep/catalog"
	"github.com/forensicanalysis/artifactsweep/internal/logging"
	"github.com/forensicanalysis/artifactsweep/invoke"
	"github.com/forensicanalysis/artifactsweep/recdump"
)

// Run is the artifactsweep run commandline subcommand
func Run() *cobra.Command {
	var configFile string
	var cfg artifactsweep.Config

	runCommand := &cobra.Command{
		Use:   "run <image>...",
		Short: "Run the preset bundle against disk images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := mergeConfig(cfg, configFile)
			if err != nil {
				return err
			}
			// Only a changed flag carries an explicit export decision.
			if cmd.Flags().Changed("export") {
				enabled, err := cmd.Flags().GetBool("export")
				if err != nil {
					return err
				}
				merged.Export = &enabled
			}
			if ruleFile, _ := cmd.Flags().GetString("yara-rule-file"); ruleFile != "" {
				rule, err := os.ReadFile(ruleFile) // #nosec
				if err != nil {
					return errors.Wrap(err, "could not read rule file")
				}
				merged.YaraRule = string(rule)
			}

			runner := newRunner("run")
			report, err := runner.Run(inputFiles(args), merged)
			if err != nil {
				return err
			}
			return printReport(cmd, report)
		},
	}

	flags := runCommand.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "YAML run configuration file")
	flags.StringSliceVar(&cfg.Scopes, "scope", nil, "preset categories to run, 'everything' selects all")
	flags.StringVar(&cfg.YaraRule, "yara-rule", "", "inline Yara rule text")
	flags.String("yara-rule-file", "", "file with Yara rule text")
	flags.StringSliceVar(&cfg.YaraRulePaths, "yara-rule-paths", nil, "paths scanned by the Yara rule")
	flags.StringVar(&cfg.ExportURI, "export-url", "", "record export destination (store:// or http[s]://)")
	flags.StringVar(&cfg.CaseID, "case-id", "", "case identifier attached to exported records")
	flags.Bool("export", false, "force record export on or off")
	flags.StringVarP(&cfg.OutputDir, "output", "o", "", "directory for produced artifacts")
	_ = runCommand.MarkFlagRequired("output")
	return runCommand
}

// mergeConfig overlays flag values over a YAML run configuration. Flag
// values win where both are set.
func mergeConfig(cfg artifactsweep.Config, configFile string) (artifactsweep.Config, error) {
	if configFile == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(configFile) // #nosec
	if err != nil {
		return cfg, errors.Wrap(err, "could not read configuration file")
	}
	var fileConfig artifactsweep.Config
	if err := yaml.Unmarshal(content, &fileConfig); err != nil {
		return cfg, errors.Wrap(err, "could not parse configuration file")
	}
	if err := mergo.Merge(&cfg, fileConfig); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func inputFiles(paths []string) []artifactsweep.InputFile {
	inputs := make([]artifactsweep.InputFile, 0, len(paths))
	for _, path := range paths {
		inputs = append(inputs, artifactsweep.InputFile{Path: path})
	}
	return inputs
}

func printReport(cmd *cobra.Command, report *artifactsweep.Report) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// newRunner wires the toolkit. The analysis tools come from PATH; the
// built-in record dump tool is only a fallback, a real dumper on PATH
// replaces it.
func newRunner(component string) *artifactsweep.Runner {
	registry := invoke.NewRegistry()
	recdump.Register(registry)
	invoke.RegisterExecutables(registry,
		catalog.QueryTool, catalog.DumpTool, artifactsweep.DefaultQueryTool)

	return &artifactsweep.Runner{
		Registry:     registry,
		Capabilities: invoke.NewCapabilities(functionFinder(registry)),
		Defaults:     artifactsweep.DefaultsFromEnv(),
		Log:          logging.New(component),
	}
}

// functionFinder asks the query tool for its function list once and
// answers availability from that. A failing list call leaves every
// function enabled, the run then surfaces real errors per preset.
func functionFinder(registry *invoke.Registry) invoke.FinderFunc {
	var once sync.Once
	var functions map[string]bool

	return func(name string) bool {
		once.Do(func() {
			result, err := registry.Invoke(catalog.QueryTool, []string{"--list"},
				invoke.Options{DecodeText: true})
			if err != nil || result.ExitCode != 0 {
				logging.New("capabilities").Warn("could not list analysis functions",
					"error", err)
				return
			}
			functions = map[string]bool{}
			for _, field := range strings.Fields(result.Text()) {
				functions[strings.Trim(field, ",")] = true
			}
		})
		if functions == nil {
			return true
		}
		return functions[name]
	}
}
