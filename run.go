/*
 * Copyright (c) 2020 Siemens AG
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 * Author(s): Jonas Plum
 */

package artifactsweep

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/artifactsweep/catalog"
	"github.com/forensicanalysis/artifactsweep/invoke"
	"github.com/forensicanalysis/artifactsweep/outputs"
)

// InputFile is one disk image to process. Inputs are supplied externally
// and only read from.
type InputFile struct {
	Path        string `json:"path" yaml:"path"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

func (f InputFile) displayName() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return filepath.Base(f.Path)
}

// Runner drives the preset bundle against disk images. Execution is
// strictly sequential: the invocation harness owns process-wide state, so
// no two invocations may overlap.
type Runner struct {
	Registry     *invoke.Registry
	Capabilities *invoke.Capabilities
	Catalog      []catalog.Preset
	Store        *outputs.Store
	Materializer outputs.Materializer
	Defaults     Defaults
	// FS holds temporary rule files; nil means the operating system's
	// filesystem.
	FS  afero.Fs
	Log *slog.Logger
}

func (r *Runner) catalogPresets() []catalog.Preset {
	if r.Catalog != nil {
		return r.Catalog
	}
	return catalog.Bundle
}

func (r *Runner) fs() afero.Fs {
	if r.FS != nil {
		return r.FS
	}
	return afero.NewOsFs()
}

func (r *Runner) materializer() outputs.Materializer {
	if r.Materializer != nil {
		return r.Materializer
	}
	return outputs.DirectPath{Fs: r.FS}
}

// store and capabilities resolve their default once and keep it, the
// capability cache must survive across presets and inputs.
func (r *Runner) store() *outputs.Store {
	if r.Store == nil {
		r.Store = outputs.NewStore(r.FS)
	}
	return r.Store
}

func (r *Runner) capabilities() *invoke.Capabilities {
	if r.Capabilities == nil {
		r.Capabilities = invoke.NewCapabilities(nil)
	}
	return r.Capabilities
}

func (r *Runner) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// bundleRun is the state of one orchestration call.
type bundleRun struct {
	*Runner
	plan    exportPlan
	out     string
	builder reportBuilder
}

// Run executes the selected presets for every input and returns the
// aggregated report. Any tool failure aborts the whole run.
func (r *Runner) Run(inputs []InputFile, cfg Config) (*Report, error) {
	if cfg.OutputDir == "" {
		return nil, errors.New("output directory is required")
	}
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	scopes := catalog.Normalize(cfg.Scopes, cfg.Scopes == nil)
	selected := catalog.Select(r.catalogPresets(), scopes)

	yara, err := injectYara(r.fs(), cfg.YaraRule, cfg.YaraRulePaths)
	if err != nil {
		return nil, err
	}
	if yara != nil {
		defer func() {
			if err := yara.cleanup(); err != nil {
				r.log().Warn("could not remove temporary rule file", "error", err)
			}
		}()
	}

	if len(selected) == 0 && yara == nil {
		return nil, ErrNoSelection
	}

	plan, err := resolveExport(cfg, r.Defaults)
	if err != nil {
		return nil, err
	}

	run := &bundleRun{Runner: r, plan: plan, out: cfg.OutputDir}

	var available []catalog.Preset
	for _, preset := range selected {
		function := preset.Function()
		if r.capabilities().IsAvailable(function) {
			available = append(available, preset)
			continue
		}
		r.log().Warn("skipping preset, function unavailable",
			"preset", preset.Name, "function", function)
		run.builder.addSkip(preset.Name, function)
	}
	if len(available) == 0 && yara == nil {
		return nil, ErrNoneAvailable
	}

	if yara != nil {
		if r.capabilities().IsAvailable(yaraFunction) {
			available = append(available, yara.preset)
		} else {
			r.log().Warn("skipping custom rule execution, function unavailable",
				"function", yaraFunction)
			run.builder.addSkip(yara.preset.Name, yaraFunction)
		}
	}

	for _, input := range inputs {
		if err := run.processInput(input, available); err != nil {
			return nil, err
		}
	}

	return run.builder.finalize(available, scopes)
}

// processInput materializes one image and runs every preset against it.
// The working path is released before the next image, also on failure.
func (br *bundleRun) processInput(input InputFile, presets []catalog.Preset) error {
	if input.Path == "" {
		br.log().Warn("skipping input without a path", "input", input.DisplayName)
		return nil
	}

	workPath, release, err := br.materializer().Materialize(input.Path)
	if err != nil {
		return errors.Wrap(err, "could not materialize input")
	}
	defer func() {
		if err := release(); err != nil {
			br.log().Warn("could not release input", "input", input.Path, "error", err)
		}
	}()

	display := input.displayName()
	base := strings.TrimSuffix(display, filepath.Ext(display))

	for _, preset := range presets {
		if err := br.processPreset(preset, workPath, display, base); err != nil {
			return err
		}
	}
	return nil
}

// processPreset runs the primary invocation, the tabular conversion and
// the optional export fork for one (input, preset) pair and persists the
// produced artifact.
func (br *bundleRun) processPreset(preset catalog.Preset, workPath, display, base string) error {
	arguments := append(append([]string(nil), preset.Arguments...), workPath)
	queryCommand := commandText(preset.ToolName(), arguments)
	br.log().Info("running query", "preset", preset.Name, "command", queryCommand)

	query, err := br.Registry.Invoke(preset.ToolName(), arguments,
		invoke.Options{DecodeText: preset.NoDump})
	if err != nil {
		return err
	}
	if query.ExitCode != 0 {
		br.log().Error("query failed", "command", queryCommand,
			"exit_code", query.ExitCode)
		return &ToolError{
			Tool:        preset.ToolName(),
			Preset:      preset.Name,
			Input:       display,
			Diagnostics: query.Diagnostics,
			ExitCode:    query.ExitCode,
		}
	}

	entry := ResultEntry{
		Input:            display,
		Preset:           preset.Name,
		Function:         preset.Function(),
		QueryCommand:     queryCommand,
		QueryDiagnostics: strings.TrimSpace(query.Diagnostics),
	}

	content := query.Text()
	if !preset.NoDump {
		dumped, dumpCommand, err := br.dump(preset, display, query.Output)
		if err != nil {
			return err
		}
		content = dumped.Text()
		entry.DumpCommand = dumpCommand
		entry.DumpDiagnostics = strings.TrimSpace(dumped.Diagnostics)

		// The export fork consumes the same primary output once more.
		if br.plan.enabled {
			if err := br.export(preset, display, query.Output); err != nil {
				return err
			}
			entry.ExportTarget = br.plan.uri
		}
	}

	file, err := br.store().Write(br.out, base+"-"+preset.OutputSuffix,
		preset.Extension(), preset.ContentType(), []byte(content))
	if err != nil {
		return err
	}
	br.builder.addOutput(file)
	br.builder.addResult(entry)
	return nil
}

// dump pipes record-formatted primary output through the tabular
// conversion stage.
func (br *bundleRun) dump(preset catalog.Preset, display string, records []byte) (*invoke.Result, string, error) {
	dumpArgs := preset.DumpArgs
	if dumpArgs == nil {
		dumpArgs = catalog.DefaultDumpArgs
	}
	dumpCommand := commandText(catalog.DumpTool, dumpArgs)

	result, err := br.Registry.Invoke(catalog.DumpTool, dumpArgs,
		invoke.Options{Stdin: records, DecodeText: true})
	if err != nil {
		return nil, "", err
	}
	if result.ExitCode != 0 {
		br.log().Error("record dump failed", "command", dumpCommand,
			"exit_code", result.ExitCode)
		return nil, "", &ToolError{
			Tool:        catalog.DumpTool,
			Preset:      preset.Name,
			Input:       display,
			Diagnostics: result.Diagnostics,
			ExitCode:    result.ExitCode,
		}
	}
	return result, dumpCommand, nil
}

// export sends the primary output to the configured destination through
// the dump tool's write mode.
func (br *bundleRun) export(preset catalog.Preset, display string, records []byte) error {
	arguments := []string{
		"-w", br.plan.uri,
		"--tag", "tool=" + preset.Function(),
		"--tag", "input=" + display,
	}
	if br.plan.caseID != "" {
		arguments = append(arguments, "--tag", "case="+br.plan.caseID)
	}

	result, err := br.Registry.Invoke(catalog.DumpTool, arguments,
		invoke.Options{Stdin: records, DecodeText: true})
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		br.log().Error("record export failed", "destination", br.plan.uri,
			"exit_code", result.ExitCode)
		return &ToolError{
			Tool:        catalog.DumpTool,
			Preset:      preset.Name,
			Input:       display,
			Diagnostics: result.Diagnostics,
			ExitCode:    result.ExitCode,
		}
	}
	return nil
}

// commandText renders an invocation for logging and report metadata.
func commandText(tool string, arguments []string) string {
	parts := []string{tool}
	for _, argument := range arguments {
		parts = append(parts, quoteArgument(argument))
	}
	return strings.Join(parts, " ")
}

func quoteArgument(argument string) string {
	if argument == "" {
		return "''"
	}
	if strings.ContainsAny(argument, " \t\n\"'\\$&|;<>()*?[]#~") {
		return "'" + strings.ReplaceAll(argument, "'", `'"'"'`) + "'"
	}
	return argument
}
