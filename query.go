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
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"

	"github.com/forensicanalysis/artifactsweep/invoke"
)

// DefaultQueryTool is the tool run by RunQuery when none is named.
const DefaultQueryTool = "target-info"

// queryContentType marks the plain text artifacts of single-tool runs.
const queryContentType = "artifactsweep:query:text"

// QueryConfig configures a single-tool run.
type QueryConfig struct {
	// Tool is the registered tool to run; empty means DefaultQueryTool.
	Tool string `json:"tool" yaml:"tool"`
	// Arguments is a shell-style argument string passed to the tool
	// before the image path.
	Arguments string `json:"arguments" yaml:"arguments"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// RunQuery runs one tool against every input and persists the captured
// text output per image. Unlike the preset bundle there is no record
// conversion and no export, the tool's stdout is the artifact.
func (r *Runner) RunQuery(inputs []InputFile, cfg QueryConfig) (*Report, error) {
	if cfg.OutputDir == "" {
		return nil, errors.New("output directory is required")
	}
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	tool := strings.TrimSpace(cfg.Tool)
	if tool == "" {
		tool = DefaultQueryTool
	}
	arguments, err := SplitArguments(cfg.Arguments)
	if err != nil {
		return nil, err
	}
	if !r.capabilities().IsAvailable(tool) {
		return nil, errors.Wrap(ErrNoneAvailable, tool)
	}

	var builder reportBuilder
	for _, input := range inputs {
		if input.Path == "" {
			r.log().Warn("skipping input without a path", "input", input.DisplayName)
			continue
		}
		if err := r.queryInput(&builder, tool, arguments, input, cfg.OutputDir); err != nil {
			return nil, err
		}
	}

	if len(builder.outputFiles) == 0 {
		return nil, ErrEmptyReport
	}
	return &Report{
		OutputFiles: builder.outputFiles,
		Presets:     []string{tool},
		Results:     builder.results,
	}, nil
}

func (r *Runner) queryInput(builder *reportBuilder, tool string, arguments []string, input InputFile, out string) error {
	workPath, release, err := r.materializer().Materialize(input.Path)
	if err != nil {
		return errors.Wrap(err, "could not materialize input")
	}
	defer func() {
		if err := release(); err != nil {
			r.log().Warn("could not release input", "input", input.Path, "error", err)
		}
	}()

	display := input.displayName()
	base := strings.TrimSuffix(display, filepath.Ext(display))

	commandArgs := append(append([]string(nil), arguments...), workPath)
	command := commandText(tool, commandArgs)
	r.log().Info("running query", "tool", tool, "command", command)

	result, err := r.Registry.Invoke(tool, commandArgs, invoke.Options{DecodeText: true})
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		r.log().Error("query failed", "command", command, "exit_code", result.ExitCode)
		return &ToolError{
			Tool:        tool,
			Preset:      tool,
			Input:       display,
			Diagnostics: result.Diagnostics,
			ExitCode:    result.ExitCode,
		}
	}
	if diagnostics := strings.TrimSpace(result.Diagnostics); diagnostics != "" {
		r.log().Warn("query reported warnings", "command", command, "diagnostics", diagnostics)
	}

	file, err := r.store().Write(out, base+"-"+tool, "txt", queryContentType,
		[]byte(result.Text()))
	if err != nil {
		return err
	}
	builder.addOutput(file)
	builder.addResult(ResultEntry{
		Input:            display,
		Preset:           tool,
		QueryCommand:     command,
		QueryDiagnostics: strings.TrimSpace(result.Diagnostics),
	})
	return nil
}

// SplitArguments tokenizes a shell-style argument string. Single quotes
// keep their content verbatim, double quotes allow backslash escapes for
// the quote and the backslash, an unquoted backslash escapes the next
// character.
func SplitArguments(arguments string) ([]string, error) {
	if strings.TrimSpace(arguments) == "" {
		return nil, nil
	}
	tokens, err := shlex.Split(arguments)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse arguments")
	}
	return tokens, nil
}
