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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forensicanalysis/artifactsweep"
	"github.com/forensicanalysis/artifactsweep/catalog"
	"github.com/forensicanalysis/artifactsweep/invoke"
)

func Test_newRunner_pathDumper(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, catalog.DumpTool)
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho real dumper\n"), 0700))
	t.Setenv("PATH", dir)

	runner := newRunner("test")
	result, err := runner.Registry.Invoke(catalog.DumpTool, nil, invoke.Options{DecodeText: true})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "real dumper\n", result.Text())
}

func Test_newRunner_builtinDumper(t *testing.T) {
	// Without a dumper on PATH the built-in stand-in handles the tabular
	// conversion.
	t.Setenv("PATH", t.TempDir())

	runner := newRunner("test")
	result, err := runner.Registry.Invoke(catalog.DumpTool, []string{"-C"}, invoke.Options{
		Stdin:      []byte(`{"EventID": "4624"}` + "\n"),
		DecodeText: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "EventID\n4624\n", result.Text())
}

func TestPresets(t *testing.T) {
	var stdout bytes.Buffer
	command := Presets()
	command.SetOut(&stdout)
	require.NoError(t, command.Execute())

	output := stdout.String()
	assert.Contains(t, output, "All event logs")
	assert.Contains(t, output, "evtx")
	assert.Contains(t, output, "Browser History")
}

func TestScopes(t *testing.T) {
	var stdout bytes.Buffer
	command := Scopes()
	command.SetOut(&stdout)
	require.NoError(t, command.Execute())

	output := stdout.String()
	assert.Contains(t, output, "everything")
	assert.Contains(t, output, "External device & USB usage")
}

func Test_mergeConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "run.yml")
	content := strings.Join([]string{
		"scopes: [evtx, usb]",
		"case_id: case-1",
		"export_uri: store:///case.sweepstore",
	}, "\n")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))

	// Flag values win over the configuration file.
	got, err := mergeConfig(artifactsweep.Config{CaseID: "case-2"}, configFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"evtx", "usb"}, got.Scopes)
	assert.Equal(t, "case-2", got.CaseID)
	assert.Equal(t, "store:///case.sweepstore", got.ExportURI)

	// Without a file the flag values pass through unchanged.
	got, err = mergeConfig(artifactsweep.Config{OutputDir: "out"}, "")
	require.NoError(t, err)
	assert.Equal(t, artifactsweep.Config{OutputDir: "out"}, got)

	_, err = mergeConfig(artifactsweep.Config{}, filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func Test_inputFiles(t *testing.T) {
	inputs := inputFiles([]string{"a.E01", "b.E01"})
	assert.Equal(t, []artifactsweep.InputFile{{Path: "a.E01"}, {Path: "b.E01"}}, inputs)
}
