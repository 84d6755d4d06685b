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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forensicanalysis/artifactsweep/catalog"
	"github.com/forensicanalysis/artifactsweep/outputs"
)

func Test_reportBuilder_finalize(t *testing.T) {
	var builder reportBuilder
	builder.addOutput(&outputs.File{Path: "out/disk-evtx.csv"})
	builder.addOutput(&outputs.File{Path: "out/other-evtx.csv"})
	builder.addSkip("Shimcache", "shimcache")

	executed := []catalog.Preset{
		{Name: "All event logs"},
		{Name: "All event logs"},
		{Name: "Prefetch"},
	}

	report, err := builder.finalize(executed, []catalog.Category{catalog.AllEventLogs})
	require.NoError(t, err)
	assert.Equal(t, []string{"All event logs", "Prefetch"}, report.Presets)
	assert.Equal(t, []string{"All event logs"}, report.SelectionLabels)
	assert.Len(t, report.OutputFiles, 2)
	assert.Equal(t, []SkippedPreset{{Preset: "Shimcache", Function: "shimcache"}}, report.Skipped)
}

func Test_reportBuilder_finalize_empty(t *testing.T) {
	var builder reportBuilder
	_, err := builder.finalize(nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyReport))
}

func TestToolError_Error(t *testing.T) {
	withDiagnostics := &ToolError{
		Tool:        "target-query",
		Preset:      "All event logs",
		Input:       "disk.E01",
		Diagnostics: "boom\n",
		ExitCode:    1,
	}
	assert.Equal(t, "boom", withDiagnostics.Error())

	silent := &ToolError{
		Tool:     "target-query",
		Preset:   "All event logs",
		Input:    "disk.E01",
		ExitCode: 2,
	}
	assert.Equal(t,
		"target-query preset 'All event logs' failed for disk.E01 with exit code 2",
		silent.Error())
}
