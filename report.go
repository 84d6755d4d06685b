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
	"github.com/forensicanalysis/artifactsweep/catalog"
	"github.com/forensicanalysis/artifactsweep/outputs"
)

// SkippedPreset records a preset that was not executed because its analysis
// function is unavailable.
type SkippedPreset struct {
	Preset   string `json:"preset"`
	Function string `json:"function"`
}

// ResultEntry is the per-(input, preset) metadata of one pipeline pass.
type ResultEntry struct {
	Input            string `json:"input"`
	Preset           string `json:"preset"`
	Function         string `json:"function,omitempty"`
	QueryCommand     string `json:"query_command"`
	QueryDiagnostics string `json:"query_diagnostics,omitempty"`
	DumpCommand      string `json:"dump_command,omitempty"`
	DumpDiagnostics  string `json:"dump_diagnostics,omitempty"`
	ExportTarget     string `json:"export_target,omitempty"`
}

// Report is the aggregated result of one run. It is the run's sole return
// value; serialization into a task-result envelope is up to the caller.
type Report struct {
	OutputFiles     []*outputs.File    `json:"output_files"`
	Presets         []string           `json:"presets"`
	Results         []ResultEntry      `json:"results"`
	Skipped         []SkippedPreset    `json:"skipped_presets"`
	Selection       []catalog.Category `json:"selection,omitempty"`
	SelectionLabels []string           `json:"selection_label,omitempty"`
}

// reportBuilder accumulates the report during a run.
type reportBuilder struct {
	outputFiles []*outputs.File
	results     []ResultEntry
	skipped     []SkippedPreset
}

func (b *reportBuilder) addOutput(file *outputs.File) {
	b.outputFiles = append(b.outputFiles, file)
}

func (b *reportBuilder) addResult(entry ResultEntry) {
	b.results = append(b.results, entry)
}

func (b *reportBuilder) addSkip(preset, function string) {
	b.skipped = append(b.skipped, SkippedPreset{Preset: preset, Function: function})
}

// finalize enforces the non-empty-result invariant and assembles the
// report. Executed preset names keep selection order, de-duplicated.
func (b *reportBuilder) finalize(executed []catalog.Preset, selection []catalog.Category) (*Report, error) {
	if len(b.outputFiles) == 0 {
		return nil, ErrEmptyReport
	}

	var presetNames []string
	seen := map[string]bool{}
	for _, preset := range executed {
		if preset.Name != "" && !seen[preset.Name] {
			seen[preset.Name] = true
			presetNames = append(presetNames, preset.Name)
		}
	}

	return &Report{
		OutputFiles:     b.outputFiles,
		Presets:         presetNames,
		Results:         b.results,
		Skipped:         b.skipped,
		Selection:       selection,
		SelectionLabels: catalog.Labels(selection),
	}, nil
}
