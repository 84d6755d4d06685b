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
	"os"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"

	"github.com/forensicanalysis/artifactsweep/export"
)

// Config carries the user supplied options for one bundle run.
type Config struct {
	// Scopes selects preset categories. A nil slice means no selection
	// input was supplied and resolves to everything; an empty non-nil
	// slice disables category selection, for Yara-only runs.
	Scopes []string `yaml:"scopes"`
	// YaraRule is inline rule text for the dynamic Yara preset.
	YaraRule string `yaml:"yara_rule"`
	// YaraRulePaths are rule files or directories, comma or newline
	// separated entries allowed.
	YaraRulePaths []string `yaml:"yara_rule_paths"`
	// ExportURI is the explicit record export destination.
	ExportURI string `yaml:"export_uri"`
	// CaseID tags exported records.
	CaseID string `yaml:"case_id"`
	// Export forces record export on or off. When nil, export is on
	// exactly if an explicit destination was supplied.
	Export *bool `yaml:"export"`
	// OutputDir receives the produced artifact files.
	OutputDir string `yaml:"output_dir"`
}

// Defaults holds ambient fallbacks, resolved once at startup and read-only
// afterwards.
type Defaults struct {
	ExportURI string
}

// DefaultsFromEnv reads ambient defaults from the process environment.
func DefaultsFromEnv() Defaults {
	return Defaults{ExportURI: os.Getenv("ARTIFACTSWEEP_EXPORT_URI")}
}

// exportPlan is the resolved export decision for one run.
type exportPlan struct {
	enabled bool
	uri     string
	caseID  string
}

// resolveExport decides whether and where records are exported. The
// explicit flag wins; without it export is enabled exactly when an explicit
// destination was supplied. The destination falls back to the ambient
// default, and a run that wants export without any resolvable destination
// fails before any invocation.
func resolveExport(cfg Config, defaults Defaults) (exportPlan, error) {
	plan := exportPlan{caseID: cfg.CaseID}
	if cfg.Export != nil {
		plan.enabled = *cfg.Export
	} else {
		plan.enabled = cfg.ExportURI != ""
	}
	if !plan.enabled {
		return plan, nil
	}

	merged := cfg
	if err := mergo.Merge(&merged, Config{ExportURI: defaults.ExportURI}); err != nil {
		return plan, err
	}
	plan.uri = merged.ExportURI

	if plan.uri == "" {
		return plan, ErrNoDestination
	}
	if !export.Supported(plan.uri) {
		return plan, errors.Wrap(export.ErrUnsupportedScheme, plan.uri)
	}
	return plan, nil
}
