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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/artifactsweep/catalog"
)

// yaraFunction is the pattern-matching function of the toolkit.
const yaraFunction = "yara"

// yaraPresetName is the display name of the injected preset.
const yaraPresetName = "Yara (custom rule)"

// yaraRun is the dynamic preset built from user supplied rules, together
// with the cleanup obligation for its temporary rule file.
type yaraRun struct {
	preset  catalog.Preset
	cleanup func() error
}

// injectYara builds the ad-hoc Yara preset from inline rule text and rule
// paths. Nil is returned when neither is supplied. The caller must run
// cleanup once the run is over, whether it succeeded or not.
func injectYara(fs afero.Fs, rule string, paths []string) (*yaraRun, error) {
	rule = strings.TrimSpace(rule)
	paths = normalizeRulePaths(paths)
	if rule == "" && len(paths) == 0 {
		return nil, nil
	}

	var ruleArgs []string
	cleanup := func() error { return nil }

	if rule != "" {
		file, err := afero.TempFile(fs, "", "rule-*.yar")
		if err != nil {
			return nil, errors.Wrap(err, "could not create rule file")
		}
		if _, err := file.WriteString(rule); err != nil {
			file.Close()
			return nil, errors.Wrap(err, "could not write rule file")
		}
		if err := file.Close(); err != nil {
			return nil, err
		}
		name := file.Name()
		cleanup = func() error { return fs.Remove(name) }
		ruleArgs = append(ruleArgs, name)
	}
	ruleArgs = append(ruleArgs, paths...)

	return &yaraRun{
		preset: catalog.Preset{
			Name:         yaraPresetName,
			Arguments:    append([]string{"-f", yaraFunction, "-r"}, ruleArgs...),
			OutputSuffix: yaraFunction,
			DumpArgs:     catalog.DefaultDumpArgs,
		},
		cleanup: cleanup,
	}, nil
}

// normalizeRulePaths splits comma or newline separated entries, trims them
// and removes duplicates while keeping first-seen order.
func normalizeRulePaths(raw []string) []string {
	var normalized []string
	seen := map[string]bool{}
	for _, item := range raw {
		for _, path := range catalog.SplitList(item) {
			if !seen[path] {
				seen[path] = true
				normalized = append(normalized, path)
			}
		}
	}
	return normalized
}
