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

// Package catalog defines the preset table for disk-image sweeps and the
// category scopes used to select presets from it.
package catalog

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Category is a canonical scope identifier used to select presets.
type Category string

// All canonical categories. Everything is the wildcard that disables
// category filtering.
const (
	Everything           Category = "everything"
	AllEventLogs         Category = "all_event_logs"
	MFTTimeline          Category = "mft_timeline"
	ApplicationExecution Category = "application_execution"
	FileFolderOpening    Category = "file_folder_opening"
	DeletedItems         Category = "deleted_items_file_existence"
	BrowserActivity      Category = "browser_activity"
	ExternalDevice       Category = "external_device_usage"
)

// Order lists all categories in presentation order.
var Order = []Category{
	Everything,
	AllEventLogs,
	MFTTimeline,
	ApplicationExecution,
	FileFolderOpening,
	DeletedItems,
	BrowserActivity,
	ExternalDevice,
}

var labels = map[Category]string{
	Everything:           "Everything",
	AllEventLogs:         "All event logs",
	MFTTimeline:          "MFT timeline",
	ApplicationExecution: "Application execution",
	FileFolderOpening:    "File & folder opening",
	DeletedItems:         "Deleted items & file existence",
	BrowserActivity:      "Browser activity",
	ExternalDevice:       "External device & USB usage",
}

// Label returns the display label of a category.
func (c Category) Label() string {
	if label, ok := labels[c]; ok {
		return label
	}
	return string(c)
}

// aliases maps lowercased shorthand spellings to their category.
var aliases = map[string]Category{
	"all":            Everything,
	"all-event-logs": AllEventLogs,
	"eventlogs":      AllEventLogs,
	"evtx":           AllEventLogs,
	"mft":            MFTTimeline,
	"mft-timeline":   MFTTimeline,
	"application":           ApplicationExecution,
	"application-execution": ApplicationExecution,
	"file-folder": FileFolderOpening,
	"file":        FileFolderOpening,
	"deleted":        DeletedItems,
	"deleted-items":  DeletedItems,
	"deleted_items":  DeletedItems,
	"file-existence": DeletedItems,
	"browser":          BrowserActivity,
	"browser-activity": BrowserActivity,
	"external":        ExternalDevice,
	"external-device": ExternalDevice,
	"external_device": ExternalDevice,
	"usb":             ExternalDevice,
	"usb-usage":       ExternalDevice,
	"usb_usage":       ExternalDevice,
}

// normalizeOne maps a single scope value to its canonical category. Matching
// precedence is canonical identifier, exact display label, alias, display
// label ignoring case. Unknown values fall back to Everything.
func normalizeOne(value string) Category {
	for _, category := range Order {
		if value == string(category) {
			return category
		}
	}
	for _, category := range Order {
		if value == labels[category] {
			return category
		}
	}

	lower := strings.ToLower(value)
	if category, ok := aliases[lower]; ok {
		return category
	}
	// "MFT Timeline" and friends snake_case into their canonical identifier.
	snake := strcase.ToSnake(value)
	for _, category := range Order {
		if snake == string(category) {
			return category
		}
	}

	for _, category := range Order {
		if lower == strings.ToLower(labels[category]) {
			return category
		}
	}
	return Everything
}

// Normalize maps free-form scope input to a de-duplicated list of canonical
// categories, preserving first-seen order. Values may contain several
// entries separated by commas or newlines. If Everything is among the
// results the whole selection collapses to it. A nil input resolves to
// Everything when defaultToEverything is set and to no selection otherwise;
// a non-nil empty input always resolves to no selection.
func Normalize(values []string, defaultToEverything bool) []Category {
	if values == nil {
		if defaultToEverything {
			return []Category{Everything}
		}
		return nil
	}

	var normalized []Category
	seen := map[Category]bool{}
	for _, value := range values {
		for _, part := range SplitList(value) {
			category := normalizeOne(part)
			if !seen[category] {
				seen[category] = true
				normalized = append(normalized, category)
			}
		}
	}

	if seen[Everything] {
		return []Category{Everything}
	}
	return normalized
}

// Labels returns the display labels for a list of categories.
func Labels(categories []Category) []string {
	labels := make([]string, 0, len(categories))
	for _, category := range categories {
		labels = append(labels, category.Label())
	}
	return labels
}

// SplitList splits a comma or newline separated value into trimmed,
// non-empty parts.
func SplitList(value string) []string {
	var parts []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
