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

package catalog

// QueryTool is the primary extraction tool driven by the bundle.
const QueryTool = "target-query"

// DumpTool converts record-formatted tool output to tabular form and
// forwards records to export destinations.
const DumpTool = "rdump"

// DefaultDumpArgs is the argument set for the tabular conversion stage,
// used by every preset that does not override it.
var DefaultDumpArgs = []string{"-C", "--multi-timestamp"}

// Preset describes one artifact-extraction operation of the bundle.
// Catalog entries are immutable; they are defined below and only read at
// runtime.
type Preset struct {
	// Name is the display label of the preset.
	Name string
	// Tool is the primary tool to invoke; empty means QueryTool.
	Tool string
	// Arguments are passed to the primary tool; the working path of the
	// processed image is appended as the final argument.
	Arguments []string
	// OutputSuffix names the produced artifact together with the input's
	// base name.
	OutputSuffix string
	// Categories tags the preset for scope selection. A preset without
	// categories is only selected by the Everything scope.
	Categories []Category
	// DumpArgs overrides DefaultDumpArgs for the conversion stage.
	DumpArgs []string
	// NoDump skips the conversion stage and keeps the decoded primary
	// output. Such presets emit no record-formatted bytes and are never
	// exported.
	NoDump bool
	// OutputExtension and DataType override the defaults derived from
	// NoDump.
	OutputExtension string
	DataType        string
}

// ToolName returns the primary tool of the preset.
func (p Preset) ToolName() string {
	if p.Tool != "" {
		return p.Tool
	}
	return QueryTool
}

// Function returns the analysis function requested by the preset's
// arguments, the token following the -f selector flag. It is empty for
// presets without a function selector.
func (p Preset) Function() string {
	for i, argument := range p.Arguments {
		if argument == "-f" && i+1 < len(p.Arguments) {
			return p.Arguments[i+1]
		}
	}
	return ""
}

// Extension returns the file extension for the produced artifact.
func (p Preset) Extension() string {
	if p.OutputExtension != "" {
		return p.OutputExtension
	}
	if p.NoDump {
		return "txt"
	}
	return "csv"
}

// ContentType returns the declared data type for the produced artifact.
func (p Preset) ContentType() string {
	if p.DataType != "" {
		return p.DataType
	}
	if p.NoDump {
		return "artifactsweep:query:text"
	}
	return "artifactsweep:query:csv"
}

// Bundle is the curated preset table. Order is significant: selection and
// execution follow catalog order.
var Bundle = []Preset{
	{
		Name:         "All event logs",
		Arguments:    []string{"-f", "evtx"},
		OutputSuffix: "evtx",
		Categories:   []Category{AllEventLogs},
	},
	{
		Name:         "Generate a MFT Timeline",
		Arguments:    []string{"-f", "mft.records"},
		OutputSuffix: "mft_timeline",
		Categories:   []Category{MFTTimeline},
	},
	{
		Name:         "Shimcache",
		Arguments:    []string{"-f", "shimcache"},
		OutputSuffix: "shimcache",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "Task Bar Feature Usage",
		Arguments:    []string{"-f", "featureusage"},
		OutputSuffix: "featureusage",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "Amcache.hve",
		Arguments:    []string{"-f", "amcache"},
		OutputSuffix: "amcache",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "Jump Lists",
		Arguments:    []string{"-f", "jumplist"},
		OutputSuffix: "jumplist",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "Open/Save MRU",
		Arguments:    []string{"-f", "mru.opensave"},
		OutputSuffix: "mru_opensave",
		Categories:   []Category{FileFolderOpening},
	},
	{
		Name:         "Recent Files (MRU)",
		Arguments:    []string{"-f", "mru.recentdocs"},
		OutputSuffix: "mru_recentdocs",
		Categories:   []Category{FileFolderOpening},
	},
	{
		Name:         "Shortcut (LNK) Files",
		Arguments:    []string{"-f", "lnk"},
		OutputSuffix: "lnk",
		Categories:   []Category{FileFolderOpening, DeletedItems, ExternalDevice},
	},
	{
		Name:         "Shell Bags",
		Arguments:    []string{"-f", "shellbags"},
		OutputSuffix: "shellbags",
		Categories:   []Category{FileFolderOpening, DeletedItems},
	},
	{
		Name:         "Office Recent Files",
		Arguments:    []string{"-f", "mru.msoffice"},
		OutputSuffix: "mru_msoffice",
		Categories:   []Category{FileFolderOpening},
	},
	{
		Name:         "Office Trust Records",
		Arguments:    []string{"-f", "trusteddocs"},
		OutputSuffix: "trusteddocs",
		Categories:   []Category{FileFolderOpening},
	},
	{
		Name:         "Last Visited MRU",
		Arguments:    []string{"-f", "mru"},
		OutputSuffix: "mru",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "RunMRU",
		Arguments:    []string{"-f", "runkeys"},
		OutputSuffix: "runkeys",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "Windows 10 Timeline (ActivitiesCache.db)",
		Arguments:    []string{"-f", "activitiescache"},
		OutputSuffix: "activitiescache",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "BAM/DAM",
		Arguments:    []string{"-f", "bam"},
		OutputSuffix: "bam",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "SRUM (System Resource Usage Monitor)",
		Arguments:    []string{"-f", "sru"},
		OutputSuffix: "sru",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "Prefetch",
		Arguments:    []string{"-f", "prefetch"},
		OutputSuffix: "prefetch",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "CapabilityAccessManager",
		Arguments:    []string{"-f", "cam"},
		OutputSuffix: "cam",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "UserAssist",
		Arguments:    []string{"-f", "userassist"},
		OutputSuffix: "userassist",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "Installed Services",
		Arguments:    []string{"-f", "services"},
		OutputSuffix: "services",
		Categories:   []Category{ApplicationExecution},
	},
	{
		Name:         "Recycle Bin",
		Arguments:    []string{"-f", "recyclebin"},
		OutputSuffix: "recyclebin",
		Categories:   []Category{DeletedItems},
	},
	{
		Name:         "Thumbcache",
		Arguments:    []string{"-f", "thumbcache"},
		OutputSuffix: "thumbcache",
		Categories:   []Category{DeletedItems},
	},
	{
		Name:         "Internet Explorer file:/// History",
		Arguments:    []string{"-f", "iexplore.history"},
		OutputSuffix: "iexplore_history",
		Categories:   []Category{DeletedItems},
	},
	{
		Name:         "Search - WordWheelQuery",
		Arguments:    []string{"-f", "mru.acmru"},
		OutputSuffix: "mru_acmru",
		Categories:   []Category{DeletedItems},
	},
	{
		Name:         "USB history (registry)",
		Arguments:    []string{"-f", "usb"},
		OutputSuffix: "usb",
		Categories:   []Category{ExternalDevice},
	},
	{
		Name:         "Removable device activity",
		Arguments:    []string{"-f", "evtx"},
		OutputSuffix: "evtx_removable_devices",
		Categories:   []Category{ExternalDevice},
		DumpArgs: []string{
			"-C",
			"--multi-timestamp",
			"-s",
			`(r.EventID in [4663,4656,6416] and r.Channel == "Security") ` +
				`or (r.EventID in [20001,20003] and r.Channel == "System") ` +
				`or (r.EventID in [1006])`,
		},
	},
	{
		Name:         "Browser (all below)",
		Arguments:    []string{"-f", "browser"},
		OutputSuffix: "browser",
		Categories:   []Category{BrowserActivity},
	},
	{
		Name:         "Browser Cookies",
		Arguments:    []string{"-f", "browser.cookies"},
		OutputSuffix: "browser_cookies",
		Categories:   []Category{BrowserActivity},
	},
	{
		Name:         "Browser Downloads",
		Arguments:    []string{"-f", "browser.downloads"},
		OutputSuffix: "browser_downloads",
		Categories:   []Category{BrowserActivity},
	},
	{
		Name:         "Browser Extensions",
		Arguments:    []string{"-f", "browser.extensions"},
		OutputSuffix: "browser_extensions",
		Categories:   []Category{BrowserActivity},
	},
	{
		Name:         "Browser History",
		Arguments:    []string{"-f", "browser.history"},
		OutputSuffix: "browser_history",
		Categories:   []Category{BrowserActivity},
	},
	{
		Name:         "Browser Passwords",
		Arguments:    []string{"-f", "browser.passwords"},
		OutputSuffix: "browser_passwords",
		Categories:   []Category{BrowserActivity},
	},
}

// Select returns the presets matching any of the requested categories, in
// catalog order and without duplicates. The Everything category selects the
// whole catalog; presets without categories match only Everything.
func Select(presets []Preset, scopes []Category) []Preset {
	for _, scope := range scopes {
		if scope == Everything {
			return append([]Preset(nil), presets...)
		}
	}

	want := map[Category]bool{}
	for _, scope := range scopes {
		want[scope] = true
	}

	var selected []Preset
	for _, preset := range presets {
		for _, category := range preset.Categories {
			if want[category] {
				selected = append(selected, preset)
				break
			}
		}
	}
	return selected
}

// Resolve selects from the built-in Bundle.
func Resolve(scopes []Category) []Preset {
	return Select(Bundle, scopes)
}
