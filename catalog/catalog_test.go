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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_normalizeOne(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  Category
	}{
		{"canonical", "all_event_logs", AllEventLogs},
		{"label", "MFT timeline", MFTTimeline},
		{"label different case", "mft TIMELINE", MFTTimeline},
		{"alias", "evtx", AllEventLogs},
		{"alias upper", "USB", ExternalDevice},
		{"alias hyphen", "deleted-items", DeletedItems},
		{"snake cased label", "Application Execution", ApplicationExecution},
		{"ampersand label", "File & folder opening", FileFolderOpening},
		{"everything", "everything", Everything},
		{"unknown falls back", "registry hives", Everything},
		{"empty falls back", "", Everything},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeOne(tt.value); got != tt.want {
				t.Errorf("normalizeOne(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	type args struct {
		values              []string
		defaultToEverything bool
	}
	tests := []struct {
		name string
		args args
		want []Category
	}{
		{"nil defaults to everything", args{nil, true}, []Category{Everything}},
		{"nil without default", args{nil, false}, nil},
		{"empty is no selection", args{[]string{}, true}, nil},
		{"single", args{[]string{"evtx"}, true}, []Category{AllEventLogs}},
		{
			"dedupe keeps order",
			args{[]string{"usb", "evtx", "external_device_usage"}, true},
			[]Category{ExternalDevice, AllEventLogs},
		},
		{
			"comma separated entry",
			args{[]string{"mft, browser"}, true},
			[]Category{MFTTimeline, BrowserActivity},
		},
		{
			"newline separated entry",
			args{[]string{"mft\nbrowser"}, true},
			[]Category{MFTTimeline, BrowserActivity},
		},
		{
			"everything collapses the selection",
			args{[]string{"evtx", "everything", "usb"}, true},
			[]Category{Everything},
		},
		{
			"unknown value collapses the selection",
			args{[]string{"evtx", "registry hives"}, true},
			[]Category{Everything},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.args.values, tt.args.defaultToEverything)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "evtx", []string{"evtx"}},
		{"comma", "a, b ,c", []string{"a", "b", "c"}},
		{"newline", "a\nb\n\nc", []string{"a", "b", "c"}},
		{"only separators", ", \n ,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.value)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitList(%q) mismatch (-want +got):\n%s", tt.value, diff)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	got := Labels([]Category{AllEventLogs, ExternalDevice, Category("custom")})
	want := []string{"All event logs", "External device & USB usage", "custom"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Labels() mismatch (-want +got):\n%s", diff)
	}
}
