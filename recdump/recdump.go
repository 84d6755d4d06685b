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

// Package recdump implements a small record dump tool that can stand in
// for the toolkit's own record dumper. It reads newline-delimited JSON
// records from standard input and either converts them to CSV or forwards
// the raw records to an export destination.
//
// Selectors are limited to "path=value" terms separated by commas (any
// term may match). Selector expressions beyond that are ignored with a
// warning and all records pass through, so presets written for the real
// dumper still produce output.
package recdump

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"

	"github.com/forensicanalysis/artifactsweep/export"
	"github.com/forensicanalysis/artifactsweep/invoke"
)

// Name is the tool name the entry point is registered under.
const Name = "rdump"

// Register adds the record dump tool to a registry.
func Register(registry *invoke.Registry) {
	registry.Register(Name, Entry)
}

// Entry is the tool's main function.
func Entry() error {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

type options struct {
	csv       bool
	multiTime bool
	selector  string
	dest      string
	tags      []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	flags := pflag.NewFlagSet(Name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVarP(&opts.csv, "csv", "C", false, "write records as CSV")
	flags.BoolVar(&opts.multiTime, "multi-timestamp", false, "emit one row per timestamp field")
	flags.StringVarP(&opts.selector, "selector", "s", "", "record selector (path=value terms, comma separated)")
	flags.StringVarP(&opts.dest, "write", "w", "", "export destination URI")
	flags.StringArrayVar(&opts.tags, "tag", nil, "origin tag (key=value)")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	input, err := io.ReadAll(stdin)
	if err != nil {
		return errors.Wrap(err, "could not read records")
	}

	if opts.dest != "" {
		return forward(input, opts)
	}

	matcher, err := compileSelector(opts.selector)
	if err != nil {
		// Presets may carry expressions only the real dumper can
		// evaluate; keep all records instead of killing the run.
		fmt.Fprintf(stderr, "ignoring selector: %v\n", err)
		matcher = func(string) bool { return true }
	}

	records, err := selectRecords(input, matcher)
	if err != nil {
		return err
	}

	if !opts.csv {
		for _, record := range records {
			fmt.Fprintln(stdout, record.raw)
		}
		return nil
	}
	return writeCSV(stdout, records, opts.multiTime)
}

// forward hands the raw record bytes to the export sink selected by the
// destination URI.
func forward(input []byte, opts *options) error {
	sink, err := export.Open(opts.dest)
	if err != nil {
		return err
	}
	defer sink.Close()

	meta := export.Meta{}
	for _, tag := range opts.tags {
		key, value, found := strings.Cut(tag, "=")
		if !found {
			return errors.Errorf("malformed tag %q", tag)
		}
		switch key {
		case "tool":
			meta.Tool = value
		case "input":
			meta.Input = value
		case "case":
			meta.Case = value
		default:
			return errors.Errorf("unknown tag %q", key)
		}
	}
	return sink.Send(input, meta)
}

type record struct {
	raw    string
	fields map[string]interface{}
}

func selectRecords(input []byte, matcher func(string) bool) ([]record, error) {
	var records []record
	for _, line := range strings.Split(string(input), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &fields); err != nil {
			return nil, errors.Wrap(err, "malformed record")
		}
		if !matcher(line) {
			continue
		}
		records = append(records, record{raw: line, fields: fields})
	}
	return records, nil
}

// compileSelector builds a line matcher from comma separated "path=value"
// terms. A bare path matches records where the path exists. Anything more
// elaborate is rejected.
func compileSelector(selector string) (func(string) bool, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return func(string) bool { return true }, nil
	}
	if strings.ContainsAny(selector, "()[] ") {
		return nil, errors.Errorf("unsupported selector %q", selector)
	}

	var terms [][2]string
	for _, term := range strings.Split(selector, ",") {
		path, value, _ := strings.Cut(term, "=")
		if path == "" {
			return nil, errors.Errorf("unsupported selector %q", selector)
		}
		terms = append(terms, [2]string{path, value})
	}

	return func(line string) bool {
		for _, term := range terms {
			result := gjson.Get(line, term[0])
			if !result.Exists() {
				continue
			}
			if term[1] == "" || result.String() == term[1] {
				return true
			}
		}
		return false
	}, nil
}

func writeCSV(stdout io.Writer, records []record, multiTime bool) error {
	if len(records) == 0 {
		return nil
	}

	columnSet := map[string]bool{}
	for _, rec := range records {
		for field := range rec.fields {
			columnSet[field] = true
		}
	}
	var columns []string
	for field := range columnSet {
		columns = append(columns, field)
	}
	sort.Strings(columns)

	header := columns
	if multiTime {
		header = append(append([]string{}, columns...), "timestamp", "timestamp_description")
	}

	writer := csv.NewWriter(stdout)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		base := make([]string, len(columns))
		for i, column := range columns {
			base[i] = fieldText(rec.fields[column])
		}
		if !multiTime {
			if err := writer.Write(base); err != nil {
				return err
			}
			continue
		}
		for _, row := range timeRows(base, columns, rec.fields) {
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// timeRows expands a record into one row per *_time field. Records without
// timestamp fields yield a single row with empty timestamp columns.
func timeRows(base, columns []string, fields map[string]interface{}) [][]string {
	var rows [][]string
	for _, column := range columns {
		if !strings.HasSuffix(column, "_time") {
			continue
		}
		value, ok := fields[column]
		if !ok || value == nil {
			continue
		}
		row := append(append([]string{}, base...), fieldText(value), column)
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = append(rows, append(append([]string{}, base...), "", ""))
	}
	return rows
}

func fieldText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}
