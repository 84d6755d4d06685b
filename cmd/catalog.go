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
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/artifactsweep/catalog"
)

// Presets is the artifactsweep presets commandline subcommand
func Presets() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the presets of the bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "PRESET\tFUNCTION\tCATEGORIES")
			for _, preset := range catalog.Bundle {
				fmt.Fprintf(writer, "%s\t%s\t%s\n",
					preset.Name, preset.Function(),
					joinLabels(preset.Categories))
			}
			return writer.Flush()
		},
	}
}

// Scopes is the artifactsweep scopes commandline subcommand
func Scopes() *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List the selectable preset categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "SCOPE\tLABEL")
			for _, category := range catalog.Order {
				fmt.Fprintf(writer, "%s\t%s\n", category, category.Label())
			}
			return writer.Flush()
		},
	}
}

func joinLabels(categories []catalog.Category) string {
	labels := ""
	for i, label := range catalog.Labels(categories) {
		if i > 0 {
			labels += ", "
		}
		labels += label
	}
	return labels
}
