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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Fatal run conditions. All of them abort the run; none are retried here,
// retry policy belongs to the caller.
var (
	ErrNoInputs      = errors.New("no input files available")
	ErrNoSelection   = errors.New("no presets match the selected scope")
	ErrNoneAvailable = errors.New("no presets are available in this toolkit")
	ErrNoDestination = errors.New("record export requires a destination")
	ErrEmptyReport   = errors.New("no outputs were generated")
)

// ToolError reports a failed tool invocation. Its message is the tool's own
// diagnostic output when present, otherwise a synthesized message naming
// the preset and input.
type ToolError struct {
	Tool        string
	Preset      string
	Input       string
	Diagnostics string
	ExitCode    int
}

func (e *ToolError) Error() string {
	if diagnostics := strings.TrimSpace(e.Diagnostics); diagnostics != "" {
		return diagnostics
	}
	return fmt.Sprintf("%s preset '%s' failed for %s with exit code %d",
		e.Tool, e.Preset, e.Input, e.ExitCode)
}
