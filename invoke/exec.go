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

package invoke

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// ExecEntry adapts an executable on PATH to an EntryPoint. The child
// process inherits the redirected standard streams of the harness, so its
// output, diagnostics and exit code are captured like those of an
// in-process tool.
func ExecEntry(command string) EntryPoint {
	return func() error {
		cmd := exec.Command(command, os.Args[1:]...) // #nosec
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		err := cmd.Run()

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return err
	}
}

// RegisterExecutables registers an ExecEntry for every named command found
// on PATH and returns the names that were registered.
func RegisterExecutables(registry *Registry, names ...string) []string {
	var registered []string
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		registry.Register(name, ExecEntry(name))
		registered = append(registered, name)
	}
	return registered
}
