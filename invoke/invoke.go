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

// Package invoke runs registered analysis tools inside the current process
// as if they were standalone commands. Tools read their command line from
// os.Args and their input from os.Stdin and write to os.Stdout and
// os.Stderr; the harness temporarily swaps those process-wide values,
// captures everything the tool writes and restores the originals on every
// exit path.
package invoke

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// EntryPoint is the main function of a registered analysis tool. A nil
// return means exit code 0, an *ExitError carries an explicit exit code and
// any other error means exit code 1.
type EntryPoint func() error

// ExitError carries an explicit exit code out of an entry point.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Exit terminates the running entry point with the given exit code, like
// os.Exit would terminate a standalone command. It panics with an
// *ExitError which is recovered by Invoke.
func Exit(code int) {
	panic(&ExitError{Code: code})
}

// ErrCapabilityNotFound is returned when no entry point is registered for a
// requested tool name.
var ErrCapabilityNotFound = errors.New("analysis tool not registered")

// Registry maps tool names to their entry points.
type Registry struct {
	sync.RWMutex
	entries map[string]EntryPoint
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]EntryPoint{}}
}

// Register adds or replaces the entry point for a tool name.
func (r *Registry) Register(name string, entry EntryPoint) {
	r.Lock()
	r.entries[name] = entry
	r.Unlock()
}

// Lookup resolves a tool name to its entry point.
func (r *Registry) Lookup(name string) (EntryPoint, error) {
	r.RLock()
	entry, ok := r.entries[name]
	r.RUnlock()
	if !ok {
		return nil, errors.Wrap(ErrCapabilityNotFound, name)
	}
	return entry, nil
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	r.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.RUnlock()
	sort.Strings(names)
	return names
}

// Options control a single invocation.
type Options struct {
	// Stdin is fed to the tool's standard input. The tool reads EOF
	// immediately when nil.
	Stdin []byte
	// DecodeText sanitizes the captured output to valid UTF-8, replacing
	// invalid bytes instead of failing. Leave unset for record-formatted
	// output that is piped into another tool.
	DecodeText bool
}

// Result is the captured outcome of one invocation.
type Result struct {
	ExitCode    int
	Output      []byte
	Diagnostics string
}

// Text returns the captured output decoded as UTF-8 text with invalid
// bytes replaced.
func (r *Result) Text() string {
	return strings.ToValidUTF8(string(r.Output), "�")
}

// gate serializes invocations. The harness mutates os.Args and the standard
// streams, so at most one invocation may be in flight per process.
var gate sync.Mutex

// Invoke runs the named tool with the given argument tokens and returns its
// normalized exit code, captured output and captured diagnostics. os.Args,
// os.Stdin, os.Stdout and os.Stderr are restored before Invoke returns,
// also when the entry point panics.
func (r *Registry) Invoke(name string, args []string, opts Options) (*Result, error) {
	entry, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	gate.Lock()
	defer gate.Unlock()

	stdoutRead, stdoutWrite, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrap(err, "could not create stdout pipe")
	}
	stderrRead, stderrWrite, err := os.Pipe()
	if err != nil {
		stdoutRead.Close()
		stdoutWrite.Close()
		return nil, errors.Wrap(err, "could not create stderr pipe")
	}
	stdinRead, stdinWrite, err := os.Pipe()
	if err != nil {
		stdoutRead.Close()
		stdoutWrite.Close()
		stderrRead.Close()
		stderrWrite.Close()
		return nil, errors.Wrap(err, "could not create stdin pipe")
	}

	var output, diagnostics bytes.Buffer
	var capture sync.WaitGroup
	capture.Add(2)
	go func() {
		defer capture.Done()
		_, _ = io.Copy(&output, stdoutRead)
	}()
	go func() {
		defer capture.Done()
		_, _ = io.Copy(&diagnostics, stderrRead)
	}()
	go func() {
		if len(opts.Stdin) > 0 {
			_, _ = stdinWrite.Write(opts.Stdin)
		}
		stdinWrite.Close()
	}()

	originalArgs, originalStdin := os.Args, os.Stdin
	originalStdout, originalStderr := os.Stdout, os.Stderr
	os.Args = append([]string{name}, args...)
	os.Stdin, os.Stdout, os.Stderr = stdinRead, stdoutWrite, stderrWrite

	var restoreOnce sync.Once
	restore := func() {
		restoreOnce.Do(func() {
			os.Args, os.Stdin = originalArgs, originalStdin
			os.Stdout, os.Stderr = originalStdout, originalStderr
			stdoutWrite.Close()
			stderrWrite.Close()
			capture.Wait()
			stdoutRead.Close()
			stderrRead.Close()
			stdinRead.Close()
		})
	}
	defer restore()

	runErr := run(entry)
	restore()

	result := &Result{Output: output.Bytes(), Diagnostics: diagnostics.String()}
	switch e := runErr.(type) {
	case nil:
	case *ExitError:
		result.ExitCode = e.Code
	default:
		result.ExitCode = 1
		if result.Diagnostics == "" {
			result.Diagnostics = runErr.Error()
		} else {
			result.Diagnostics += "\n" + runErr.Error()
		}
	}

	if opts.DecodeText {
		result.Output = bytes.ToValidUTF8(result.Output, []byte("�"))
	}
	result.Diagnostics = strings.ToValidUTF8(result.Diagnostics, "�")
	return result, nil
}

// run executes an entry point, converting exit-style panics back into
// *ExitError results. Other panics propagate to the caller after the
// deferred stream restoration ran.
func run(entry EntryPoint) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if exit, ok := rec.(*ExitError); ok {
				err = exit
				return
			}
			panic(rec)
		}
	}()
	return entry()
}
