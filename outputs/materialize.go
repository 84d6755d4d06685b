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

package outputs

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Materializer turns an input path into a working path for the duration of
// processing one image. The returned release function must be called once
// all presets for that image have run.
type Materializer interface {
	Materialize(sourcePath string) (workPath string, release func() error, err error)
}

// DirectPath is a Materializer that hands input paths through unchanged.
// Mounting or extracting archives is left to external tooling.
type DirectPath struct {
	Fs afero.Fs
}

func (d DirectPath) Materialize(sourcePath string) (string, func() error, error) {
	fs := d.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	exists, err := afero.Exists(fs, sourcePath)
	if err != nil {
		return "", nil, err
	}
	if !exists {
		return "", nil, errors.Errorf("input %s does not exist", sourcePath)
	}
	return sourcePath, func() error { return nil }, nil
}
