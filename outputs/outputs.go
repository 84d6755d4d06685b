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

// Package outputs creates the artifact files produced by a sweep run.
package outputs

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// File describes one produced artifact.
type File struct {
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
	Extension   string `json:"extension,omitempty"`
	DataType    string `json:"data_type,omitempty"`
}

// Store creates uniquely named output files below a base directory.
type Store struct {
	fs afero.Fs
}

// NewStore creates a store on the given filesystem. A nil filesystem uses
// the operating system's.
func NewStore(fs afero.Fs) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs}
}

// Create adds a new output file below dir. Name collisions are resolved by
// appending a counter to the file name.
func (s *Store) Create(dir, displayName, extension, dataType string) (*File, io.WriteCloser, error) {
	if err := s.fs.MkdirAll(dir, 0750); err != nil {
		return nil, nil, errors.Wrap(err, "could not create output directory")
	}

	name := displayName
	if extension != "" {
		name += "." + extension
	}
	filePath := filepath.Join(dir, name)
	ext := filepath.Ext(filePath)
	base := filePath[:len(filePath)-len(ext)]

	exists, err := afero.Exists(s.fs, filePath)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; exists; i++ {
		filePath = fmt.Sprintf("%s_%d%s", base, i, ext)
		exists, err = afero.Exists(s.fs, filePath)
		if err != nil {
			return nil, nil, err
		}
	}

	writer, err := s.fs.Create(filePath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not create output file")
	}

	file := &File{
		Path:        filePath,
		DisplayName: displayName,
		Extension:   extension,
		DataType:    dataType,
	}
	return file, writer, nil
}

// Write creates an output file and fills it in one step.
func (s *Store) Write(dir, displayName, extension, dataType string, content []byte) (*File, error) {
	file, writer, err := s.Create(dir, displayName, extension, dataType)
	if err != nil {
		return nil, err
	}
	if _, err := writer.Write(content); err != nil {
		writer.Close()
		return nil, errors.Wrap(err, "could not write output file")
	}
	return file, writer.Close()
}
