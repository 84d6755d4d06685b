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
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs)

	file, err := store.Write("out", "disk-evtx", "csv", "artifactsweep:query:csv",
		[]byte("a,b\n1,2\n"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("out", "disk-evtx.csv"), file.Path)
	assert.Equal(t, "disk-evtx", file.DisplayName)
	assert.Equal(t, "csv", file.Extension)
	assert.Equal(t, "artifactsweep:query:csv", file.DataType)

	content, err := afero.ReadFile(fs, file.Path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(content))
}

func TestStore_Create_collisions(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs)

	var paths []string
	for i := 0; i < 3; i++ {
		file, err := store.Write("out", "disk-evtx", "csv", "", nil)
		require.NoError(t, err)
		paths = append(paths, file.Path)
	}

	assert.Equal(t, []string{
		filepath.Join("out", "disk-evtx.csv"),
		filepath.Join("out", "disk-evtx_0.csv"),
		filepath.Join("out", "disk-evtx_1.csv"),
	}, paths)
}

func TestStore_Create_noExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs)

	file, writer, err := store.Create("out", "notes", "", "")
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	assert.Equal(t, filepath.Join("out", "notes"), file.Path)
}

func TestDirectPath_Materialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "disk.E01", []byte("image"), 0600))

	materializer := DirectPath{Fs: fs}
	workPath, release, err := materializer.Materialize("disk.E01")
	require.NoError(t, err)
	assert.Equal(t, "disk.E01", workPath)
	assert.NoError(t, release())

	_, _, err = materializer.Materialize("missing.E01")
	assert.Error(t, err)
}
