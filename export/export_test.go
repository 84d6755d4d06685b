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

package export

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want bool
	}{
		{"store", "store:///tmp/case.sweepstore", true},
		{"http", "http://records.example.org/in", true},
		{"https", "https://records.example.org/in", true},
		{"ftp", "ftp://records.example.org/in", false},
		{"plain path", "/tmp/case.sweepstore", false},
		{"garbage", "::", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Supported(tt.uri); got != tt.want {
				t.Errorf("Supported(%q) = %v, want %v", tt.uri, got, tt.want)
			}
		})
	}
}

func TestOpen_unsupported(t *testing.T) {
	_, err := Open("ftp://records.example.org/in")
	assert.True(t, errors.Is(err, ErrUnsupportedScheme))
}

func Test_storePath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"opaque", "store:case.sweepstore", "case.sweepstore"},
		{"absolute", "store:///cases/case.sweepstore", "/cases/case.sweepstore"},
		{"relative", "store://cases/case.sweepstore", "cases/case.sweepstore"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := url.Parse(tt.uri)
			require.NoError(t, err)
			if got := storePath(parsed); got != tt.want {
				t.Errorf("storePath(%q) = %v, want %v", tt.uri, got, tt.want)
			}
		})
	}
}

func TestStoreSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.sweepstore")

	sink, err := NewStoreSink(path)
	require.NoError(t, err)
	defer sink.Close()

	records := []byte(`{"_type": "filesystem/windows/evtx", "event_id": 4624}` + "\n" +
		`{"path": "C:/Windows"}` + "\n\n")
	err = sink.Send(records, Meta{Tool: "evtx", Input: "disk.E01", Case: "case-1"})
	require.NoError(t, err)

	count, err := sink.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStoreSink_invalidRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.sweepstore")

	sink, err := NewStoreSink(path)
	require.NoError(t, err)
	defer sink.Close()

	err = sink.Send([]byte(`["not", "an", "object"]`), Meta{Tool: "evtx"})
	assert.Error(t, err)
}

func TestStoreSink_noPath(t *testing.T) {
	_, err := NewStoreSink("")
	assert.Error(t, err)
}

func TestHTTPSink(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sink, err := Open(server.URL)
	require.NoError(t, err)
	defer sink.Close()

	records := []byte(`{"_type": "test"}` + "\n")
	err = sink.Send(records, Meta{Tool: "evtx", Input: "disk.E01", Case: "case-1"})
	require.NoError(t, err)

	assert.Equal(t, records, gotBody)
	assert.Equal(t, "application/x-ndjson", gotHeader.Get("Content-Type"))
	assert.Equal(t, "evtx", gotHeader.Get("X-Record-Tool"))
	assert.Equal(t, "disk.E01", gotHeader.Get("X-Record-Input"))
	assert.Equal(t, "case-1", gotHeader.Get("X-Record-Case"))
}

func TestHTTPSink_failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	sink := NewHTTPSink(server.URL)
	err := sink.Send([]byte(`{}`), Meta{})
	assert.Error(t, err)
}
