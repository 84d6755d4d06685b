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

// Package export delivers record-formatted tool output to external
// destinations. The destination URI's scheme selects the sink kind.
package export

import (
	"net/url"

	"github.com/pkg/errors"
)

// Meta tags a batch of exported records with its origin.
type Meta struct {
	Tool  string `structs:"tool"`
	Input string `structs:"input"`
	Case  string `structs:"case_id"`
}

// Sink receives record-formatted bytes for delivery to an external system.
// Delivery semantics belong to the destination; a nil error only means the
// records were handed over.
type Sink interface {
	Send(records []byte, meta Meta) error
	Close() error
}

// ErrUnsupportedScheme is returned for destination URIs without a
// registered sink kind.
var ErrUnsupportedScheme = errors.New("unsupported export destination")

// Open returns a sink for the destination URI.
//
//	store:///cases/export.db   sqlite record store
//	http(s)://host/path        HTTP record receiver
func Open(uri string) (Sink, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse export destination")
	}

	switch parsed.Scheme {
	case "store":
		return NewStoreSink(storePath(parsed))
	case "http", "https":
		return NewHTTPSink(uri), nil
	default:
		return nil, errors.Wrap(ErrUnsupportedScheme, uri)
	}
}

// Supported reports whether a sink kind exists for the destination URI.
func Supported(uri string) bool {
	parsed, err := url.Parse(uri)
	if err != nil {
		return false
	}
	switch parsed.Scheme {
	case "store", "http", "https":
		return true
	}
	return false
}

func storePath(parsed *url.URL) string {
	if parsed.Opaque != "" {
		return parsed.Opaque
	}
	return parsed.Host + parsed.Path
}
