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
	"bytes"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// HTTPSink POSTs record batches to an HTTP receiver, for example a
// search or analytics index.
type HTTPSink struct {
	url    string
	client *http.Client
}

// NewHTTPSink creates a sink for the given URL.
func NewHTTPSink(url string) *HTTPSink {
	return &HTTPSink{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send delivers one record batch. The origin tags travel as headers.
func (h *HTTPSink) Send(records []byte, meta Meta) error {
	request, err := http.NewRequest(http.MethodPost, h.url, bytes.NewReader(records))
	if err != nil {
		return errors.Wrap(err, "could not build export request")
	}
	request.Header.Set("Content-Type", "application/x-ndjson")
	request.Header.Set("X-Record-Tool", meta.Tool)
	request.Header.Set("X-Record-Input", meta.Input)
	if meta.Case != "" {
		request.Header.Set("X-Record-Case", meta.Case)
	}

	response, err := h.client.Do(request)
	if err != nil {
		return errors.Wrap(err, "could not send records")
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("export destination replied %s", response.Status)
	}
	return nil
}

// Close is a no-op for HTTP destinations.
func (h *HTTPSink) Close() error {
	return nil
}
