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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilities_IsAvailable(t *testing.T) {
	calls := map[string]int{}
	capabilities := NewCapabilities(func(name string) bool {
		calls[name]++
		return name == "evtx"
	})

	assert.True(t, capabilities.IsAvailable("evtx"))
	assert.False(t, capabilities.IsAvailable("mft.records"))

	// Answers are cached, the finder runs once per name.
	assert.True(t, capabilities.IsAvailable("evtx"))
	assert.False(t, capabilities.IsAvailable("mft.records"))
	assert.Equal(t, map[string]int{"evtx": 1, "mft.records": 1}, calls)
}

func TestCapabilities_IsAvailable_emptyName(t *testing.T) {
	capabilities := NewCapabilities(func(string) bool { return false })
	assert.True(t, capabilities.IsAvailable(""))
}

func TestCapabilities_IsAvailable_nilFinder(t *testing.T) {
	capabilities := NewCapabilities(nil)
	assert.True(t, capabilities.IsAvailable("anything"))
}
