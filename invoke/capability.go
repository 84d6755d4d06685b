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

import "sync"

// FinderFunc reports whether the toolkit implements a named analysis
// function.
type FinderFunc func(name string) bool

// Capabilities answers availability questions about analysis functions and
// caches the answers for the lifetime of the process.
type Capabilities struct {
	sync.RWMutex
	finder FinderFunc
	known  map[string]bool
}

// NewCapabilities creates a capability cache backed by the given finder. A
// nil finder considers every function available.
func NewCapabilities(finder FinderFunc) *Capabilities {
	return &Capabilities{finder: finder, known: map[string]bool{}}
}

// IsAvailable reports whether the named function can be invoked. The empty
// name is always available, it describes a preset without a function
// selector.
func (c *Capabilities) IsAvailable(name string) bool {
	if name == "" || c.finder == nil {
		return true
	}

	c.RLock()
	available, ok := c.known[name]
	c.RUnlock()
	if ok {
		return available
	}

	available = c.finder(name)
	c.Lock()
	c.known[name] = available
	c.Unlock()
	return available
}
