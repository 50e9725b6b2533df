// FormFlow - Terminal Registration Wizard
// Copyright (C) 2026 FormFlow Labs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package redactor filters output so registered secret values never appear
// in plaintext. The registration endpoint routes its log stream through it;
// submitted passwords are registered before the first log line about them
// is written.
package redactor

import (
	"bytes"
	"io"
	"sync"
)

// Replacement is what registered secret values become in filtered output.
const Replacement = "<redacted>"

// Redactor replaces known secret values with Replacement.
type Redactor struct {
	mu      sync.RWMutex
	secrets map[string]struct{}
}

// New creates an empty Redactor.
func New() *Redactor {
	return &Redactor{secrets: make(map[string]struct{})}
}

// AddSecret registers a value to be redacted from output. Empty values are
// ignored.
func (r *Redactor) AddSecret(value string) {
	if value == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.secrets[value] = struct{}{}
}

// Filter replaces all registered secrets in the input.
func (r *Redactor) Filter(input []byte) []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.secrets) == 0 {
		return input
	}
	output := input
	for secret := range r.secrets {
		output = bytes.ReplaceAll(output, []byte(secret), []byte(Replacement))
	}
	return output
}

// FilterString replaces all registered secrets in the input string.
func (r *Redactor) FilterString(input string) string {
	return string(r.Filter([]byte(input)))
}

// Count returns the number of registered secrets.
func (r *Redactor) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.secrets)
}

// writer filters everything written through it.
type writer struct {
	dst io.Writer
	r   *Redactor
}

// NewWriter wraps dst so every write is filtered first. Useful as the sink
// of a logger.
func NewWriter(dst io.Writer, r *Redactor) io.Writer {
	return &writer{dst: dst, r: r}
}

func (w *writer) Write(p []byte) (int, error) {
	if _, err := w.dst.Write(w.r.Filter(p)); err != nil {
		return 0, err
	}
	// Report the original length; filtering may change the byte count.
	return len(p), nil
}
