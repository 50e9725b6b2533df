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

package redactor

import (
	"bytes"
	"testing"
)

func TestRedactor_AddSecret(t *testing.T) {
	r := New()
	r.AddSecret("my-secret-value")

	if r.Count() != 1 {
		t.Errorf("expected 1 secret, got %d", r.Count())
	}
}

func TestRedactor_Filter(t *testing.T) {
	r := New()
	secret := "super-secret-password-123"
	r.AddSecret(secret)

	input := []byte("password=" + secret + "\n")
	output := string(r.Filter(input))

	expected := "password=<redacted>\n"
	if output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

func TestRedactor_Filter_MultipleSecrets(t *testing.T) {
	r := New()
	r.AddSecret("secret1")
	r.AddSecret("secret2")

	input := []byte("password=secret1; confirm=secret2")
	output := string(r.Filter(input))

	expected := "password=<redacted>; confirm=<redacted>"
	if output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

func TestRedactor_Filter_NoSecrets(t *testing.T) {
	r := New()

	input := []byte("normal output without secrets")
	output := string(r.Filter(input))

	if output != string(input) {
		t.Errorf("expected %q, got %q", input, output)
	}
}

func TestRedactor_Filter_EmptySecret(t *testing.T) {
	r := New()
	r.AddSecret("")

	if r.Count() != 0 {
		t.Errorf("expected empty secret to be ignored, got %d registered", r.Count())
	}

	input := []byte("test output")
	output := string(r.Filter(input))

	if output != string(input) {
		t.Errorf("expected %q, got %q", input, output)
	}
}

func TestRedactor_Filter_PartialMatch(t *testing.T) {
	r := New()
	r.AddSecret("secret")

	input := []byte("mysecretvalue")
	output := string(r.Filter(input))

	// Partial matches ARE replaced - this is expected behavior
	expected := "my<redacted>value"
	if output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

func TestRedactor_Filter_Newlines(t *testing.T) {
	r := New()
	r.AddSecret("secret")

	input := []byte("line1\nsecret\nline3")
	output := string(r.Filter(input))

	expected := "line1\n<redacted>\nline3"
	if output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

func TestRedactor_FilterString(t *testing.T) {
	r := New()
	r.AddSecret("hunter2")

	output := r.FilterString("user logged in with hunter2")

	expected := "user logged in with <redacted>"
	if output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

func TestWriter_FiltersAndReportsOriginalLength(t *testing.T) {
	r := New()
	r.AddSecret("long-secret-value")

	var buf bytes.Buffer
	w := NewWriter(&buf, r)

	input := []byte("value=long-secret-value done")
	n, err := w.Write(input)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != len(input) {
		t.Errorf("reported length = %d, want %d", n, len(input))
	}

	expected := "value=<redacted> done"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
