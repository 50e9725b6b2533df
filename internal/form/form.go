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

// Package form implements the step-wise registration state machine: step
// progression gated by per-step validation, draft persistence on every
// field change, and submission lifecycle tracking.
package form

import "github.com/formflow/formflow/internal/schema"

// Step is one screen's worth of related fields. The sequence is fixed at
// build time.
type Step struct {
	ID     int
	Name   string
	Fields []string // the subset of the record this step owns
}

var steps = []Step{
	{1, "Personal Information", []string{schema.FieldFullName, schema.FieldEmail, schema.FieldPhoneNumber}},
	{2, "Address Details", []string{schema.FieldStreetAddress, schema.FieldCity, schema.FieldZipCode}},
	{3, "Account Setup", []string{schema.FieldUsername, schema.FieldPassword, schema.FieldConfirmPassword}},
	{4, "Confirmation", nil},
}

// Steps returns the ordered step sequence.
func Steps() []Step {
	return steps
}

// Status tracks the submission lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

// String returns a short label for logs and review screens.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Action is the outcome of an Advance call.
type Action int

const (
	// ActionStay means validation failed (or a submission is already in
	// flight) and the step did not change.
	ActionStay Action = iota
	// ActionMoved means the step advanced by one.
	ActionMoved
	// ActionSubmit means the final step passed full-record validation and a
	// submission was started; the caller must perform the network call and
	// report back via Resolve with the returned generation.
	ActionSubmit
)

// DraftSaver is the slice of the draft store the machine needs. Save and
// Clear failures are swallowed: persistence is best-effort and never blocks
// interaction.
type DraftSaver interface {
	Save(schema.FormValues) error
	Clear() error
}

// Machine holds the whole mutable form session: current step, field values,
// validation errors, and submission status. It is single-writer; all
// mutation happens through its methods in response to discrete events.
type Machine struct {
	step       int // 1-based
	values     schema.FormValues
	errors     schema.Errors
	status     Status
	generation uint64 // bumped per submission attempt and per reset
	drafts     DraftSaver
	listeners  []func()
}

// New creates a machine positioned on step 1 with the given initial values
// (typically restored from the draft store). drafts may be nil to disable
// persistence.
func New(drafts DraftSaver, initial schema.FormValues) *Machine {
	return &Machine{
		step:   1,
		values: initial,
		errors: schema.Errors{},
		drafts: drafts,
	}
}

// Subscribe registers a callback invoked after every state change. This is
// the only notification contract between the machine and its presentation
// layer.
func (m *Machine) Subscribe(fn func()) {
	m.listeners = append(m.listeners, fn)
}

func (m *Machine) notify() {
	for _, fn := range m.listeners {
		fn()
	}
}

// StepIndex returns the 1-based current step index.
func (m *Machine) StepIndex() int { return m.step }

// Step returns the current step.
func (m *Machine) Step() Step { return steps[m.step-1] }

// StepCount returns the number of steps.
func (m *Machine) StepCount() int { return len(steps) }

// Values returns the current record.
func (m *Machine) Values() schema.FormValues { return m.values }

// Errors returns the current validation error set.
func (m *Machine) Errors() schema.Errors { return m.errors }

// Status returns the submission status.
func (m *Machine) Status() Status { return m.status }

// Generation returns the current submission generation token.
func (m *Machine) Generation() uint64 { return m.generation }

// UpdateField assigns one field and persists the draft as a side effect.
// Persistence failure never blocks or fails the update.
func (m *Machine) UpdateField(name, value string) {
	m.values.Set(name, value)
	if m.drafts != nil {
		_ = m.drafts.Save(m.values)
	}
	m.notify()
}

// Advance validates the active step's fields and, if they are clean, moves
// forward. On the final step it re-checks the whole record and starts a
// submission instead, returning ActionSubmit and the generation token the
// caller must hand back to Resolve. A step never advances with invalid
// data.
func (m *Machine) Advance() (Action, uint64) {
	if m.status == StatusPending {
		// At most one submission in flight.
		return ActionStay, 0
	}

	cur := steps[m.step-1]
	if len(cur.Fields) > 0 {
		if errs := schema.Validate(m.values, cur.Fields...); len(errs) > 0 {
			m.errors = errs
			m.notify()
			return ActionStay, 0
		}
	}

	if m.step < len(steps) {
		m.errors = schema.Errors{}
		m.step++
		m.notify()
		return ActionMoved, 0
	}

	// Final step: full-record re-check before handing off to the network.
	if errs := schema.Validate(m.values); len(errs) > 0 {
		m.errors = errs
		m.notify()
		return ActionStay, 0
	}

	m.errors = schema.Errors{}
	m.status = StatusPending
	m.generation++
	m.notify()
	return ActionSubmit, m.generation
}

// Retreat moves back one step without revalidating. Going back is always
// allowed, including while a submission is pending. At step 1 it is a no-op.
func (m *Machine) Retreat() {
	if m.step <= 1 {
		return
	}
	m.step--
	m.notify()
}

// Resolve applies the outcome of a submission attempt. Outcomes whose
// generation no longer matches (a reset or newer attempt superseded them)
// are discarded. Success clears the draft and resets the session; failure
// leaves every other piece of state untouched so the user can retry.
func (m *Machine) Resolve(gen uint64, err error) {
	if gen != m.generation || m.status != StatusPending {
		return
	}

	if err != nil {
		m.status = StatusError
		m.notify()
		return
	}

	m.status = StatusSuccess
	if m.drafts != nil {
		_ = m.drafts.Clear()
	}
	m.values = schema.Defaults()
	m.errors = schema.Errors{}
	m.step = 1
	m.notify()
}

// Reset is the explicit start-over: idle status, step 1, default values,
// draft cleared. The generation bump guarantees an in-flight submission can
// never land on the fresh session.
func (m *Machine) Reset() {
	m.generation++
	m.status = StatusIdle
	m.step = 1
	m.values = schema.Defaults()
	m.errors = schema.Errors{}
	if m.drafts != nil {
		_ = m.drafts.Clear()
	}
	m.notify()
}
