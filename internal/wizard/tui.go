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

package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/formflow/formflow/internal/form"
	"github.com/formflow/formflow/internal/schema"
	"github.com/formflow/formflow/internal/submit"
)

// fieldLabels maps record fields to their on-screen labels.
var fieldLabels = map[string]string{
	schema.FieldFullName:        "Full Name",
	schema.FieldEmail:           "Email",
	schema.FieldPhoneNumber:     "Phone Number",
	schema.FieldStreetAddress:   "Street Address",
	schema.FieldCity:            "City",
	schema.FieldZipCode:         "Zip Code",
	schema.FieldUsername:        "Username",
	schema.FieldPassword:        "Password",
	schema.FieldConfirmPassword: "Confirm Password",
}

// fieldPlaceholders are shown dimmed while a field is empty.
var fieldPlaceholders = map[string]string{
	schema.FieldFullName:        "John Doe",
	schema.FieldEmail:           "john.doe@example.com",
	schema.FieldPhoneNumber:     "1234567890",
	schema.FieldStreetAddress:   "123 Main St",
	schema.FieldCity:            "New York",
	schema.FieldZipCode:         "10001",
	schema.FieldUsername:        "johndoe",
	schema.FieldPassword:        "******",
	schema.FieldConfirmPassword: "******",
}

// digitsOnly marks fields whose input is filtered to digits at the boundary.
var digitsOnly = map[string]bool{
	schema.FieldPhoneNumber: true,
	schema.FieldZipCode:     true,
}

// masked marks fields rendered as asterisks.
var masked = map[string]bool{
	schema.FieldPassword:        true,
	schema.FieldConfirmPassword: true,
}

var stepSubtitles = map[int]string{
	1: "Please provide your personal details.",
	2: "Please provide your address information.",
	3: "Create your account credentials.",
	4: "Please review your information before submitting.",
}

// submitResultMsg carries the outcome of an asynchronous submission attempt
// together with the generation token it belongs to.
type submitResultMsg struct {
	gen uint64
	err error
}

// Model is the root bubbletea model for the registration wizard. All form
// state lives in the state machine; the model only tracks presentation
// concerns such as the active field cursor.
type Model struct {
	machine *form.Machine
	client  *submit.Client
	timeout time.Duration

	cursor    int // active field within the current step
	width     int
	height    int
	cancelled bool
}

func newModel(machine *form.Machine, client *submit.Client, timeout time.Duration) Model {
	return Model{
		machine: machine,
		client:  client,
		timeout: timeout,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case submitResultMsg:
		m.machine.Resolve(msg.gen, msg.err)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		if m.machine.Status() == form.StatusSuccess {
			return m.updateDone(msg)
		}
		return m.updateForm(msg)
	}

	return m, nil
}

func (m Model) updateForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.machine.Step().Fields

	switch key.String() {
	case "enter":
		if m.machine.Status() == form.StatusPending {
			// One submission in flight at a time.
			return m, nil
		}
		action, gen := m.machine.Advance()
		switch action {
		case form.ActionMoved:
			m.cursor = 0
		case form.ActionSubmit:
			return m, m.submitCmd(gen)
		}
		return m, nil

	case "esc":
		m.machine.Retreat()
		m.cursor = 0
		return m, nil

	case "down", "tab":
		if len(fields) > 0 {
			m.cursor = (m.cursor + 1) % len(fields)
		}
		return m, nil

	case "up", "shift+tab":
		if len(fields) > 0 {
			m.cursor = (m.cursor + len(fields) - 1) % len(fields)
		}
		return m, nil

	case "backspace", "ctrl+h":
		if len(fields) == 0 {
			return m, nil
		}
		name := fields[m.cursor]
		val := m.machine.Values().Get(name)
		if len(val) > 0 {
			m.machine.UpdateField(name, val[:len(val)-1])
		}
		return m, nil

	default:
		if len(fields) == 0 {
			return m, nil
		}
		s := key.String()
		if len(s) != 1 || s[0] < 32 || s[0] > 126 {
			return m, nil
		}
		name := fields[m.cursor]
		if digitsOnly[name] && (s[0] < '0' || s[0] > '9') {
			return m, nil
		}
		m.machine.UpdateField(name, m.machine.Values().Get(name)+s)
		return m, nil
	}
}

func (m Model) updateDone(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		m.machine.Reset()
		m.cursor = 0
		return m, nil
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// submitCmd performs the network call off the update loop. The machine is
// only touched again when the result message comes back through Update.
func (m Model) submitCmd(gen uint64) tea.Cmd {
	values := m.machine.Values()
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return submitResultMsg{gen: gen, err: client.Submit(ctx, values)}
	}
}

// Cancelled returns true if the user aborted the wizard.
func (m Model) Cancelled() bool { return m.cancelled }

func (m Model) View() string {
	if m.machine.Status() == form.StatusSuccess {
		return m.viewDone()
	}

	var b strings.Builder
	b.WriteString(m.viewStepper())
	b.WriteString("\n\n")

	step := m.machine.Step()
	b.WriteString(titleStyle.Render(fmt.Sprintf("Step %d/%d: %s", m.machine.StepIndex(), m.machine.StepCount(), step.Name)))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(stepSubtitles[step.ID]))
	b.WriteString("\n\n")

	if len(step.Fields) == 0 {
		b.WriteString(m.viewReview())
	} else {
		b.WriteString(m.viewFields(step.Fields))
	}

	b.WriteString(m.viewStatus())
	b.WriteString(m.viewHelp(step))
	return b.String()
}

func (m Model) viewStepper() string {
	cur := m.machine.StepIndex()
	parts := make([]string, 0, m.machine.StepCount())
	for _, s := range form.Steps() {
		switch {
		case s.ID < cur:
			parts = append(parts, successStyle.Render("✓ "+s.Name))
		case s.ID == cur:
			parts = append(parts, cursorStyle.Render(fmt.Sprintf("%d %s", s.ID, s.Name)))
		default:
			parts = append(parts, dimStyle.Render(fmt.Sprintf("%d %s", s.ID, s.Name)))
		}
	}
	return strings.Join(parts, dimStyle.Render("  ·  "))
}

func (m Model) viewFields(fields []string) string {
	var b strings.Builder
	values := m.machine.Values()
	errs := m.machine.Errors()

	for i, name := range fields {
		active := i == m.cursor
		cursor := "  "
		if active {
			cursor = cursorStyle.Render("> ")
		}

		display := values.Get(name)
		if masked[name] {
			display = strings.Repeat("*", len(display))
		}
		switch {
		case display == "" && !active:
			display = dimStyle.Render(fieldPlaceholders[name])
		case active:
			display = selectedStyle.Render(display + "█")
		}

		b.WriteString(fmt.Sprintf("%s%-17s %s\n", cursor, fieldLabels[name]+":", display))
		if msg, ok := errs[name]; ok {
			b.WriteString(errorStyle.Render(fmt.Sprintf("  %-17s %s", "", msg)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// viewReview renders the confirmation read-back, grouped the way the fields
// were entered, with the password masked.
func (m Model) viewReview() string {
	values := m.machine.Values()

	type item struct {
		label string
		value string
	}
	sections := []struct {
		title string
		items []item
	}{
		{"Personal Information", []item{
			{"Full Name", values.FullName},
			{"Email", values.Email},
			{"Phone Number", values.PhoneNumber},
		}},
		{"Address Details", []item{
			{"Street Address", values.StreetAddress},
			{"City", values.City},
			{"Zip Code", values.ZipCode},
		}},
		{"Account Setup", []item{
			{"Username", values.Username},
			{"Password", "••••••••"},
		}},
	}

	var b strings.Builder
	for _, section := range sections {
		b.WriteString(selectedStyle.Render(section.title))
		b.WriteString("\n")
		for _, it := range section.items {
			b.WriteString(fmt.Sprintf("  %-17s %s\n", it.label+":", it.value))
		}
		b.WriteString("\n")
	}

	// Final full-record validation surfaces here if anything slipped through.
	if errs := m.machine.Errors(); len(errs) > 0 {
		for _, name := range schema.FieldNames {
			if msg, ok := errs[name]; ok {
				b.WriteString(errorStyle.Render(fmt.Sprintf("  %s: %s", fieldLabels[name], msg)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (m Model) viewStatus() string {
	switch m.machine.Status() {
	case form.StatusPending:
		return "\n" + dimStyle.Render("Submitting...") + "\n"
	case form.StatusError:
		return "\n" + errorStyle.Render("Error submitting form data. Please try again.") + "\n"
	}
	return ""
}

func (m Model) viewHelp(step form.Step) string {
	if len(step.Fields) == 0 {
		if m.machine.Status() == form.StatusPending {
			return helpStyle.Render("Esc to go back, Ctrl+C to quit")
		}
		return helpStyle.Render("Enter to submit, Esc to go back, Ctrl+C to quit")
	}
	if step.ID == 1 {
		return helpStyle.Render("Type to edit, Tab/↓ next field, Enter to continue, Ctrl+C to quit")
	}
	return helpStyle.Render("Type to edit, Tab/↓ next field, Enter to continue, Esc to go back, Ctrl+C to quit")
}

func (m Model) viewDone() string {
	var b strings.Builder
	b.WriteString(successStyle.Render("Registration Complete!"))
	b.WriteString("\n\n")
	b.WriteString("Thank you for registering. Your account has been created successfully.\n")
	b.WriteString(helpStyle.Render("\nPress Enter to start over, q to quit"))
	return b.String()
}
