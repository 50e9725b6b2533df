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

// Package wizard renders the registration form as a full-screen terminal
// UI. It owns no form state; everything flows through the state machine.
package wizard

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/formflow/formflow/internal/form"
	"github.com/formflow/formflow/internal/submit"
)

// ErrCancelled is returned when the user aborts the wizard. In-progress
// values stay in the draft store for the next session.
var ErrCancelled = errors.New("registration cancelled")

// Run executes the registration wizard TUI against the given state machine.
// timeout bounds each submission attempt.
func Run(machine *form.Machine, client *submit.Client, timeout time.Duration) error {
	p := tea.NewProgram(newModel(machine, client, timeout), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}

	if finalModel.(Model).Cancelled() {
		return ErrCancelled
	}
	return nil
}
