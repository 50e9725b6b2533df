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

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/formflow/formflow/internal/config"
	"github.com/formflow/formflow/internal/draft"
	"github.com/formflow/formflow/internal/form"
	"github.com/formflow/formflow/internal/schema"
	"github.com/formflow/formflow/internal/submit"
	"github.com/formflow/formflow/internal/ui"
	"github.com/formflow/formflow/internal/wizard"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Run the registration wizard",
	Long:  "Interactive registration: personal info, address, account credentials, confirmation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister()
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("registration requires an interactive terminal")
	}

	cfg := config.LoadOrDefault()

	// Draft storage is best-effort: when it cannot be opened the wizard
	// still runs, it just won't remember progress across sessions.
	var saver form.DraftSaver
	initial := schema.Defaults()
	store, err := draft.Open(draft.Options{Dir: cfg.DraftPath()})
	if err != nil {
		ui.Debugf("draft store unavailable: %v", err)
	} else {
		defer store.Close()
		saver = store
		initial = store.Load()
	}

	machine := form.New(saver, initial)
	client := submit.New(cfg.Endpoint)

	if err := wizard.Run(machine, client, cfg.SubmitTimeout()); err != nil {
		if errors.Is(err, wizard.ErrCancelled) {
			ui.Info("Registration cancelled. Your progress is saved for next time.")
			return nil
		}
		return err
	}
	return nil
}
