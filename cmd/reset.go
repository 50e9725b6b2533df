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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formflow/formflow/internal/config"
	"github.com/formflow/formflow/internal/draft"
	"github.com/formflow/formflow/internal/ui"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved registration draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadOrDefault()

		store, err := draft.Open(draft.Options{Dir: cfg.DraftPath()})
		if err != nil {
			return fmt.Errorf("opening draft store: %w", err)
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing draft: %w", err)
		}
		ui.Success("Draft cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
