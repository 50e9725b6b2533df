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
	"os"

	"github.com/spf13/cobra"

	"github.com/formflow/formflow/internal/config"
	"github.com/formflow/formflow/internal/ui"
)

// Version is set by ldflags at build time.
var Version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "formflow",
	Short: "Terminal Registration Wizard",
	Long:  "FormFlow - step-by-step registration from the terminal",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		v, _ := cmd.Flags().GetBool("verbose")
		ui.Verbose = v
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("formflow version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate("formflow version {{.Version}}\n")
	rootCmd.Version = Version
}

// Execute runs the root command.
func Execute() {
	config.EnsureDirs()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
