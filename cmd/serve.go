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
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/formflow/formflow/internal/config"
	"github.com/formflow/formflow/internal/redactor"
	"github.com/formflow/formflow/internal/server"
	"github.com/formflow/formflow/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the reference registration endpoint",
	Long:  "Serves POST /api/submit, logging received registrations with secrets redacted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		delay, _ := cmd.Flags().GetDuration("delay")
		return runServe(addr, delay)
	},
}

func init() {
	cfg := config.DefaultConfig()
	serveCmd.Flags().String("addr", cfg.Serve.Addr, "Listen address")
	serveCmd.Flags().Duration("delay", cfg.ServeDelay(), "Simulated processing delay per registration")
	rootCmd.AddCommand(serveCmd)
}

func runServe(addr string, delay time.Duration) error {
	red := redactor.New()
	log := slog.New(slog.NewTextHandler(redactor.NewWriter(os.Stdout, red), nil))
	handler := server.NewHandler(log, red, delay)
	srv := server.New(addr, handler.Router())

	ui.Infof("Listening on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	ui.Info("Server stopped.")
	return nil
}
