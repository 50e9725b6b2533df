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

// Package server hosts the reference registration endpoint consumed by the
// wizard's submission client.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/formflow/formflow/internal/redactor"
	"github.com/formflow/formflow/internal/schema"
)

// Handler serves the registration API. Password fields must never appear in
// plaintext in its logs: they are logged as redactor.Replacement, and their
// values are registered with the redactor guarding the log stream.
type Handler struct {
	log   *slog.Logger
	red   *redactor.Redactor
	delay time.Duration // simulated processing time per accepted record
}

// NewHandler creates a Handler. A nil logger falls back to slog.Default; a
// nil redactor is replaced with an empty one.
func NewHandler(log *slog.Logger, red *redactor.Redactor, delay time.Duration) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if red == nil {
		red = redactor.New()
	}
	return &Handler{log: log, red: red, delay: delay}
}

// Router builds the chi router for the registration API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/submit", h.handleSubmit)
	return r
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var v schema.FormValues
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		h.log.Warn("rejecting malformed payload", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "invalid JSON payload"})
		return
	}

	if errs := schema.Validate(v); len(errs) > 0 {
		h.log.Warn("rejecting invalid registration", "fields", keys(errs))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"status": "invalid", "errors": errs})
		return
	}

	// Register the secrets before the first log line about this record, so
	// even an accidental echo elsewhere in the stream stays filtered.
	h.red.AddSecret(v.Password)
	h.red.AddSecret(v.ConfirmPassword)

	h.log.Info("registration received",
		"fullName", v.FullName,
		"email", v.Email,
		"phoneNumber", v.PhoneNumber,
		"streetAddress", v.StreetAddress,
		"city", v.City,
		"zipCode", v.ZipCode,
		"username", v.Username,
		"password", redactor.Replacement,
		"confirmPassword", redactor.Replacement,
	)

	if h.delay > 0 {
		select {
		case <-time.After(h.delay):
		case <-r.Context().Done():
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func keys(errs schema.Errors) []string {
	out := make([]string, 0, len(errs))
	for k := range errs {
		out = append(out, k)
	}
	return out
}

// New builds an HTTP server with sane defaults for this project.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
