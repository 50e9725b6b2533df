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

package schema

import (
	"strings"
	"testing"
)

func validRecord() FormValues {
	return FormValues{
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		PhoneNumber:     "5551234567",
		StreetAddress:   "123 Main St",
		City:            "New York",
		ZipCode:         "10001",
		Username:        "jane.doe",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestValidateFullRecordValid(t *testing.T) {
	errs := Validate(validRecord())
	if len(errs) != 0 {
		t.Errorf("Validate(valid record) = %v, want no errors", errs)
	}
}

func TestValidateEmptyRecord(t *testing.T) {
	errs := Validate(Defaults())
	for _, name := range FieldNames {
		if errs[name] == "" {
			t.Errorf("empty record: missing error for %s", name)
		}
	}
}

func TestRequiredMessages(t *testing.T) {
	errs := Validate(Defaults())

	want := map[string]string{
		FieldFullName:        "Full name is required",
		FieldEmail:           "Email is required",
		FieldStreetAddress:   "Street address is required",
		FieldCity:            "City is required",
		FieldConfirmPassword: "Please confirm your password",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("errs[%s] = %q, want %q", field, errs[field], msg)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	v := validRecord()
	v.Email = "not-an-email"
	errs := Validate(v, FieldEmail)
	if errs[FieldEmail] != "Invalid email format" {
		t.Errorf("errs[email] = %q, want invalid-format message", errs[FieldEmail])
	}

	v.Email = "jane@x.com"
	if errs := Validate(v, FieldEmail); len(errs) != 0 {
		t.Errorf("Validate(jane@x.com) = %v, want no errors", errs)
	}
}

func TestValidatePhoneNumberLength(t *testing.T) {
	v := validRecord()
	v.PhoneNumber = "555123456" // 9 digits
	errs := Validate(v, FieldPhoneNumber)
	if errs[FieldPhoneNumber] != "Phone number must be at least 10 digits" {
		t.Errorf("errs[phoneNumber] = %q, want length message", errs[FieldPhoneNumber])
	}
}

func TestValidateZipCodeBoundary(t *testing.T) {
	tests := []struct {
		zip     string
		wantMsg string
	}{
		{"1234", "Zip code must be at least 5 digits"},
		{"12345", ""},
		{"1234a", "Zip code must contain only numbers"},
	}
	for _, tt := range tests {
		v := validRecord()
		v.ZipCode = tt.zip
		errs := Validate(v, FieldZipCode)
		if errs[FieldZipCode] != tt.wantMsg {
			t.Errorf("zip %q: got %q, want %q", tt.zip, errs[FieldZipCode], tt.wantMsg)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		wantMsg  string
	}{
		{"jane.doe", ""},
		{"ab.cd", ""},
		{"j_d-1", ""},
		{"abc", "Username must be at least 4 characters"},
		{strings.Repeat("a", 31), "Username cannot exceed 30 characters"},
		{"jane doe", "Username can only contain letters, numbers, underscores, dots, and hyphens"},
		{"ja!ne", "Username can only contain letters, numbers, underscores, dots, and hyphens"},
		{".jane", "Username must start with a letter or number"},
		{"jane.", "Username must end with a letter or number"},
		{"ab..cd", "Username cannot contain consecutive dots, underscores, or hyphens"},
		{"ab__cd", "Username cannot contain consecutive dots, underscores, or hyphens"},
		{"ab--cd", "Username cannot contain consecutive dots, underscores, or hyphens"},
	}
	for _, tt := range tests {
		v := validRecord()
		v.Username = tt.username
		errs := Validate(v, FieldUsername)
		if errs[FieldUsername] != tt.wantMsg {
			t.Errorf("username %q: got %q, want %q", tt.username, errs[FieldUsername], tt.wantMsg)
		}
	}
}

func TestValidatePasswordLength(t *testing.T) {
	v := validRecord()
	v.Password = "short"
	v.ConfirmPassword = "short"
	errs := Validate(v, FieldPassword, FieldConfirmPassword)
	if errs[FieldPassword] != "Password must be at least 6 characters" {
		t.Errorf("errs[password] = %q, want length message", errs[FieldPassword])
	}
}

func TestValidatePasswordMismatch(t *testing.T) {
	v := validRecord()
	v.Password = "secret1"
	v.ConfirmPassword = "secret2"
	errs := Validate(v)
	if errs[FieldConfirmPassword] != "Passwords do not match" {
		t.Errorf("errs[confirmPassword] = %q, want mismatch message", errs[FieldConfirmPassword])
	}
}

func TestValidateMismatchSkippedWhenConfirmEmpty(t *testing.T) {
	v := validRecord()
	v.ConfirmPassword = ""
	errs := Validate(v, FieldConfirmPassword)
	// The required-rule message wins; the cross-field rule never overwrites it.
	if errs[FieldConfirmPassword] != "Please confirm your password" {
		t.Errorf("errs[confirmPassword] = %q, want required message", errs[FieldConfirmPassword])
	}
}

func TestValidateFieldSubset(t *testing.T) {
	// Only the requested fields are checked; an otherwise-empty record must
	// not produce errors for fields outside the subset.
	v := FormValues{FullName: "Jane Doe", Email: "jane@x.com", PhoneNumber: "5551234567"}
	errs := Validate(v, FieldFullName, FieldEmail, FieldPhoneNumber)
	if len(errs) != 0 {
		t.Errorf("Validate(step 1 subset) = %v, want no errors", errs)
	}
}

func TestValidateIsPure(t *testing.T) {
	v := validRecord()
	v.Email = "broken"
	first := Validate(v)
	second := Validate(v)
	if len(first) != len(second) || first[FieldEmail] != second[FieldEmail] {
		t.Errorf("Validate not deterministic: %v vs %v", first, second)
	}
}

func TestWithoutSecrets(t *testing.T) {
	v := validRecord()
	got := v.WithoutSecrets()
	if got.Password != "" || got.ConfirmPassword != "" {
		t.Errorf("WithoutSecrets kept secrets: %+v", got)
	}
	if got.Username != v.Username || got.Email != v.Email {
		t.Errorf("WithoutSecrets changed non-secret fields: %+v", got)
	}
}

func TestGetSet(t *testing.T) {
	var v FormValues
	for _, name := range FieldNames {
		v.Set(name, "x-"+name)
	}
	for _, name := range FieldNames {
		if got := v.Get(name); got != "x-"+name {
			t.Errorf("Get(%s) = %q, want %q", name, got, "x-"+name)
		}
	}

	v.Set("bogus", "value")
	if got := v.Get("bogus"); got != "" {
		t.Errorf("Get(bogus) = %q, want empty", got)
	}
}
