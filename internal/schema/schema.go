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

// Package schema defines the registration record and its validation rules.
package schema

import (
	"regexp"
	"strings"
)

// Field names. These double as JSON keys in the submission payload and as
// keys in the Errors map.
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPhoneNumber     = "phoneNumber"
	FieldStreetAddress   = "streetAddress"
	FieldCity            = "city"
	FieldZipCode         = "zipCode"
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// FieldNames lists every field in display order.
var FieldNames = []string{
	FieldFullName,
	FieldEmail,
	FieldPhoneNumber,
	FieldStreetAddress,
	FieldCity,
	FieldZipCode,
	FieldUsername,
	FieldPassword,
	FieldConfirmPassword,
}

// FormValues is the unified registration record. Every step reads and writes
// a subset of these fields; the record itself is never split.
type FormValues struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	StreetAddress   string `json:"streetAddress"`
	City            string `json:"city"`
	ZipCode         string `json:"zipCode"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Defaults returns an all-empty record.
func Defaults() FormValues {
	return FormValues{}
}

// WithoutSecrets returns a copy with the password fields blanked. Drafts and
// logs must never carry secrets.
func (v FormValues) WithoutSecrets() FormValues {
	v.Password = ""
	v.ConfirmPassword = ""
	return v
}

// Get returns the value of the named field, or "" for an unknown name.
func (v FormValues) Get(name string) string {
	switch name {
	case FieldFullName:
		return v.FullName
	case FieldEmail:
		return v.Email
	case FieldPhoneNumber:
		return v.PhoneNumber
	case FieldStreetAddress:
		return v.StreetAddress
	case FieldCity:
		return v.City
	case FieldZipCode:
		return v.ZipCode
	case FieldUsername:
		return v.Username
	case FieldPassword:
		return v.Password
	case FieldConfirmPassword:
		return v.ConfirmPassword
	}
	return ""
}

// Set assigns the named field. Unknown names are ignored.
func (v *FormValues) Set(name, value string) {
	switch name {
	case FieldFullName:
		v.FullName = value
	case FieldEmail:
		v.Email = value
	case FieldPhoneNumber:
		v.PhoneNumber = value
	case FieldStreetAddress:
		v.StreetAddress = value
	case FieldCity:
		v.City = value
	case FieldZipCode:
		v.ZipCode = value
	case FieldUsername:
		v.Username = value
	case FieldPassword:
		v.Password = value
	case FieldConfirmPassword:
		v.ConfirmPassword = value
	}
}

// Errors maps a field name to a human-readable validation message. An empty
// map means the checked fields are valid.
type Errors map[string]string

// rule is a single pure predicate with the message reported when it fails.
type rule struct {
	ok  func(FormValues) bool
	msg string
}

// crossRule is a constraint that spans fields; its error lands on one
// target field.
type crossRule struct {
	field string
	ok    func(FormValues) bool
	msg   string
}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
	// Username character rules: restricted charset, must start and end with
	// a letter or digit.
	usernameCharset = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	usernameStart   = regexp.MustCompile(`^[a-zA-Z0-9]`)
	usernameEnd     = regexp.MustCompile(`[a-zA-Z0-9]$`)
)

// fieldRules holds the ordered per-field rule lists. Validation reports the
// first failing rule of each field.
var fieldRules = map[string][]rule{
	FieldFullName: {
		{func(v FormValues) bool { return v.FullName != "" }, "Full name is required"},
	},
	FieldEmail: {
		{func(v FormValues) bool { return v.Email != "" }, "Email is required"},
		{func(v FormValues) bool { return emailPattern.MatchString(v.Email) }, "Invalid email format"},
	},
	FieldPhoneNumber: {
		{func(v FormValues) bool { return len(v.PhoneNumber) >= 10 }, "Phone number must be at least 10 digits"},
	},
	FieldStreetAddress: {
		{func(v FormValues) bool { return v.StreetAddress != "" }, "Street address is required"},
	},
	FieldCity: {
		{func(v FormValues) bool { return v.City != "" }, "City is required"},
	},
	FieldZipCode: {
		{func(v FormValues) bool { return len(v.ZipCode) >= 5 }, "Zip code must be at least 5 digits"},
		{func(v FormValues) bool { return digitsPattern.MatchString(v.ZipCode) }, "Zip code must contain only numbers"},
	},
	FieldUsername: {
		{func(v FormValues) bool { return len(v.Username) >= 4 }, "Username must be at least 4 characters"},
		{func(v FormValues) bool { return len(v.Username) <= 30 }, "Username cannot exceed 30 characters"},
		{func(v FormValues) bool { return usernameCharset.MatchString(v.Username) }, "Username can only contain letters, numbers, underscores, dots, and hyphens"},
		{func(v FormValues) bool { return usernameStart.MatchString(v.Username) }, "Username must start with a letter or number"},
		{func(v FormValues) bool { return usernameEnd.MatchString(v.Username) }, "Username must end with a letter or number"},
		{func(v FormValues) bool { return !hasRepeatedSeparator(v.Username) }, "Username cannot contain consecutive dots, underscores, or hyphens"},
	},
	FieldPassword: {
		{func(v FormValues) bool { return len(v.Password) >= 6 }, "Password must be at least 6 characters"},
	},
	FieldConfirmPassword: {
		{func(v FormValues) bool { return v.ConfirmPassword != "" }, "Please confirm your password"},
	},
}

// crossRules are evaluated after the per-field rules; they never overwrite
// an error already present on their target field.
var crossRules = []crossRule{
	{FieldConfirmPassword, func(v FormValues) bool { return v.Password == v.ConfirmPassword }, "Passwords do not match"},
}

func hasRepeatedSeparator(s string) bool {
	return strings.Contains(s, "..") || strings.Contains(s, "__") || strings.Contains(s, "--")
}

// Validate checks the given fields of a record and returns the resulting
// error set. With no fields given, the whole record is checked. Validation
// is pure: same values, same result, no side effects.
func Validate(v FormValues, fields ...string) Errors {
	if len(fields) == 0 {
		fields = FieldNames
	}

	checked := make(map[string]bool, len(fields))
	errs := Errors{}
	for _, name := range fields {
		checked[name] = true
		for _, r := range fieldRules[name] {
			if !r.ok(v) {
				errs[name] = r.msg
				break
			}
		}
	}

	for _, cr := range crossRules {
		if !checked[cr.field] {
			continue
		}
		if _, taken := errs[cr.field]; taken {
			continue
		}
		if !cr.ok(v) {
			errs[cr.field] = cr.msg
		}
	}

	return errs
}
