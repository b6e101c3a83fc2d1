// Package validation checks user payloads against the API's field rules.
// It is a pure function of (payload, mode): all violations are collected
// and returned together, never short-circuited.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"userapi/internal/models"
)

// Mode selects which rules apply: create requires every field, update only
// validates the fields that are present.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate returns the list of rule violations for the payload in the given
// mode. An empty list means the payload is acceptable.
//
// A zero or empty age is treated as "not provided" and skipped, which on
// create also trips the required check. This quirk is kept on purpose.
func Validate(p models.UserPayload, mode Mode) []string {
	var errs []string

	if mode == ModeCreate {
		if !p.Name.Present() || p.Name.Value() == "" {
			errs = append(errs, "Field 'name' is required")
		}
		if !p.Email.Present() || p.Email.Value() == "" {
			errs = append(errs, "Field 'email' is required")
		}
		if !p.Age.Provided() {
			errs = append(errs, "Field 'age' is required")
		}
		if !p.Position.Present() || p.Position.Value() == "" {
			errs = append(errs, "Field 'position' is required")
		}
	}

	if p.Email.Present() && !p.Email.IsString() {
		errs = append(errs, "Field 'email' must be a string")
	} else if p.Email.Present() && p.Email.Value() != "" {
		if !emailPattern.MatchString(p.Email.Value()) {
			errs = append(errs, "Invalid email format")
		}
	}

	if p.Age.Provided() {
		switch {
		case !p.Age.Valid():
			errs = append(errs, "Age must be a valid number")
		case p.Age.Value() < 0 || p.Age.Value() > 150:
			errs = append(errs, "Age must be between 0 and 150")
		}
	}

	errs = append(errs, validateMinLength("name", p.Name)...)
	errs = append(errs, validateMinLength("position", p.Position)...)

	return errs
}

func validateMinLength(field string, v models.OptionalString) []string {
	if v.Present() && !v.IsString() {
		return []string{fmt.Sprintf("Field '%s' must be a string", field)}
	}
	if v.Present() && v.Value() != "" && len(strings.TrimSpace(v.Value())) < 2 {
		return []string{fmt.Sprintf("%s must be at least 2 characters long", capitalize(field))}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
