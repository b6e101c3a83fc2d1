package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// User represents a managed user record.
type User struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Age       int       `json:"age"`
	Position  string    `json:"position" gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserFields holds the content fields of a user record, without the
// store-owned identity and timestamp fields.
type UserFields struct {
	Name     string
	Email    string
	Age      int
	Position string
}

// UserUpdate is a partial update. Nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Age      *int
	Position *string
}

// UserPayload is the wire form of a create or update request. Every field is
// optional and tracks whether it appeared in the request body, so "absent"
// stays distinct from "set to an empty value". Unknown fields are ignored by
// the JSON decoder; wrong-typed fields are recorded and reported by the
// validation layer instead of failing the decode.
type UserPayload struct {
	Name     OptionalString `json:"name"`
	Email    OptionalString `json:"email"`
	Age      OptionalInt    `json:"age"`
	Position OptionalString `json:"position"`
}

// OptionalString is a string field that may be absent from the payload.
type OptionalString struct {
	set      bool
	isString bool
	value    string
}

// UnmarshalJSON never fails: a non-string value is recorded as a type
// mismatch for the validation layer to report.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.set = true
	if string(data) == "null" {
		o.isString = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	o.isString = true
	o.value = s
	return nil
}

// Present reports whether the field appeared in the payload at all.
func (o OptionalString) Present() bool { return o.set }

// IsString reports whether the field carried a JSON string (or null).
func (o OptionalString) IsString() bool { return o.isString }

// Value returns the decoded string, or "" when absent, null or mistyped.
func (o OptionalString) Value() string { return o.value }

// OptionalInt is an integer field that may be absent from the payload. It
// accepts both JSON numbers and numeric strings. Zero-like values (0, "",
// null) are flagged so callers can treat them as "not provided".
type OptionalInt struct {
	set   bool
	valid bool
	zero  bool
	value int
}

// UnmarshalJSON never fails: an unparsable value is recorded for the
// validation layer to report.
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.set = true
	raw := string(data)
	if raw == "null" || raw == "false" {
		o.zero = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			o.zero = true
			return nil
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			o.valid = true
			o.value = n
			o.zero = n == 0
		}
		return nil
	}

	if n, err := strconv.Atoi(raw); err == nil {
		o.valid = true
		o.value = n
		o.zero = n == 0
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		o.valid = true
		o.value = int(f)
		o.zero = f == 0
	}
	return nil
}

// Present reports whether the field appeared in the payload at all.
func (o OptionalInt) Present() bool { return o.set }

// Provided reports whether the field appeared with a non-zero-like value.
// Zero-like values (0, "", null) are skipped by validation, matching the
// original behavior of this API.
func (o OptionalInt) Provided() bool { return o.set && !o.zero }

// Valid reports whether the field parsed as an integer.
func (o OptionalInt) Valid() bool { return o.valid || o.zero }

// Value returns the parsed integer, or 0 when absent or zero-like.
func (o OptionalInt) Value() int { return o.value }
