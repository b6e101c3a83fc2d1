package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapi/internal/models"
	"userapi/internal/validation"
)

func payloadFrom(t *testing.T, body string) models.UserPayload {
	t.Helper()
	var p models.UserPayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestValidateCreate_AllFieldsMissing(t *testing.T) {
	errs := validation.Validate(payloadFrom(t, `{}`), validation.ModeCreate)

	assert.Equal(t, []string{
		"Field 'name' is required",
		"Field 'email' is required",
		"Field 'age' is required",
		"Field 'position' is required",
	}, errs)
}

func TestValidateCreate_Valid(t *testing.T) {
	p := payloadFrom(t, `{"name":"Alice Cooper","email":"alice@example.com","age":30,"position":"Engineer"}`)
	assert.Empty(t, validation.Validate(p, validation.ModeCreate))
}

func TestValidateCreate_CollectsAllErrors(t *testing.T) {
	// The canonical bad payload: empty name and position, malformed email,
	// out-of-range age. All violations are reported together.
	p := payloadFrom(t, `{"name":"","email":"bad","age":-5,"position":""}`)
	errs := validation.Validate(p, validation.ModeCreate)

	assert.GreaterOrEqual(t, len(errs), 4)
	assert.Contains(t, errs, "Field 'name' is required")
	assert.Contains(t, errs, "Field 'position' is required")
	assert.Contains(t, errs, "Invalid email format")
	assert.Contains(t, errs, "Age must be between 0 and 150")
}

func TestValidateEmailFormat(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"john.doe@example.com", true},
		{"local+tag_1%x-y@sub.domain-1.co", true},
		{"short.tld@example.c", false},
		{"missing-at.example.com", false},
		{"spaces in@example.com", false},
		{"no-domain@", false},
	}

	for _, tc := range cases {
		p := payloadFrom(t, `{"email":"`+tc.email+`"}`)
		errs := validation.Validate(p, validation.ModeUpdate)
		if tc.valid {
			assert.Empty(t, errs, "email %q should be accepted", tc.email)
		} else {
			assert.Equal(t, []string{"Invalid email format"}, errs, "email %q should be rejected", tc.email)
		}
	}
}

func TestValidateAge(t *testing.T) {
	cases := []struct {
		name string
		body string
		want []string
	}{
		{"in range", `{"age":42}`, nil},
		{"numeric string", `{"age":"42"}`, nil},
		{"boundary low", `{"age":"0"}`, nil},
		{"boundary high", `{"age":150}`, nil},
		{"negative", `{"age":-1}`, []string{"Age must be between 0 and 150"}},
		{"too large", `{"age":151}`, []string{"Age must be between 0 and 150"}},
		{"not a number", `{"age":"abc"}`, []string{"Age must be a valid number"}},
		{"object", `{"age":{}}`, []string{"Age must be a valid number"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := validation.Validate(payloadFrom(t, tc.body), validation.ModeUpdate)
			if tc.want == nil {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, tc.want, errs)
			}
		})
	}
}

// Zero-like ages (0, "", null) are skipped by validation rather than
// checked, matching the original behavior of this API. On create they also
// trip the required check.
func TestValidateAge_ZeroLikeValuesSkipped(t *testing.T) {
	for _, body := range []string{`{"age":0}`, `{"age":""}`, `{"age":null}`} {
		errs := validation.Validate(payloadFrom(t, body), validation.ModeUpdate)
		assert.Empty(t, errs, "payload %s should be skipped on update", body)

		errs = validation.Validate(payloadFrom(t, body), validation.ModeCreate)
		assert.Contains(t, errs, "Field 'age' is required", "payload %s counts as missing on create", body)
	}
}

func TestValidateNameAndPosition(t *testing.T) {
	p := payloadFrom(t, `{"name":"A","position":" B "}`)
	errs := validation.Validate(p, validation.ModeUpdate)

	assert.Equal(t, []string{
		"Name must be at least 2 characters long",
		"Position must be at least 2 characters long",
	}, errs)
}

func TestValidateUpdate_AbsentFieldsAreNotRequired(t *testing.T) {
	assert.Empty(t, validation.Validate(payloadFrom(t, `{}`), validation.ModeUpdate))

	// A present field must still satisfy its own rule.
	p := payloadFrom(t, `{"email":"not-an-email"}`)
	assert.Equal(t, []string{"Invalid email format"}, validation.Validate(p, validation.ModeUpdate))
}

func TestValidate_TypeMismatchIsReported(t *testing.T) {
	p := payloadFrom(t, `{"name":123,"email":true,"age":30,"position":["x"]}`)
	errs := validation.Validate(p, validation.ModeUpdate)

	assert.Contains(t, errs, "Field 'name' must be a string")
	assert.Contains(t, errs, "Field 'email' must be a string")
	assert.Contains(t, errs, "Field 'position' must be a string")
}
