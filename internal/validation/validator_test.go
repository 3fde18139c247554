// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package validation

import (
	"strings"
	"testing"
)

type selectionBody struct {
	Username string   `json:"username" validate:"required,username"`
	Subjects []string `json:"selected_subjects" validate:"required,min=1,dive,subject"`
}

type styleBody struct {
	Concrete float64 `json:"concrete" validate:"gte=0"`
	Mode     string  `json:"mode" validate:"omitempty,oneof=baseline graph"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
	}{
		{"valid selection", &selectionBody{Username: "ada", Subjects: []string{"Math"}}, "", ""},
		{"missing username", &selectionBody{Subjects: []string{"Math"}}, "username", "required"},
		{"padded username", &selectionBody{Username: " ada", Subjects: []string{"Math"}}, "username", "username"},
		{"empty subjects", &selectionBody{Username: "ada", Subjects: []string{}}, "selected_subjects", "min"},
		{"comma subject", &selectionBody{Username: "ada", Subjects: []string{"Math,Physics"}}, "selected_subjects[0]", "subject"},
		{"negative weight", &styleBody{Concrete: -1}, "concrete", "gte"},
		{"bad mode", &styleBody{Mode: "magic"}, "mode", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error")
			}
			got := verr.Errors()[0]
			if got.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", got.Field(), tt.wantField)
			}
			if got.Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", got.Tag(), tt.wantTag)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&selectionBody{})
	if verr == nil {
		t.Fatal("expected error")
	}
	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_FAILED" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "username is required") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %#v, want 2 entries", apiErr.Details["fields"])
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	if err := ValidateUsername("grace"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "  ", "tab\tname", strings.Repeat("x", MaxUsernameLength+1)} {
		if err := ValidateUsername(bad); err == nil {
			t.Errorf("ValidateUsername(%q) should fail", bad)
		}
	}
}
