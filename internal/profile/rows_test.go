// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package profile

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
)

func ptr[T any](v T) *T { return &v }

func TestParseSubjects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"Math,Physics", []string{"Math", "Physics"}},
		{" Math , Physics ,Math", []string{"Math", "Physics"}},
		{"Math,,  ,Art", []string{"Math", "Art"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := ParseSubjects(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSubjects(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFlexStringDecode(t *testing.T) {
	t.Parallel()

	var rows []CareerRow
	data := `[{"career_id": 7, "career_name": "Chemist"}, {"career_id": "x9"}, {"career_id": null}]`
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := []FlexString{"7", "x9", ""}
	for i, r := range rows {
		if r.CareerID != want[i] {
			t.Errorf("row %d id = %q, want %q", i, r.CareerID, want[i])
		}
	}
}

func TestCareerRowConversion(t *testing.T) {
	t.Parallel()

	t.Run("full row", func(t *testing.T) {
		t.Parallel()
		row := CareerRow{
			CareerID:      "1",
			CareerName:    ptr("Engineer"),
			Prerequisites: ptr("Math, Physics,Math"),
			Concrete:      ptr(5.0),
			Logical:       ptr(9.0),
		}
		c, err := row.Career()
		if err != nil {
			t.Fatalf("Career() error = %v", err)
		}
		if !reflect.DeepEqual(c.Prerequisites, []string{"Math", "Physics", "Math"}) {
			t.Errorf("Prerequisites = %v", c.Prerequisites)
		}
		if !c.HasStyle || c.Style != models.NewThinkingStyle(5, 9, 0, 0, 0) {
			t.Errorf("Style = %v, HasStyle = %v", c.Style, c.HasStyle)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		c, err := (&CareerRow{}).Career()
		if err != nil {
			t.Fatalf("Career() error = %v", err)
		}
		if c.ID != DefaultCareerID || c.Name != DefaultCareerName {
			t.Errorf("id/name = %q/%q, want defaults", c.ID, c.Name)
		}
		if c.HasStyle || !c.Style.IsZero() || len(c.Prerequisites) != 0 {
			t.Errorf("empty row converted to %+v", c)
		}
	})

	t.Run("negative style rejected", func(t *testing.T) {
		t.Parallel()
		_, err := (&CareerRow{CareerID: "2", Logical: ptr(-1.0)}).Career()
		if !errors.Is(err, ErrMalformedRow) {
			t.Errorf("error = %v, want ErrMalformedRow", err)
		}
	})
}

func TestCareersFromRowsSkipsMalformed(t *testing.T) {
	t.Parallel()

	rows := []CareerRow{
		{CareerID: "a", Prerequisites: ptr("Math")},
		{CareerID: "bad", Intuitive: ptr(-3.0)},
		{CareerID: "b", Prerequisites: ptr("Art")},
	}
	careers := CareersFromRows(rows, zerolog.Nop())
	if len(careers) != 2 || careers[0].ID != "a" || careers[1].ID != "b" {
		t.Errorf("careers = %+v", careers)
	}
}

func TestStyleRow(t *testing.T) {
	t.Parallel()

	row := StyleRowFrom("alice", models.NewThinkingStyle(5, 8, 2, 3, 1))
	style, err := row.ThinkingStyle()
	if err != nil {
		t.Fatalf("ThinkingStyle() error = %v", err)
	}
	if *style != models.NewThinkingStyle(5, 8, 2, 3, 1) {
		t.Errorf("style = %v", *style)
	}

	row.Practical = ptr(-2.0)
	_, err = row.ThinkingStyle()
	if !recommend.IsDataError(err) || !errors.Is(err, ErrMalformedRow) {
		t.Errorf("error = %v, want DataError wrapping ErrMalformedRow", err)
	}
}

func TestCareerRowRoundTrip(t *testing.T) {
	t.Parallel()

	in := models.Career{
		ID: "9", Name: "Pilot",
		Prerequisites: []string{"Physics", "Geography"},
		Style:         models.NewThinkingStyle(4, 3, 2, 5, 1),
		HasStyle:      true,
	}
	row := CareerRowFrom(&in)
	out, err := row.Career()
	if err != nil {
		t.Fatalf("Career() error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
