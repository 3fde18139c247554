// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package profile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/validation"
)

// Table names.
const (
	TableSelections = "user_subject_sel"
	TableStyles     = "user_ts"
	TableCareers    = "career"
	TableCourses    = "course_ts"
)

// Defaults for career rows without an id or name.
const (
	DefaultCareerID   = "N/A"
	DefaultCareerName = "Unknown"
)

// ErrMalformedRow is wrapped by row conversion failures.
var ErrMalformedRow = errors.New("malformed row")

// FlexString decodes a JSON string, number or null into a string. Numeric
// primary keys arrive as numbers from PostgREST.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

// SelectionRow is one user_subject_sel row.
type SelectionRow struct {
	Username         string  `json:"username" yaml:"username" validate:"required,username"`
	SelectedSubjects *string `json:"selected_subjects" yaml:"selected_subjects"`
}

// StyleRow is one user_ts row. Null columns read as 0.
type StyleRow struct {
	Username    string   `json:"username" yaml:"username" validate:"required,username"`
	Concrete    *float64 `json:"concrete" yaml:"concrete" validate:"omitempty,gte=0"`
	Logical     *float64 `json:"logical" yaml:"logical" validate:"omitempty,gte=0"`
	Theoretical *float64 `json:"theoretical" yaml:"theoretical" validate:"omitempty,gte=0"`
	Practical   *float64 `json:"practical" yaml:"practical" validate:"omitempty,gte=0"`
	Intuitive   *float64 `json:"intuitive" yaml:"intuitive" validate:"omitempty,gte=0"`
}

// CareerRow is one career row. Style columns are capitalised in the table.
type CareerRow struct {
	CareerID      FlexString `json:"career_id" yaml:"career_id"`
	CareerName    *string    `json:"career_name" yaml:"career_name"`
	Prerequisites *string    `json:"prerequisites" yaml:"prerequisites"`
	Concrete      *float64   `json:"Concrete" yaml:"concrete" validate:"omitempty,gte=0"`
	Logical       *float64   `json:"Logical" yaml:"logical" validate:"omitempty,gte=0"`
	Theoretical   *float64   `json:"Theoretical" yaml:"theoretical" validate:"omitempty,gte=0"`
	Practical     *float64   `json:"Practical" yaml:"practical" validate:"omitempty,gte=0"`
	Intuitive     *float64   `json:"Intuitive" yaml:"intuitive" validate:"omitempty,gte=0"`
}

// CourseRow is one course_ts row.
type CourseRow struct {
	CourseID   FlexString `json:"course_id" yaml:"course_id"`
	CourseName *string    `json:"course_name" yaml:"course_name"`
}

// ParseSubjects splits a comma-joined subject list, trimming blanks and
// dropping empty and repeated entries. First-seen order is kept.
//
// Trimming is a product decision: "Math, Physics" selects "Physics", not
// " Physics". Stores that wrote lists with ", " separators would otherwise
// never match career prerequisites. Career prerequisite lists are trimmed the
// same way in CareerRow.Career.
func ParseSubjects(joined string) []string {
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// JoinSubjects is the inverse of ParseSubjects.
func JoinSubjects(subjects []string) string {
	return strings.Join(subjects, ", ")
}

// Subjects returns the parsed selection, or nil for a null column.
func (r *SelectionRow) Subjects() []string {
	if r.SelectedSubjects == nil {
		return nil
	}
	return ParseSubjects(*r.SelectedSubjects)
}

// ThinkingStyle validates the row and returns its style vector.
func (r *StyleRow) ThinkingStyle() (*models.ThinkingStyle, error) {
	if verr := validation.ValidateStruct(r); verr != nil {
		return nil, &recommend.DataError{
			Op:  "fetch user thinking style",
			Err: fmt.Errorf("%w: %s: %s", ErrMalformedRow, TableStyles, verr.Error()),
		}
	}
	style := models.NewThinkingStyle(deref(r.Concrete), deref(r.Logical), deref(r.Theoretical), deref(r.Practical), deref(r.Intuitive))
	return &style, nil
}

// Career validates the row and converts it. Missing id and name take the
// "N/A" and "Unknown" defaults; missing style columns read as 0.
func (r *CareerRow) Career() (models.Career, error) {
	if verr := validation.ValidateStruct(r); verr != nil {
		return models.Career{}, fmt.Errorf("%w: %s %q: %s", ErrMalformedRow, TableCareers, string(r.CareerID), verr.Error())
	}

	c := models.Career{
		ID:   strings.TrimSpace(string(r.CareerID)),
		Name: DefaultCareerName,
	}
	if c.ID == "" {
		c.ID = DefaultCareerID
	}
	if r.CareerName != nil && strings.TrimSpace(*r.CareerName) != "" {
		c.Name = strings.TrimSpace(*r.CareerName)
	}
	if r.Prerequisites != nil {
		// Duplicates are kept; the graph builder collapses them.
		for _, p := range strings.Split(*r.Prerequisites, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Prerequisites = append(c.Prerequisites, p)
			}
		}
	}

	dims := []*float64{r.Concrete, r.Logical, r.Theoretical, r.Practical, r.Intuitive}
	for i, v := range dims {
		if v != nil {
			c.Style[i] = *v
			c.HasStyle = true
		}
	}
	return c, nil
}

// Course converts the row.
func (r *CourseRow) Course() models.Course {
	c := models.Course{CourseID: strings.TrimSpace(string(r.CourseID))}
	if r.CourseName != nil {
		c.CourseName = strings.TrimSpace(*r.CourseName)
	}
	return c
}

// CareersFromRows converts rows in order, skipping and logging rows that
// fail validation.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func CareersFromRows(rows []CareerRow, logger zerolog.Logger) []models.Career {
	out := make([]models.Career, 0, len(rows))
	for i := range rows {
		c, err := rows[i].Career()
		if err != nil {
			metrics.SkippedCareerRows.Inc()
			logger.Warn().Err(err).Int("row", i).Msg("skipping malformed career row")
			continue
		}
		out = append(out, c)
	}
	return out
}

// CareerRowFrom is the inverse of CareerRow.Career, used when seeding stores.
func CareerRowFrom(c *models.Career) CareerRow {
	name := c.Name
	prereq := strings.Join(c.Prerequisites, ",")
	row := CareerRow{
		CareerID:      FlexString(c.ID),
		CareerName:    &name,
		Prerequisites: &prereq,
	}
	if c.HasStyle {
		dims := []**float64{&row.Concrete, &row.Logical, &row.Theoretical, &row.Practical, &row.Intuitive}
		for i, d := range dims {
			v := c.Style[i]
			*d = &v
		}
	}
	return row
}

// StyleRowFrom builds a user_ts row.
func StyleRowFrom(username string, s models.ThinkingStyle) StyleRow {
	vals := make([]float64, models.StyleDimensions)
	copy(vals, s[:])
	return StyleRow{
		Username:    username,
		Concrete:    &vals[models.Concrete],
		Logical:     &vals[models.Logical],
		Theoretical: &vals[models.Theoretical],
		Practical:   &vals[models.Practical],
		Intuitive:   &vals[models.Intuitive],
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// sequenceKey renders an ordinal that sorts lexically in numeric order.
func sequenceKey(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 10 {
		s = strings.Repeat("0", 10-len(s)) + s
	}
	return s
}
