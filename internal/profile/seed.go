// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/validation"
)

// Seed is the YAML document used to populate local stores:
//
//	users:
//	  - username: alice
//	    selected_subjects: [Math, Physics]
//	    thinking_style: {concrete: 5, logical: 8, theoretical: 2, practical: 3, intuitive: 1}
//	careers:
//	  - career_id: "1"
//	    career_name: Software Engineer
//	    prerequisites: Math, Physics
//	    concrete: 5
//	    logical: 9
//	courses:
//	  - course_id: "101"
//	    course_name: Calculus I
type Seed struct {
	Users   []SeedUser  `yaml:"users"`
	Careers []CareerRow `yaml:"careers"`
	Courses []CourseRow `yaml:"courses"`
}

// SeedUser is one user entry of a seed file.
type SeedUser struct {
	Username         string     `yaml:"username"`
	SelectedSubjects []string   `yaml:"selected_subjects"`
	ThinkingStyle    *SeedStyle `yaml:"thinking_style"`
}

// SeedStyle is a thinking style in a seed file.
type SeedStyle struct {
	Concrete    float64 `yaml:"concrete"`
	Logical     float64 `yaml:"logical"`
	Theoretical float64 `yaml:"theoretical"`
	Practical   float64 `yaml:"practical"`
	Intuitive   float64 `yaml:"intuitive"`
}

// LoadSeedFile reads and validates a seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a seed document. Users must have valid usernames; career
// rows are kept as-is and validated when read.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for i := range seed.Users {
		if err := validation.ValidateUsername(seed.Users[i].Username); err != nil {
			return nil, fmt.Errorf("seed user %d: %w", i, err)
		}
	}
	return &seed, nil
}

// rows converts a seed user into its table rows. Either may be nil.
func (u *SeedUser) rows() (*SelectionRow, *StyleRow) {
	var sel *SelectionRow
	if len(u.SelectedSubjects) > 0 {
		joined := JoinSubjects(u.SelectedSubjects)
		sel = &SelectionRow{Username: u.Username, SelectedSubjects: &joined}
	}
	var style *StyleRow
	if u.ThinkingStyle != nil {
		s := u.ThinkingStyle
		row := StyleRowFrom(u.Username, models.NewThinkingStyle(s.Concrete, s.Logical, s.Theoretical, s.Practical, s.Intuitive))
		style = &row
	}
	return sel, style
}

func (s *Seed) careerRows() []CareerRow {
	return append([]CareerRow(nil), s.Careers...)
}

func (s *Seed) courseRows() []CourseRow {
	return append([]CourseRow(nil), s.Courses...)
}

// selectionRowFrom validates a selection and converts it to its table row.
func selectionRowFrom(sel *models.SubjectSelection) (SelectionRow, error) {
	if verr := validation.ValidateStruct(sel); verr != nil {
		return SelectionRow{}, verr
	}
	joined := JoinSubjects(ParseSubjects(JoinSubjects(sel.SelectedSubjects)))
	return SelectionRow{Username: sel.Username, SelectedSubjects: &joined}, nil
}

// UnmarshalYAML accepts numeric ids in seed files.
func (f *FlexString) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar id", n.Line)
	}
	if n.Tag == "!!null" {
		*f = ""
		return nil
	}
	*f = FlexString(n.Value)
	return nil
}
