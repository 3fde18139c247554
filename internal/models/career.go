// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package models

// StyleDimensions is the width of a ThinkingStyle vector.
const StyleDimensions = 5

// Thinking style dimension indices.
const (
	Concrete = iota
	Logical
	Theoretical
	Practical
	Intuitive
)

// StyleDimensionNames lists the dimensions in vector order.
var StyleDimensionNames = [StyleDimensions]string{"concrete", "logical", "theoretical", "practical", "intuitive"}

// ThinkingStyle is a weight per thinking dimension, indexed by the constants above.
type ThinkingStyle [StyleDimensions]float64

// NewThinkingStyle builds a style from its five components in vector order.
func NewThinkingStyle(concrete, logical, theoretical, practical, intuitive float64) ThinkingStyle {
	return ThinkingStyle{concrete, logical, theoretical, practical, intuitive}
}

// Vector returns the style as a fresh slice.
func (s ThinkingStyle) Vector() []float64 {
	v := make([]float64, StyleDimensions)
	copy(v, s[:])
	return v
}

// IsZero reports whether every component is zero.
func (s ThinkingStyle) IsZero() bool {
	return s == ThinkingStyle{}
}

// UserProfile is the per-request view of one user.
type UserProfile struct {
	Username string `json:"username"`

	// SelectedSubjects is deduplicated and keeps first-seen order.
	SelectedSubjects []string `json:"selected_subjects"`

	Style ThinkingStyle `json:"thinking_style"`
}

// HasSubject reports whether the user selected subject.
func (p *UserProfile) HasSubject(subject string) bool {
	for _, s := range p.SelectedSubjects {
		if s == subject {
			return true
		}
	}
	return false
}

// SubjectSet returns the selected subjects as a set.
func (p *UserProfile) SubjectSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.SelectedSubjects))
	for _, s := range p.SelectedSubjects {
		set[s] = struct{}{}
	}
	return set
}

// Career is one catalog entry. Prerequisites keep their stored order and may
// contain duplicates; a career without style fields carries a zero Style.
type Career struct {
	ID            string        `json:"career_id"`
	Name          string        `json:"career_name"`
	Prerequisites []string      `json:"prerequisites"`
	Style         ThinkingStyle `json:"thinking_style"`

	// HasStyle is false when the source row had no style fields at all.
	HasStyle bool `json:"has_style"`
}

// DistinctPrerequisites returns the prerequisites with duplicates removed,
// keeping first-seen order.
func (c *Career) DistinctPrerequisites() []string {
	seen := make(map[string]struct{}, len(c.Prerequisites))
	out := make([]string, 0, len(c.Prerequisites))
	for _, p := range c.Prerequisites {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Recommendation is one ranked career.
type Recommendation struct {
	CareerID   string  `json:"career_id"`
	CareerName string  `json:"career_name"`
	FinalScore float64 `json:"final_score"`
}

// Course is an entry of the course listing users pick their subjects from.
type Course struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
}

// SubjectSelection is the set of subjects a user saves before asking for
// recommendations.
type SubjectSelection struct {
	Username         string   `json:"username" validate:"required,username"`
	SelectedSubjects []string `json:"selected_subjects" validate:"required,min=1,dive,subject"`
}
