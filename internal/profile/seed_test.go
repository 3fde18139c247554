// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package profile

import (
	"os"
	"path/filepath"
	"testing"
)

const testSeed = `
users:
  - username: alice
    selected_subjects: [Math, Physics]
    thinking_style: {concrete: 5, logical: 8, theoretical: 2, practical: 3, intuitive: 1}
  - username: nostyle
    selected_subjects: [Art]
careers:
  - career_id: 1
    career_name: Software Engineer
    prerequisites: Math, Physics
    concrete: 5
    logical: 9
    theoretical: 3
    practical: 4
    intuitive: 2
  - career_id: "2"
    career_name: Statistician
    prerequisites: Math
  - career_id: "3"
    career_name: Broken
    prerequisites: Art
    logical: -4
courses:
  - course_id: 101
    course_name: Calculus I
  - course_id: "102"
    course_name: Mechanics
`

func TestParseSeed(t *testing.T) {
	t.Parallel()

	seed, err := ParseSeed([]byte(testSeed))
	if err != nil {
		t.Fatalf("ParseSeed() error = %v", err)
	}
	if len(seed.Users) != 2 || len(seed.Careers) != 3 || len(seed.Courses) != 2 {
		t.Fatalf("seed sizes = %d/%d/%d", len(seed.Users), len(seed.Careers), len(seed.Courses))
	}
	if seed.Careers[0].CareerID != "1" {
		t.Errorf("numeric career id decoded as %q", seed.Careers[0].CareerID)
	}
	if seed.Users[1].ThinkingStyle != nil {
		t.Error("user without style got one")
	}
}

func TestParseSeedRejectsBadUsername(t *testing.T) {
	t.Parallel()

	if _, err := ParseSeed([]byte("users:\n  - username: \"\"\n")); err == nil {
		t.Fatal("ParseSeed() accepted an empty username")
	}
	if _, err := ParseSeed([]byte("users: [")); err == nil {
		t.Fatal("ParseSeed() accepted invalid YAML")
	}
}

func TestLoadSeedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(testSeed), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSeedFile(path); err != nil {
		t.Fatalf("LoadSeedFile() error = %v", err)
	}
	if _, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadSeedFile() accepted a missing file")
	}
}
