// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package models defines the data structures shared by the CareerPath packages.

Key types:

  - ThinkingStyle: five non-negative weights over concrete, logical,
    theoretical, practical and intuitive thinking
  - UserProfile: a user's selected subjects and thinking style
  - Career: a catalog entry with prerequisite subjects and its own style
  - Recommendation: one ranked career returned to the caller
  - Course, SubjectSelection: course listing and the selection a user saves

The profile package converts store rows into these types; the recommend
package only ever sees validated values.
*/
package models
