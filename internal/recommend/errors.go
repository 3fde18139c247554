// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import "errors"

// Reasons carried by DataError. Match them with errors.Is.
var (
	ErrNoCatalog       = errors.New("career catalog is empty")
	ErrNoSelection     = errors.New("user has no selected subjects")
	ErrNoThinkingStyle = errors.New("user has no thinking style")
	ErrDegenerateGraph = errors.New("no career lists any prerequisite subject")
)

// ErrNoStrategy is carried by a ComputationError when the engine has no
// scoring strategy installed.
var ErrNoStrategy = errors.New("no scoring strategy configured")

// DataError reports missing or empty required input.
type DataError struct {
	Op  string
	Err error
}

func (e *DataError) Error() string {
	return "recommend: " + e.Op + ": " + e.Err.Error()
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// DegenerateGraphError reports a catalog from which no subject relay nodes
// can be built. It unwraps to its DataError, so errors.As with *DataError
// matches it too.
type DegenerateGraphError struct {
	DataError
	Careers int
}

func (e *DegenerateGraphError) Unwrap() error {
	return &e.DataError
}

func newDegenerateGraphError(careers int) *DegenerateGraphError {
	return &DegenerateGraphError{
		DataError: DataError{Op: "build graph", Err: ErrDegenerateGraph},
		Careers:   careers,
	}
}

// ComputationError reports a numeric failure inside propagation or scoring.
type ComputationError struct {
	Op  string
	Err error
}

func (e *ComputationError) Error() string {
	return "recommend: " + e.Op + ": " + e.Err.Error()
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// FetchError reports a failure of the profile fetcher itself, as opposed to
// absent data.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return "recommend: " + e.Op + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsDataError reports whether err is, or wraps, a DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

// IsComputationError reports whether err is, or wraps, a ComputationError.
func IsComputationError(err error) bool {
	var ce *ComputationError
	return errors.As(err, &ce)
}

// IsFetchError reports whether err is, or wraps, a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
