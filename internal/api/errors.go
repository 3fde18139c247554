// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/careerpath/internal/profile"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/validation"
)

// ErrMissingUsername is returned when the username query parameter is absent.
var ErrMissingUsername = errors.New("username query parameter is required")

// apiFailure is the HTTP rendering of an error.
type apiFailure struct {
	status  int
	code    string
	message string
	details interface{}
}

// classify maps an error to its HTTP status. Data errors are checked first:
// a malformed user row surfaces as a FetchError that also wraps a DataError,
// and it is the user's data that is missing, not the store.
func classify(err error) apiFailure {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		return apiFailure{http.StatusBadRequest, ErrCodeValidationFailed, apiErr.Message, apiErr.Details}
	case errors.Is(err, ErrMissingUsername):
		return apiFailure{status: http.StatusBadRequest, code: ErrCodeBadRequest, message: err.Error()}
	case recommend.IsDataError(err):
		return apiFailure{status: http.StatusNotFound, code: ErrCodeNotFound, message: dataMessage(err)}
	case errors.Is(err, context.DeadlineExceeded):
		return apiFailure{status: http.StatusGatewayTimeout, code: ErrCodeTimeout, message: "request timed out"}
	case errors.Is(err, profile.ErrUnavailable), recommend.IsFetchError(err), errors.Is(err, context.Canceled):
		return apiFailure{status: http.StatusServiceUnavailable, code: ErrCodeServiceUnavailable, message: "profile store unavailable"}
	case recommend.IsComputationError(err):
		return apiFailure{status: http.StatusInternalServerError, code: ErrCodeComputationFailed, message: "failed to compute recommendations"}
	default:
		return apiFailure{status: http.StatusInternalServerError, code: ErrCodeInternalError, message: "internal error"}
	}
}

// dataMessage names the missing input without echoing store internals.
func dataMessage(err error) string {
	switch {
	case errors.Is(err, recommend.ErrNoSelection):
		return "no subject selection found for user"
	case errors.Is(err, recommend.ErrNoThinkingStyle):
		return "no thinking style found for user"
	case errors.Is(err, recommend.ErrNoCatalog):
		return "career catalog is empty"
	case errors.Is(err, recommend.ErrDegenerateGraph):
		return "no career lists any prerequisite subject"
	case errors.Is(err, profile.ErrMalformedRow):
		return "stored profile data is malformed"
	default:
		return "no recommendations found for the user"
	}
}

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
