// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/validation"
)

// maxSelectionBody bounds the selection request body.
const maxSelectionBody = 64 << 10

// SaveSelection handles POST /api/v1/selections. The body is
// {"username": "...", "selected_subjects": ["Math", ...]}; the stored row
// replaces any earlier selection of the same user.
func (h *Handler) SaveSelection(w http.ResponseWriter, r *http.Request) {
	store, ok := h.courseStore(w, r)
	if !ok {
		return
	}

	var sel models.SubjectSelection
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSelectionBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sel); err != nil {
		NewResponseWriter(w, r).BadRequest("invalid JSON body")
		return
	}

	sel.Username = strings.TrimSpace(sel.Username)
	for i := range sel.SelectedSubjects {
		sel.SelectedSubjects[i] = strings.TrimSpace(sel.SelectedSubjects[i])
	}
	if verr := validation.ValidateStruct(&sel); verr != nil {
		h.fail(w, r, verr)
		return
	}

	if err := store.SaveSelection(r.Context(), &sel); err != nil {
		h.fail(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(map[string]interface{}{
		"username":          sel.Username,
		"selected_subjects": sel.SelectedSubjects,
	})
}
