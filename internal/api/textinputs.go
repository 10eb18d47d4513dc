package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-textinput/internal/entity"
	"github.com/nerrad567/gray-logic-textinput/internal/textinput"
)

// TextInputView is the JSON representation of a text input.
type TextInputView struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	ObjectID          string  `json:"object_id"`
	Icon              string  `json:"icon,omitempty"`
	Mode              string  `json:"mode"`
	State             *string `json:"state"`
	MaxLength         int     `json:"max_length"`
	DisabledByDefault bool    `json:"disabled_by_default"`
	EntityCategory    string  `json:"entity_category,omitempty"`
}

// SetStateRequest is the body of PUT /text_inputs/{id}/state.
type SetStateRequest struct {
	Value *string `json:"value"`
}

func newTextInputView(t *textinput.TextInput) TextInputView {
	v := TextInputView{
		ID:                t.ID(),
		Name:              t.Name(),
		ObjectID:          t.ObjectID(),
		Icon:              t.Icon(),
		Mode:              t.Traits.Mode().String(),
		MaxLength:         t.MaxLength(),
		DisabledByDefault: t.DisabledByDefault(),
		EntityCategory:    t.Category().String(),
	}
	if state, ok := t.State(); ok {
		v.State = &state
	}
	return v
}

// lookupTextInput resolves {id}; internal entities are not addressable.
func (s *Server) lookupTextInput(w http.ResponseWriter, r *http.Request) (*textinput.TextInput, bool) {
	id := chi.URLParam(r, "id")
	t, ok := s.entities.TextInput(id)
	if !ok || t.Internal() {
		writeNotFound(w, "text input not found: "+id)
		return nil, false
	}
	return t, true
}

// handleListTextInputs returns every non-internal text input.
func (s *Server) handleListTextInputs(w http.ResponseWriter, _ *http.Request) {
	all := s.entities.TextInputs()
	views := make([]TextInputView, 0, len(all))
	for _, t := range all {
		if t.Internal() {
			continue
		}
		views = append(views, newTextInputView(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"text_inputs": views,
		"count":       len(views),
	})
}

// handleGetTextInput returns one text input.
func (s *Server) handleGetTextInput(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookupTextInput(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newTextInputView(t))
}

// handleSetTextInputState sets a new value.
func (s *Server) handleSetTextInputState(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookupTextInput(w, r)
	if !ok {
		return
	}

	var req SetStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Value == nil {
		writeBadRequest(w, "value is required")
		return
	}

	ctx := entity.WithSource(r.Context(), entity.SourceAPI)
	if err := t.Set(ctx, *req.Value); err != nil {
		if errors.Is(err, textinput.ErrValueTooLong) {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
			return
		}
		s.logger.Error("setting text input failed", "id", t.ID(), "error", err)
		writeInternalError(w, "failed to set value")
		return
	}

	writeJSON(w, http.StatusOK, newTextInputView(t))
}

// handleTextInputHistory returns recorded values, newest first.
func (s *Server) handleTextInputHistory(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookupTextInput(w, r)
	if !ok {
		return
	}
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "history is not enabled")
		return
	}

	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	entries, err := s.history.History(r.Context(), t.ID(), limit)
	if err != nil {
		s.logger.Error("querying text input history failed", "id", t.ID(), "error", err)
		writeInternalError(w, "failed to query history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":      t.ID(),
		"history": entries,
		"count":   len(entries),
	})
}

// parseLimit reads ?limit=; absent means 0 (repository default).
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeBadRequest(w, "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}
