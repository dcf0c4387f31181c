// Package forms is the validation playground: it mirrors, server-side, the
// state a browser form library keeps per field, and reconciles it with the
// ErrorMap an action returns after a round trip.
package forms

import (
	"sort"

	"github.com/km-arc/go-saas-starter/framework/http/validation"
)

// State is the transient per-form state: which fields were touched, what the
// client-side validation pass said, and the last server ErrorMap applied.
type State struct {
	touched map[string]bool
	client  map[string][]string
	server  *validation.ErrorMap
}

// NewState creates an empty form state.
func NewState() *State {
	return &State{
		touched: make(map[string]bool),
		client:  make(map[string][]string),
	}
}

// Touch marks a field as visited (blur/change).
func (s *State) Touch(field string) {
	s.touched[field] = true
}

// Touched reports whether the field was visited.
func (s *State) Touched(field string) bool {
	return s.touched[field]
}

// SetClientErrors replaces the client-side channel for one field. An empty
// slice clears it (the field validated clean).
func (s *State) SetClientErrors(field string, msgs []string) {
	if len(msgs) == 0 {
		delete(s.client, field)
		return
	}
	s.client[field] = append([]string(nil), msgs...)
}

// ApplyErrorMap installs a server ErrorMap. A new map fully replaces the
// prior one — nothing appends — so re-applying the identical map is
// idempotent. Passing nil clears the server channel (the request succeeded
// or is still in flight).
func (s *State) ApplyErrorMap(em *validation.ErrorMap) {
	s.server = em
}

// FieldErrors returns the messages displayed for a field: the server map
// overlays the client channel when it has an entry for the field.
func (s *State) FieldErrors(field string) []string {
	if msgs := s.server.FieldMessages(field); len(msgs) > 0 {
		return msgs
	}
	return s.client[field]
}

// FormError returns the form-wide message, if any.
func (s *State) FormError() string {
	if s.server == nil {
		return ""
	}
	return s.server.OnSubmit.Form
}

// FieldInvalid reports whether the field should render as invalid. Both
// channels count: a field the server rejected is invalid even if the client
// never flagged it locally.
func (s *State) FieldInvalid(field string) bool {
	if len(s.client[field]) > 0 {
		return true
	}
	return len(s.server.FieldMessages(field)) > 0
}

// Displayed returns a snapshot of every field currently showing errors,
// sorted by field path for stable rendering.
func (s *State) Displayed() map[string][]string {
	out := make(map[string][]string)
	for field, msgs := range s.client {
		out[field] = append([]string(nil), msgs...)
	}
	if s.server != nil {
		for field := range s.server.OnSubmit.Fields {
			out[field] = append([]string(nil), s.server.FieldMessages(field)...)
		}
	}
	return out
}

// Fields returns the sorted field paths currently showing errors.
func (s *State) Fields() []string {
	displayed := s.Displayed()
	fields := make([]string, 0, len(displayed))
	for f := range displayed {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
