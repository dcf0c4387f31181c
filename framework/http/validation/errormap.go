package validation

import "strings"

// ── Issues ───────────────────────────────────────────────────────────────────

// Issue is one validation failure. Path locates it inside the validated
// value: an ordered sequence of object keys and array indexes. An empty Path
// marks a form-level failure not attributable to a single field.
type Issue struct {
	Path    []any
	Message string
}

// ── Wire shape ───────────────────────────────────────────────────────────────

// FieldError is a single per-field message as sent to the client.
type FieldError struct {
	Message string `json:"message"`
}

// Submission carries the errors of one validation attempt: a form-level
// message slot plus per-field entries keyed by normalized path.
type Submission struct {
	Form   string                  `json:"form,omitempty"`
	Fields map[string][]FieldError `json:"fields"`
}

// ErrorMap is the structured validation result an action returns to its
// loader/UI. It is constructed fresh per validation attempt and never
// mutated after construction.
type ErrorMap struct {
	OnSubmit Submission `json:"onSubmit"`
}

// Result is the action wire envelope:
//
//	{"success": false, "errorMap": {"onSubmit": {"form": "...", "fields": {"age": [{"message": "..."}]}}}}
type Result struct {
	Success  bool      `json:"success"`
	ErrorMap *ErrorMap `json:"errorMap,omitempty"`
}

// Ok is the success envelope.
func Ok() Result { return Result{Success: true} }

// Failed wraps an ErrorMap in a failure envelope.
func Failed(em *ErrorMap) Result { return Result{Success: false, ErrorMap: em} }

// ── Construction ─────────────────────────────────────────────────────────────

// MapIssues builds an ErrorMap from issues raised against value.
//
// Every issue with a non-empty path lands under exactly one field entry,
// keyed by its normalized path. Issues with an empty path are form-level;
// multiple form-level messages are joined with a single space so none is
// dropped.
func MapIssues(value any, issues []Issue) *ErrorMap {
	em := &ErrorMap{OnSubmit: Submission{Fields: make(map[string][]FieldError)}}

	var formMessages []string
	for _, issue := range issues {
		if len(issue.Path) == 0 {
			formMessages = append(formMessages, issue.Message)
			continue
		}
		key := NormalizePath(value, issue.Path)
		em.OnSubmit.Fields[key] = append(em.OnSubmit.Fields[key], FieldError{Message: issue.Message})
	}
	em.OnSubmit.Form = strings.Join(formMessages, " ")

	return em
}

// Empty reports whether the map carries no errors at all.
func (em *ErrorMap) Empty() bool {
	return em == nil || (em.OnSubmit.Form == "" && len(em.OnSubmit.Fields) == 0)
}

// FieldMessages returns the messages recorded for a normalized path key.
func (em *ErrorMap) FieldMessages(path string) []string {
	if em == nil {
		return nil
	}
	entries := em.OnSubmit.Fields[path]
	msgs := make([]string, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, e.Message)
	}
	return msgs
}
