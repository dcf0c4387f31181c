// Package validation provides Laravel-compatible input validation for flat
// and nested form values.
//
// # Flat validation
//
// Rules are expressed as pipe-separated strings on a map of field names:
//
//	v := validation.Make(map[string]string{
//	    "email": "alice@example.com",
//	}, validation.Rules{
//	    "email": "required|email",
//	})
//
//	if v.Fails() {
//	    // v.Errors() returns *Errors with Bag map[string][]string
//	    // JSON: {"errors": {"field": ["message1", "message2"]}}
//	}
//
// # Nested validation
//
// MakeSchema validates nested form values (map[string]any). Rule keys may
// use dots and "*" wildcards, and failures carry structured paths:
//
//	s := validation.MakeSchema(body, validation.Rules{
//	    "users.*.name": "required|min:2",
//	})
//	em := s.ErrorMap() // fields keyed "users[0].name", "users[1].name", ...
//
// # Error map
//
// An ErrorMap is the structured result of one validation attempt. Field
// entries are keyed by normalized path: object segments render as ".name",
// array-index segments as "[n]", with no leading dot on the first segment.
// Whether a segment is an array index is decided by the runtime shape of
// the validated data at that depth (see NormalizePath). Issues with an
// empty path are form-level and fill the onSubmit.form slot instead.
//
// Actions return the Result envelope:
//
//	{"success": false, "errorMap": {"onSubmit": {"form": "...", "fields": {"age": [{"message": "..."}]}}}}
//
// # Available rules
//
// String rules:
//   - required — field must be present and non-empty
//   - string   — passes (all form values arrive as strings)
//   - min:n    — minimum n UTF-8 characters
//   - max:n    — maximum n UTF-8 characters
//   - size:n   — exactly n UTF-8 characters
//   - between:min,max — length between min and max (inclusive)
//   - alpha / alpha_num / alpha_dash
//   - regex:pattern
//
// Format rules:
//   - email — valid RFC 5322 email address
//   - url   — must start with http:// or https://
//   - uuid  — canonical UUID string
//
// Numeric rules:
//   - numeric / integer / boolean
//   - gt:n / gte:n / lt:n / lte:n
//
// Set rules:
//   - in:a,b,c / not_in:a,b,c
//
// Relationship rules:
//   - confirmed — data[field+"_confirmation"] must match
//   - same:other / different:other
//
// Modifiers:
//   - nullable  — allows empty values through
//   - sometimes — skip remaining rules when the field is absent
package validation
