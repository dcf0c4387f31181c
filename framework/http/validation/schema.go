package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Check is a custom cross-field check. It may return issues with any path,
// including the empty path for form-level failures.
type Check func(data map[string]any) []Issue

// Schema validates nested form values with the same pipe-rule syntax as the
// flat Validator. Rule keys address nested fields with dots and expand over
// arrays with "*":
//
//	s := validation.MakeSchema(body, validation.Rules{
//	    "age":          "required|integer|not_in:13",
//	    "users.*.name": "required|min:2",
//	})
//	if s.Fails() {
//	    res.FormResult(s.Result()) // 422 {"success":false,"errorMap":{...}}
//	}
//
// Validation is synchronous by construction; rule functions and checks run
// to completion before Fails returns.
type Schema struct {
	data     map[string]any
	rules    Rules
	messages map[string]string // "<rule key>.<rule>" → custom message
	checks   []Check
	issues   []Issue
	ran      bool
}

// MakeSchema creates a Schema validator over nested form values.
func MakeSchema(data map[string]any, rules Rules) *Schema {
	return &Schema{data: data, rules: rules}
}

// Messages installs custom failure messages keyed by "<rule key>.<rule>":
//
//	s.Messages(map[string]string{"age.not_in": "Nobody is ever 13."})
func (s *Schema) Messages(m map[string]string) *Schema {
	s.messages = m
	return s
}

// Check adds a custom cross-field check, run after all rule keys.
func (s *Schema) Check(fn Check) *Schema {
	s.checks = append(s.checks, fn)
	return s
}

// Fails runs validation and returns true if any issue was raised.
func (s *Schema) Fails() bool {
	s.run()
	return len(s.issues) > 0
}

// Passes runs validation and returns true if no issue was raised.
func (s *Schema) Passes() bool { return !s.Fails() }

// Issues returns the raw issues of this validation attempt.
func (s *Schema) Issues() []Issue {
	s.run()
	return s.issues
}

// ErrorMap maps the issues to their normalized path keys against the
// validated data.
func (s *Schema) ErrorMap() *ErrorMap {
	s.run()
	return MapIssues(s.data, s.issues)
}

// Result returns the wire envelope for this attempt.
func (s *Schema) Result() Result {
	if s.Fails() {
		return Failed(s.ErrorMap())
	}
	return Ok()
}

// ── Engine ───────────────────────────────────────────────────────────────────

// match is one concrete (path, value) pair a rule key expanded to.
type match struct {
	path   []any
	value  any
	parent any
}

func (s *Schema) run() {
	if s.ran {
		return
	}
	s.ran = true

	// Map iteration order is random; sort rule keys so issue order is stable.
	keys := make([]string, 0, len(s.rules))
	for k := range s.rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		s.runKey(key, s.rules[key])
	}

	for _, check := range s.checks {
		s.issues = append(s.issues, check(s.data)...)
	}
}

func (s *Schema) runKey(key, ruleStr string) {
	segments := strings.Split(key, ".")
	label := fieldLabel(segments)

	for _, m := range expand(s.data, segments) {
		// Containers only answer to required (presence means non-empty);
		// string rules apply to scalar leaves.
		if isContainer(m.value) {
			if strings.Contains(ruleStr, "required") && containerLen(m.value) == 0 {
				s.addIssue(m, key, "required", fmt.Sprintf("The %s field is required.", label))
			}
			continue
		}

		peer := func(name string) (string, bool) {
			sibling := descend(m.parent, name)
			if sibling == nil {
				return "", false
			}
			return scalarize(sibling), true
		}
		custom := func(rule string) string {
			return s.messages[key+"."+rule]
		}

		for _, msg := range runPipeline(label, scalarize(m.value), ruleStr, peer, custom) {
			s.issues = append(s.issues, Issue{Path: m.path, Message: msg})
		}
	}
}

func (s *Schema) addIssue(m match, key, rule, msg string) {
	if override := s.messages[key+"."+rule]; override != "" {
		msg = override
	}
	s.issues = append(s.issues, Issue{Path: m.path, Message: msg})
}

// expand walks data along the rule key segments. "*" fans out over array
// elements (absent or non-array values expand to nothing, like Laravel's
// wildcard rules); plain segments always produce a match, with a nil value
// when the data is missing, so "required" can fail on absent fields.
func expand(data map[string]any, segments []string) []match {
	cur := []match{{path: nil, value: any(data), parent: nil}}

	for _, seg := range segments {
		next := make([]match, 0, len(cur))
		for _, m := range cur {
			if seg == "*" {
				if kindOf(m.value) != kindArray {
					continue
				}
				rv := reflect.ValueOf(m.value)
				for i := 0; i < rv.Len(); i++ {
					next = append(next, match{
						path:   appendSeg(m.path, i),
						value:  rv.Index(i).Interface(),
						parent: m.value,
					})
				}
				continue
			}
			next = append(next, match{
				path:   appendSeg(m.path, seg),
				value:  descend(m.value, seg),
				parent: m.value,
			})
		}
		cur = next
	}

	return cur
}

// appendSeg copies the path to avoid aliasing between sibling matches.
func appendSeg(path []any, seg any) []any {
	out := make([]any, 0, len(path)+1)
	out = append(out, path...)
	return append(out, seg)
}

// fieldLabel is the last named segment of a rule key — "users.*.name" → "name".
func fieldLabel(segments []string) string {
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "*" {
			return segments[i]
		}
	}
	return strings.Join(segments, ".")
}

// scalarize renders a leaf value the way a form field would post it.
func scalarize(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func isContainer(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

func containerLen(v any) int {
	return reflect.ValueOf(v).Len()
}
