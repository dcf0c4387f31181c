package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors holds flat validation errors — mirrors Laravel's MessageBag.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules is a map of field → pipe-separated rule string. Keys may address
// nested data with dots and wildcards when used with MakeSchema:
//
//	Rules{"email": "required|email", "users.*.name": "required|min:2"}
type Rules map[string]string

// Validator validates a flat map of input values.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
}

// Make creates a new Validator — mirrors Validator::make($data, $rules).
// For nested form values use MakeSchema.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{
		data:   data,
		rules:  rules,
		errors: &Errors{},
	}
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// validate runs every field's rule pipeline against the flat data map.
func (v *Validator) validate() {
	peer := func(name string) (string, bool) {
		val, ok := v.data[name]
		return val, ok
	}
	for field, ruleStr := range v.rules {
		msgs := runPipeline(field, v.data[field], ruleStr, peer, nil)
		for _, m := range msgs {
			v.errors.add(field, m)
		}
	}
}

// ── Rule pipeline ────────────────────────────────────────────────────────────

// peerLookup resolves a sibling field's value for rules like same/different/
// confirmed. The second return reports presence.
type peerLookup func(name string) (string, bool)

// messageOverride returns a custom message for (field, rule), or "".
type messageOverride func(rule string) string

// runPipeline applies a pipe-separated rule string to one value, stopping at
// the first failure (Laravel's bail behaviour). It returns the failure
// messages, normally zero or one.
func runPipeline(label, value, ruleStr string, peer peerLookup, custom messageOverride) []string {
	var msgs []string

	for _, rule := range strings.Split(ruleStr, "|") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		// Parse rule name and optional parameter: min:3 → name=min, param=3
		name, param, _ := strings.Cut(rule, ":")

		if name == "sometimes" {
			// Skip remaining rules silently when the field is absent.
			if value == "" {
				return msgs
			}
			continue
		}
		if name == "nullable" {
			// Allows empty values through subsequent rules.
			continue
		}

		if msg := checkRule(label, value, name, param, peer); msg != "" {
			if custom != nil {
				if override := custom(name); override != "" {
					msg = override
				}
			}
			msgs = append(msgs, msg)
			break
		}
	}

	return msgs
}

// checkRule applies a single rule and returns the failure message, or ""
// when the rule passes.
func checkRule(field, value, rule, param string, peer peerLookup) string {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "string":
		// Everything coming off a form is already a string; presence only.

	case "numeric":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Sprintf("The %s must be a number.", field)
		}

	case "integer":
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Sprintf("The %s must be an integer.", field)
		}

	case "boolean":
		lower := strings.ToLower(value)
		valid := map[string]bool{"true": true, "false": true, "1": true, "0": true, "yes": true, "no": true}
		if !valid[lower] {
			return fmt.Sprintf("The %s field must be true or false.", field)
		}

	case "email":
		if _, err := mail.ParseAddress(value); err != nil {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}

	case "url":
		if !regexp.MustCompile(`^https?://`).MatchString(value) {
			return fmt.Sprintf("The %s must be a valid URL.", field)
		}

	case "uuid":
		if !uuidRe.MatchString(strings.ToLower(value)) {
			return fmt.Sprintf("The %s must be a valid UUID.", field)
		}

	case "min":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) < n {
			return fmt.Sprintf("The %s must be at least %d characters.", field, n)
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			return fmt.Sprintf("The %s may not be greater than %d characters.", field, n)
		}

	case "size":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) != n {
			return fmt.Sprintf("The %s must be %d characters.", field, n)
		}

	case "between":
		parts := strings.SplitN(param, ",", 2)
		if len(parts) != 2 {
			break
		}
		min, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
		max, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
		l := utf8.RuneCountInString(value)
		if l < min || l > max {
			return fmt.Sprintf("The %s must be between %d and %d characters.", field, min, max)
		}

	case "in":
		for _, a := range strings.Split(param, ",") {
			if strings.TrimSpace(a) == value {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)

	case "not_in":
		for _, d := range strings.Split(param, ",") {
			if strings.TrimSpace(d) == value {
				return fmt.Sprintf("The selected %s is invalid.", field)
			}
		}

	case "confirmed":
		// Expects data[field+"_confirmation"] to match
		if peer != nil {
			if conf, _ := peer(field + "_confirmation"); conf != value {
				return fmt.Sprintf("The %s confirmation does not match.", field)
			}
		}

	case "same":
		if peer != nil {
			if other, _ := peer(param); other != value {
				return fmt.Sprintf("The %s and %s must match.", field, param)
			}
		}

	case "different":
		if peer != nil {
			if other, _ := peer(param); other == value {
				return fmt.Sprintf("The %s and %s must be different.", field, param)
			}
		}

	case "alpha":
		if !regexp.MustCompile(`^[a-zA-Z]+$`).MatchString(value) {
			return fmt.Sprintf("The %s may only contain letters.", field)
		}

	case "alpha_num":
		if !regexp.MustCompile(`^[a-zA-Z0-9]+$`).MatchString(value) {
			return fmt.Sprintf("The %s may only contain letters and numbers.", field)
		}

	case "alpha_dash":
		if !regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(value) {
			return fmt.Sprintf("The %s may only contain letters, numbers, dashes and underscores.", field)
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(value) {
			return fmt.Sprintf("The %s format is invalid.", field)
		}

	case "gt":
		f, _ := strconv.ParseFloat(value, 64)
		t, _ := strconv.ParseFloat(param, 64)
		if f <= t {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}

	case "gte":
		f, _ := strconv.ParseFloat(value, 64)
		t, _ := strconv.ParseFloat(param, 64)
		if f < t {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}

	case "lt":
		f, _ := strconv.ParseFloat(value, 64)
		t, _ := strconv.ParseFloat(param, 64)
		if f >= t {
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		}

	case "lte":
		f, _ := strconv.ParseFloat(value, 64)
		t, _ := strconv.ParseFloat(param, 64)
		if f > t {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	}

	return ""
}

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
