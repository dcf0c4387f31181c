package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Keyer is implemented by path segments that carry their key in a wrapper
// object rather than being the raw key itself. Some schema engines emit
// segments shaped like {key: "name"}; plain strings and ints are the common
// case.
type Keyer interface {
	Key() any
}

// containerKind classifies the runtime shape of the value being descended
// into. The kind of the *current* container decides how the next segment is
// rendered: array containers render numeric segments as "[n]", everything
// else renders as ".name".
type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

// NormalizePath converts a structured issue path into the string key used by
// the form layer for field identification.
//
//	NormalizePath(value, []any{"user", "name"})      // "user.name"
//	NormalizePath(value, []any{"users", 0, "name"})  // "users[0].name"
//
// The walk descends value in lock-step with the segments: the same segment
// can mean an object key or an array index depending on what the data looks
// like at that depth, so the decision is driven by the runtime shape of the
// container, not the segment's own type. A nil or absent intermediate value
// degrades to "not an array" and the walk continues.
//
// An empty path returns "": such issues are form-level, not field-level.
func NormalizePath(value any, path []any) string {
	var b strings.Builder
	current := value

	for _, seg := range path {
		key := segmentKey(seg)

		if idx, numeric := asIndex(key); numeric && kindOf(current) == kindArray {
			b.WriteString("[")
			b.WriteString(strconv.Itoa(idx))
			b.WriteString("]")
			current = elementAt(current, idx)
			continue
		}

		name := keyName(key)
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(name)
		current = descend(current, name)
	}

	return b.String()
}

// segmentKey unwraps a Keyer segment, otherwise returns the segment itself.
func segmentKey(seg any) any {
	if k, ok := seg.(Keyer); ok {
		return k.Key()
	}
	return seg
}

// asIndex reports whether key can serve as an array index.
// Plain ints, integral floats (JSON numbers) and digit-only strings qualify.
func asIndex(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, k >= 0
	case int64:
		return int(k), k >= 0
	case float64:
		if k == float64(int(k)) && k >= 0 {
			return int(k), true
		}
	case string:
		if i, err := strconv.Atoi(k); err == nil && i >= 0 {
			return i, true
		}
	}
	return 0, false
}

func keyName(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}

// kindOf reports the container kind of v. Anything that is not a slice or
// array — including nil — is treated as an object.
func kindOf(v any) containerKind {
	if v == nil {
		return kindObject
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return kindArray
	default:
		return kindObject
	}
}

// elementAt returns the idx'th element of an array-like value, or nil when
// out of range.
func elementAt(v any, idx int) any {
	rv := reflect.ValueOf(v)
	if idx < 0 || idx >= rv.Len() {
		return nil
	}
	return rv.Index(idx).Interface()
}

// descend follows an object key into maps and structs. Unknown keys and
// non-container values yield nil, which downstream checks treat as
// "not an array".
func descend(v any, name string) any {
	if v == nil {
		return nil
	}
	switch c := v.(type) {
	case map[string]any:
		return c[name]
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		mv := rv.MapIndex(reflect.ValueOf(name))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return descend(rv.Elem().Interface(), name)
	case reflect.Struct:
		fv := rv.FieldByName(name)
		if !fv.IsValid() {
			return nil
		}
		return fv.Interface()
	default:
		return nil
	}
}
