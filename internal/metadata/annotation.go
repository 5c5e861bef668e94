package metadata

import (
	"reflect"
	"strings"
)

// Kind identifies one of the recognized argument annotations.
type Kind int

const (
	// KindRequired marks a positional argument: required:"<position>,<name>,<description>[,<collection>]".
	KindRequired Kind = iota
	// KindOptional marks a named argument: optional:"<default>,<name>,<description>[,<collection>]".
	KindOptional
	// KindCommon marks an argument shared by every group: common:"".
	KindCommon
	// KindGroup scopes an argument to named groups: group:"<name>[,<name>...]".
	KindGroup
	// KindAction marks the field that selects the active group: action:"".
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindOptional:
		return "optional"
	case KindCommon:
		return "common"
	case KindGroup:
		return "group"
	case KindAction:
		return "action"
	}
	return "unknown"
}

// Annotation is one recognized tag annotation on a struct field, with its raw
// positional parameters. Parameters are not interpreted here; the schema
// builder decides whether they form a usable marker.
type Annotation struct {
	Kind   Kind
	Params []string
}

// tagKeys is scanned in a fixed order so the annotation list for a member is
// deterministic regardless of tag spelling order.
var tagKeys = []struct {
	key  string
	kind Kind
}{
	{"action", KindAction},
	{"required", KindRequired},
	{"optional", KindOptional},
	{"common", KindCommon},
	{"group", KindGroup},
}

// ParseTag extracts the recognized argument annotations from a struct-tag
// string. Tag keys outside the recognized set are ignored entirely. ParseTag
// is pure lookup: it never fails and performs no validation beyond splitting
// comma-separated parameters.
func ParseTag(tag string) []Annotation {
	st := reflect.StructTag(tag)

	var anns []Annotation
	for _, tk := range tagKeys {
		value, ok := st.Lookup(tk.key)
		if !ok {
			continue
		}
		anns = append(anns, Annotation{Kind: tk.kind, Params: splitParams(value)})
	}
	return anns
}

// splitParams splits a tag value into positional parameters. An empty value
// yields no parameters (presence-only markers like action:"" and common:"").
func splitParams(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
