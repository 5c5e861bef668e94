package schema

import (
	"strconv"

	"github.com/argcheck/argcheck/internal/diag"
	"github.com/argcheck/argcheck/internal/metadata"
)

// minMarkerParams is the minimum parameter count for a required or optional
// marker to be usable. Markers with fewer parameters are treated as absent.
const minMarkerParams = 3

// BuildOptions controls builder strictness.
type BuildOptions struct {
	// StrictGroups reports a group marker naming a group the action enum does
	// not declare. The group is still created either way.
	StrictGroups bool
}

// Build constructs the argument schema for one type's members, reporting
// every inconsistency it finds to sink. Build never fails: conflicting
// markers keep the first usable one, unknown group names create groups on
// demand, and a non-enum action type simply yields an empty group universe.
func Build(members []metadata.Member, opts BuildOptions, sink diag.Sink) *Schema {
	s := &Schema{Groups: NewGroupMap()}

	// Phase 1: fix the group-name universe before classifying anything, so a
	// common argument seen early can never miss a group seeded later.
	s.Action = findAction(members, sink)
	if s.Action == nil {
		s.Groups.Ensure(DefaultGroup)
	} else {
		for _, name := range s.Action.Groups {
			s.Groups.Ensure(name)
		}
	}

	// Phase 2: classify every annotated member against the frozen universe.
	for i := range members {
		m := &members[i]
		if len(m.Annotations) == 0 || hasKind(m, metadata.KindAction) {
			continue
		}
		classify(m, s, opts, sink)
	}

	if s.Action != nil && s.Groups.Len() == 0 {
		sink.Report(diag.Diagnostic{
			Rule:   diag.RuleActionWithoutArgumentsInGroup,
			Pos:    s.Action.Member.Pos,
			Member: s.Action.Member.Name,
		})
	}

	return s
}

// findAction locates the action member. The first one found is authoritative;
// every later one is reported and otherwise ignored.
func findAction(members []metadata.Member, sink diag.Sink) *ActionArgument {
	var action *ActionArgument
	for i := range members {
		m := &members[i]
		if !hasKind(m, metadata.KindAction) {
			continue
		}
		if action != nil {
			sink.Report(diag.Diagnostic{
				Rule:   diag.RuleDuplicateActionArgument,
				Pos:    m.Pos,
				Member: m.Name,
			})
			continue
		}
		action = &ActionArgument{Member: m}
		if m.IsEnum {
			action.Groups = m.EnumValues
		}
	}
	return action
}

// classify resolves one member's annotation set into an Argument and places
// it in the group map, or reports why it cannot.
func classify(m *metadata.Member, s *Schema, opts BuildOptions, sink diag.Sink) {
	var (
		arg        Argument
		hasCommon  bool
		hasGroup   bool
		groupNames []string
	)

	for _, ann := range m.Annotations {
		switch ann.Kind {
		case metadata.KindRequired, metadata.KindOptional:
			cand := buildArgument(ann, m)
			if cand == nil {
				continue // malformed marker, treated as absent
			}
			if arg != nil {
				sink.Report(diag.Diagnostic{
					Rule:   diag.RuleConflictingPropertyDeclaration,
					Pos:    m.Pos,
					Member: m.Name,
				})
				continue
			}
			arg = cand
		case metadata.KindCommon:
			hasCommon = true
		case metadata.KindGroup:
			hasGroup = true
			for _, name := range ann.Params {
				if name != "" {
					groupNames = append(groupNames, name)
				}
			}
		}
	}

	switch {
	case arg == nil && (hasCommon || hasGroup):
		sink.Report(diag.Diagnostic{
			Rule:   diag.RuleCannotSpecifyAGroupForANonProperty,
			Pos:    m.Pos,
			Member: m.Name,
		})

	case arg == nil:
		// Annotated but with no usable marker: not part of the schema.

	case hasCommon:
		// Common wins over any group markers on the same member.
		s.Groups.AppendAll(arg)
		if s.Action != nil && !s.Action.Member.IsEnum {
			sink.Report(diag.Diagnostic{
				Rule:   diag.RuleCommonArgumentAttributeUsedWhenActionArgumentNotEnum,
				Pos:    m.Pos,
				Member: m.Name,
			})
		}

	case len(groupNames) > 0:
		for _, name := range groupNames {
			if opts.StrictGroups && !s.Groups.Has(name) {
				sink.Report(diag.Diagnostic{
					Rule:   diag.RuleUnknownArgumentGroup,
					Pos:    m.Pos,
					Member: m.Name,
					Detail: name,
				})
			}
			s.Groups.Append(name, arg)
		}

	default:
		s.Groups.Append(DefaultGroup, arg)
	}
}

// buildArgument turns a required or optional marker into an Argument, or nil
// when the marker is malformed: fewer than three parameters, or a required
// position that is not an integer.
func buildArgument(ann metadata.Annotation, m *metadata.Member) Argument {
	if len(ann.Params) < minMarkerParams {
		return nil
	}
	isCollection := false
	if len(ann.Params) > minMarkerParams {
		isCollection, _ = strconv.ParseBool(ann.Params[minMarkerParams])
	}

	switch ann.Kind {
	case metadata.KindRequired:
		position, err := strconv.Atoi(ann.Params[0])
		if err != nil {
			return nil
		}
		return &RequiredArgument{
			Position:     position,
			Name:         ann.Params[1],
			Description:  ann.Params[2],
			IsCollection: isCollection,
			Member:       m,
		}
	case metadata.KindOptional:
		return &OptionalArgument{
			Default:      ann.Params[0],
			Name:         ann.Params[1],
			Description:  ann.Params[2],
			IsCollection: isCollection,
			Member:       m,
		}
	}
	return nil
}

func hasKind(m *metadata.Member, kind metadata.Kind) bool {
	for _, ann := range m.Annotations {
		if ann.Kind == kind {
			return true
		}
	}
	return false
}
