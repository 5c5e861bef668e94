package metadata

import (
	"go/token"
	"go/types"
	"sort"
)

// Member is one declared field of an analyzed struct type, together with the
// recognized annotations found on it. Members are read-only once built; the
// field position serves as the stable identity for diagnostics.
type Member struct {
	Name        string
	Pos         token.Pos
	IsEnum      bool
	EnumValues  []string // constant names in declaration order; nil unless IsEnum
	Annotations []Annotation
}

// ReadStruct returns the fields of st in declaration order, each with the
// recognized annotations from its tag. Fields without recognized annotations
// are still returned (with an empty annotation list) so callers see the full
// member set. pkg is the package the struct is declared in; it is only used
// as a fallback scope when a field's type has no owning package.
func ReadStruct(st *types.Struct, pkg *types.Package) []Member {
	members := make([]Member, 0, st.NumFields())
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		m := Member{
			Name:        field.Name(),
			Pos:         field.Pos(),
			Annotations: ParseTag(st.Tag(i)),
		}
		if values, ok := enumValues(field.Type(), pkg); ok {
			m.IsEnum = true
			m.EnumValues = values
		}
		members = append(members, m)
	}
	return members
}

// HasAnnotations reports whether any member carries at least one recognized
// annotation. Types where this is false are skipped entirely.
func HasAnnotations(members []Member) bool {
	for i := range members {
		if len(members[i].Annotations) > 0 {
			return true
		}
	}
	return false
}

// enumValues resolves a field type to its enum constant names, if the type is
// one: a defined type with a basic underlying type that has at least one
// package-level constant of exactly that type. Constants are returned in
// declaration order, recovered from source positions — scope name order is
// alphabetical and would lose it.
func enumValues(t types.Type, fallback *types.Package) ([]string, bool) {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil, false
	}
	if _, ok := named.Underlying().(*types.Basic); !ok {
		return nil, false
	}

	pkg := named.Obj().Pkg()
	if pkg == nil {
		pkg = fallback
	}
	if pkg == nil {
		return nil, false
	}

	var consts []*types.Const
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}
		if types.Identical(c.Type(), named) {
			consts = append(consts, c)
		}
	}
	if len(consts) == 0 {
		return nil, false
	}

	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })

	values := make([]string, len(consts))
	for i, c := range consts {
		values[i] = c.Name()
	}
	return values, true
}
