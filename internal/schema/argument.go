// Package schema reconstructs the argument schema declared by an annotated
// struct type and validates it. Build classifies members into argument
// groups; Validate checks the per-group uniqueness invariants. Everything is
// allocated fresh per analyzed type and never shared.
package schema

import (
	"strings"

	"github.com/argcheck/argcheck/internal/metadata"
)

// Argument is one classified schema argument. Exactly one of the two concrete
// forms applies to a member: a member declared as both is a reported
// conflict, not a merge.
type Argument interface {
	// ArgName is the user-facing argument name, compared case-insensitively.
	ArgName() string
	// Source is the member the argument was built from. Used for diagnostic
	// locations only.
	Source() *metadata.Member
}

// RequiredArgument is a positional argument.
type RequiredArgument struct {
	Position     int
	Name         string
	Description  string
	IsCollection bool
	Member       *metadata.Member
}

func (a *RequiredArgument) ArgName() string          { return a.Name }
func (a *RequiredArgument) Source() *metadata.Member { return a.Member }

// OptionalArgument is a named argument with a default value literal.
type OptionalArgument struct {
	Default      string
	Name         string
	Description  string
	IsCollection bool
	Member       *metadata.Member
}

func (a *OptionalArgument) ArgName() string          { return a.Name }
func (a *OptionalArgument) Source() *metadata.Member { return a.Member }

// ActionArgument wraps the member that selects the active group. Groups
// holds the legal group names in declaration order; it is empty when the
// member's type is not an enum.
type ActionArgument struct {
	Member *metadata.Member
	Groups []string
}

// DefaultGroup is the key of the group used when no action argument exists.
const DefaultGroup = ""

// GroupMap maps group names to ordered argument lists. Names compare
// case-insensitively; the first spelling seen is kept as the canonical one.
// Iteration order is insertion order.
type GroupMap struct {
	names []string
	index map[string]int
	args  [][]Argument
}

func NewGroupMap() *GroupMap {
	return &GroupMap{index: make(map[string]int)}
}

func groupKey(name string) string { return strings.ToLower(name) }

// Ensure adds an empty group under name if no group matches it yet.
func (g *GroupMap) Ensure(name string) {
	key := groupKey(name)
	if _, ok := g.index[key]; ok {
		return
	}
	g.index[key] = len(g.names)
	g.names = append(g.names, name)
	g.args = append(g.args, nil)
}

// Has reports whether a group matching name exists.
func (g *GroupMap) Has(name string) bool {
	_, ok := g.index[groupKey(name)]
	return ok
}

// Append adds arg to the group matching name, creating the group on demand.
func (g *GroupMap) Append(name string, arg Argument) {
	g.Ensure(name)
	i := g.index[groupKey(name)]
	g.args[i] = append(g.args[i], arg)
}

// AppendAll adds arg to every existing group.
func (g *GroupMap) AppendAll(arg Argument) {
	for i := range g.args {
		g.args[i] = append(g.args[i], arg)
	}
}

// Names returns the canonical group names in insertion order.
func (g *GroupMap) Names() []string { return g.names }

// Args returns the arguments of the group matching name, in append order.
func (g *GroupMap) Args(name string) []Argument {
	i, ok := g.index[groupKey(name)]
	if !ok {
		return nil
	}
	return g.args[i]
}

// Len is the number of groups.
func (g *GroupMap) Len() int { return len(g.names) }

// Schema is the built schema of one analyzed type.
type Schema struct {
	Action *ActionArgument // nil when no member carries an action marker
	Groups *GroupMap
}
