// Package diag defines the diagnostic rules the schema pipeline can report
// and the sink abstraction it reports them through. The pipeline never fails:
// every inconsistency becomes a Diagnostic and analysis continues.
package diag

import (
	"fmt"
	"go/token"
	"sync"
)

// Rule identifies one schema inconsistency.
type Rule string

const (
	// RuleDuplicateActionArgument: more than one field carries an action
	// marker; the first one found stays authoritative.
	RuleDuplicateActionArgument Rule = "DuplicateActionArgument"
	// RuleActionWithoutArgumentsInGroup: an action argument exists but the
	// schema ended up with no groups at all.
	RuleActionWithoutArgumentsInGroup Rule = "ActionWithoutArgumentsInGroup"
	// RuleConflictingPropertyDeclaration: a field is marked both required and
	// optional; the first usable marker wins.
	RuleConflictingPropertyDeclaration Rule = "ConflictingPropertyDeclaration"
	// RuleCannotSpecifyAGroupForANonProperty: a field carries a group or
	// common marker without being declared as an argument.
	RuleCannotSpecifyAGroupForANonProperty Rule = "CannotSpecifyAGroupForANonProperty"
	// RuleCommonArgumentAttributeUsedWhenActionArgumentNotEnum: a common
	// argument has no group universe to span because the action field's type
	// is not an enum.
	RuleCommonArgumentAttributeUsedWhenActionArgumentNotEnum Rule = "CommonArgumentAttributeUsedWhenActionArgumentNotEnum"
	// RuleDuplicateArgumentName: two arguments in one group share a name
	// (case-insensitive). Detail carries the name.
	RuleDuplicateArgumentName Rule = "DuplicateArgumentName"
	// RuleDuplicatePositionalArgumentPosition: two required arguments in one
	// group share a position. Detail carries the position.
	RuleDuplicatePositionalArgumentPosition Rule = "DuplicatePositionalArgumentPosition"
	// RuleUnknownArgumentGroup: a group marker names a group the action enum
	// does not declare. Reported only in strict-groups mode; the group is
	// still created. Detail carries the group name.
	RuleUnknownArgumentGroup Rule = "UnknownArgumentGroup"
)

// Diagnostic is one reported schema inconsistency. Member is the name of the
// field the diagnostic is attached to and Pos its declaration position.
// Detail is the per-rule payload (duplicated name, duplicated position,
// undeclared group name) and is empty for rules without one.
type Diagnostic struct {
	Rule   Rule
	Pos    token.Pos
	Member string
	Detail string
}

// Message renders the human-readable diagnostic text.
func (d Diagnostic) Message() string {
	switch d.Rule {
	case RuleDuplicateActionArgument:
		return fmt.Sprintf("%s is marked as an action argument, but an action argument was already declared", d.Member)
	case RuleActionWithoutArgumentsInGroup:
		return fmt.Sprintf("action argument %s produces no argument groups", d.Member)
	case RuleConflictingPropertyDeclaration:
		return fmt.Sprintf("%s is declared both required and optional; keeping the first declaration", d.Member)
	case RuleCannotSpecifyAGroupForANonProperty:
		return fmt.Sprintf("%s carries a group or common marker but is not declared as an argument", d.Member)
	case RuleCommonArgumentAttributeUsedWhenActionArgumentNotEnum:
		return fmt.Sprintf("common argument %s has no effect: the action argument type is not an enum", d.Member)
	case RuleDuplicateArgumentName:
		return fmt.Sprintf("duplicate argument name %q", d.Detail)
	case RuleDuplicatePositionalArgumentPosition:
		return fmt.Sprintf("duplicate positional argument position %s", d.Detail)
	case RuleUnknownArgumentGroup:
		return fmt.Sprintf("argument group %q is not declared by the action enum", d.Detail)
	}
	return string(d.Rule)
}

// Sink receives diagnostics as they are found. Implementations must tolerate
// concurrent reporting from independent type analyses.
type Sink interface {
	Report(d Diagnostic)
}

// Collector is an in-memory Sink.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns the reported diagnostics in report order.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}
