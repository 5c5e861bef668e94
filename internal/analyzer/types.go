package analyzer

import (
	"go/token"

	"github.com/argcheck/argcheck/internal/diag"
)

// Finding is one schema diagnostic resolved to a source location.
type Finding struct {
	Rule     diag.Rule
	Type     string // struct type the schema belongs to
	PkgPath  string
	Member   string // field the diagnostic is attached to
	Detail   string // per-rule payload, empty when the rule has none
	Message  string
	Position token.Position

	pos token.Pos // unresolved, before the owning package's fset is known
}

// Result holds the complete analysis output.
type Result struct {
	Findings      []Finding
	TypesAnalyzed int
	TypesSkipped  int
}

// AnalyzeOptions controls analysis behavior.
type AnalyzeOptions struct {
	Filter            string   // package path prefix filter
	Rules             []string // rule ID allowlist; empty keeps all
	IncludeUnexported bool
	StrictGroups      bool
}
