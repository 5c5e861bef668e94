package schema

import (
	"strconv"
	"strings"

	"github.com/argcheck/argcheck/internal/diag"
)

// Validate checks the per-group uniqueness invariants of a built schema and
// reports violations to sink. Groups are validated independently: a violation
// in one group never affects another. Within a group, arguments are checked
// in stored order; names compare case-insensitively, positions by exact
// integer equality. Names and positions are recorded even when they were
// duplicates, so a triple collision reports once per extra occurrence rather
// than cascading.
func Validate(groups *GroupMap, sink diag.Sink) {
	for _, group := range groups.Names() {
		seenNames := make(map[string]bool)
		seenPositions := make(map[int]bool)

		for _, arg := range groups.Args(group) {
			name := strings.ToLower(arg.ArgName())

			if req, ok := arg.(*RequiredArgument); ok {
				if seenPositions[req.Position] {
					sink.Report(diag.Diagnostic{
						Rule:   diag.RuleDuplicatePositionalArgumentPosition,
						Pos:    req.Member.Pos,
						Member: req.Member.Name,
						Detail: strconv.Itoa(req.Position),
					})
				}
				seenPositions[req.Position] = true
			}

			if seenNames[name] {
				sink.Report(diag.Diagnostic{
					Rule:   diag.RuleDuplicateArgumentName,
					Pos:    arg.Source().Pos,
					Member: arg.Source().Name,
					Detail: arg.ArgName(),
				})
			}
			seenNames[name] = true
		}
	}
}
