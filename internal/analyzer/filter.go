package analyzer

import (
	"strings"
	"unicode"
)

// Filter applies filtering options to the analysis result. Counters are
// carried over unchanged; only findings are filtered.
func Filter(result *Result, opts AnalyzeOptions) *Result {
	filtered := &Result{
		TypesAnalyzed: result.TypesAnalyzed,
		TypesSkipped:  result.TypesSkipped,
	}

	ruleSet := make(map[string]bool, len(opts.Rules))
	for _, r := range opts.Rules {
		ruleSet[r] = true
	}

	for _, f := range result.Findings {
		if !opts.IncludeUnexported && isUnexported(f.Type) {
			continue
		}

		if opts.Filter != "" && !strings.HasPrefix(f.PkgPath, opts.Filter) {
			continue
		}

		if len(ruleSet) > 0 && !ruleSet[string(f.Rule)] {
			continue
		}

		filtered.Findings = append(filtered.Findings, f)
	}

	return filtered
}

func isUnexported(name string) bool {
	if name == "" {
		return true
	}
	return unicode.IsLower(rune(name[0]))
}
