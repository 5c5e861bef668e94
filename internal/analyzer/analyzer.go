package analyzer

import (
	"context"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/argcheck/argcheck/internal/diag"
	"github.com/argcheck/argcheck/internal/metadata"
	"github.com/argcheck/argcheck/internal/schema"
)

// Analyze loads Go packages from dir and validates the argument schema of
// every annotated struct type found in them.
func Analyze(ctx context.Context, dir string, opts AnalyzeOptions, logger *slog.Logger) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax |
			packages.NeedTypesInfo | packages.NeedImports,
		Dir:     dir,
		Context: ctx,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	logger.Info("packages loaded", "packages_count", len(pkgs))

	// Log packages with errors but continue
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
	}

	result := &Result{}
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}

		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			st, ok := named.Underlying().(*types.Struct)
			if !ok {
				continue
			}

			members := metadata.ReadStruct(st, pkg.Types)
			if !metadata.HasAnnotations(members) {
				// Not an argument schema type: skipped outright, no
				// diagnostics and no group construction.
				result.TypesSkipped++
				continue
			}

			logger.Debug("analyzing type", "type", tn.Name(), "package", pkg.PkgPath, "members", len(members))
			findings := checkType(members, opts)
			for i := range findings {
				findings[i].Type = tn.Name()
				findings[i].PkgPath = pkg.PkgPath
				findings[i].Position = resolvePosition(pkg.Fset, findings[i].pos, dir)
			}
			result.Findings = append(result.Findings, findings...)
			result.TypesAnalyzed++
		}
	}

	logger.Info("analysis complete",
		"types_analyzed", result.TypesAnalyzed,
		"types_skipped", result.TypesSkipped,
		"findings", len(result.Findings))

	return result, nil
}

// checkType runs the build/validate pipeline for one type's members. All
// working state is allocated here and discarded, so independent types may be
// checked concurrently.
func checkType(members []metadata.Member, opts AnalyzeOptions) []Finding {
	var collector diag.Collector

	built := schema.Build(members, schema.BuildOptions{StrictGroups: opts.StrictGroups}, &collector)
	schema.Validate(built.Groups, &collector)

	diags := collector.Diagnostics()
	findings := make([]Finding, len(diags))
	for i, d := range diags {
		findings[i] = Finding{
			Rule:    d.Rule,
			Member:  d.Member,
			Detail:  d.Detail,
			Message: d.Message(),
			pos:     d.Pos,
		}
	}
	return findings
}

// resolvePosition converts a token position to file:line form, rewriting the
// filename relative to moduleRoot when possible.
func resolvePosition(fset *token.FileSet, pos token.Pos, moduleRoot string) token.Position {
	if fset == nil || !pos.IsValid() {
		return token.Position{}
	}
	position := fset.Position(pos)
	if rel, err := filepath.Rel(moduleRoot, position.Filename); err == nil {
		position.Filename = rel
	}
	return position
}
