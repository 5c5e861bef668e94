package main

import (
	"encoding/json"
	"go/token"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argcheck/argcheck/internal/analyzer"
	"github.com/argcheck/argcheck/internal/diag"
)

// ---------------------------------------------------------------------------
// reorderArgs tests
// ---------------------------------------------------------------------------

func TestReorderArgs_NoArgs(t *testing.T) {
	flags, positional := reorderArgs(nil)
	assert.Nil(t, flags)
	assert.Nil(t, positional)
}

func TestReorderArgs_PositionalOnly(t *testing.T) {
	flags, positional := reorderArgs([]string{"./mypackage"})
	assert.Nil(t, flags)
	assert.Equal(t, []string{"./mypackage"}, positional)
}

func TestReorderArgs_FlagsBeforePositional(t *testing.T) {
	flags, positional := reorderArgs([]string{"-format", "json", "./pkg"})
	assert.Equal(t, []string{"-format", "json"}, flags)
	assert.Equal(t, []string{"./pkg"}, positional)
}

func TestReorderArgs_PositionalBeforeFlags(t *testing.T) {
	// The whole point of reorderArgs: allow positional args before flags.
	flags, positional := reorderArgs([]string{"./pkg", "-format", "json"})
	assert.Equal(t, []string{"-format", "json"}, flags)
	assert.Equal(t, []string{"./pkg"}, positional)
}

func TestReorderArgs_BoolFlagDoesNotConsumeValue(t *testing.T) {
	flags, positional := reorderArgs([]string{"-strict-groups", "./pkg"})
	assert.Equal(t, []string{"-strict-groups"}, flags)
	assert.Equal(t, []string{"./pkg"}, positional)
}

func TestReorderArgs_EqualsSyntaxDoesNotConsumeValue(t *testing.T) {
	flags, positional := reorderArgs([]string{"-format=json", "./pkg"})
	assert.Equal(t, []string{"-format=json"}, flags)
	assert.Equal(t, []string{"./pkg"}, positional)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func TestParseLogLevel_Valid(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"Error": slog.LevelError,
	} {
		got, err := parseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseLogLevel_Invalid(t *testing.T) {
	_, err := parseLogLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestSplitRules(t *testing.T) {
	assert.Nil(t, splitRules(""))
	assert.Equal(t, []string{"DuplicateArgumentName"}, splitRules("DuplicateArgumentName"))
	assert.Equal(t,
		[]string{"DuplicateArgumentName", "DuplicateActionArgument"},
		splitRules("DuplicateArgumentName, DuplicateActionArgument,"))
}

// ---------------------------------------------------------------------------
// output rendering
// ---------------------------------------------------------------------------

func sampleRenderResult() *analyzer.Result {
	return &analyzer.Result{
		Findings: []analyzer.Finding{
			{
				Rule:     diag.RuleDuplicateArgumentName,
				Type:     "CopyArgs",
				PkgPath:  "example.com/app",
				Member:   "Log",
				Detail:   "output",
				Message:  `duplicate argument name "output"`,
				Position: token.Position{Filename: "args.go", Line: 7},
			},
		},
		TypesAnalyzed: 1,
	}
}

func TestRenderFindings_Text(t *testing.T) {
	got, err := renderFindings(sampleRenderResult(), "text")
	require.NoError(t, err)
	assert.Equal(t,
		"args.go:7: DuplicateArgumentName: CopyArgs.Log: duplicate argument name \"output\"\n",
		got)
}

func TestRenderFindings_TextEmpty(t *testing.T) {
	got, err := renderFindings(&analyzer.Result{}, "text")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderFindings_JSON(t *testing.T) {
	got, err := renderFindings(sampleRenderResult(), "json")
	require.NoError(t, err)

	var decoded []analyzer.Finding
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, diag.RuleDuplicateArgumentName, decoded[0].Rule)
	assert.Equal(t, "Log", decoded[0].Member)
}
