package diag

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_PayloadRules(t *testing.T) {
	d := Diagnostic{Rule: RuleDuplicateArgumentName, Member: "Out", Detail: "output"}
	assert.Equal(t, `duplicate argument name "output"`, d.Message())

	d = Diagnostic{Rule: RuleDuplicatePositionalArgumentPosition, Member: "Path", Detail: "0"}
	assert.Equal(t, "duplicate positional argument position 0", d.Message())

	d = Diagnostic{Rule: RuleUnknownArgumentGroup, Member: "Out", Detail: "Extra"}
	assert.Equal(t, `argument group "Extra" is not declared by the action enum`, d.Message())
}

func TestMessage_MemberRules(t *testing.T) {
	d := Diagnostic{Rule: RuleDuplicateActionArgument, Member: "Other"}
	assert.Contains(t, d.Message(), "Other")

	d = Diagnostic{Rule: RuleConflictingPropertyDeclaration, Member: "Path"}
	assert.Contains(t, d.Message(), "Path")

	d = Diagnostic{Rule: RuleCannotSpecifyAGroupForANonProperty, Member: "Mode"}
	assert.Contains(t, d.Message(), "Mode")
}

func TestCollector_PreservesReportOrder(t *testing.T) {
	var c Collector
	c.Report(Diagnostic{Rule: RuleDuplicateActionArgument, Member: "A"})
	c.Report(Diagnostic{Rule: RuleDuplicateArgumentName, Member: "B", Detail: "b"})

	diags := c.Diagnostics()
	assert.Equal(t, "A", diags[0].Member)
	assert.Equal(t, "B", diags[1].Member)
}

func TestCollector_ConcurrentReports(t *testing.T) {
	// Independent type analyses may share a sink; reports must not be lost.
	var c Collector
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Report(Diagnostic{Rule: RuleDuplicateArgumentName})
		}()
	}
	wg.Wait()

	assert.Len(t, c.Diagnostics(), 50)
}

func TestCollector_DiagnosticsReturnsCopy(t *testing.T) {
	var c Collector
	c.Report(Diagnostic{Rule: RuleDuplicateActionArgument, Member: "A"})

	snapshot := c.Diagnostics()
	c.Report(Diagnostic{Rule: RuleDuplicateActionArgument, Member: "B"})

	assert.Len(t, snapshot, 1)
	assert.Len(t, c.Diagnostics(), 2)
}
