package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag_RequiredWithParams(t *testing.T) {
	anns := ParseTag(`required:"0,path,Path to scan"`)
	require.Len(t, anns, 1)
	assert.Equal(t, KindRequired, anns[0].Kind)
	assert.Equal(t, []string{"0", "path", "Path to scan"}, anns[0].Params)
}

func TestParseTag_OptionalWithCollectionParam(t *testing.T) {
	anns := ParseTag(`optional:"false,verbose,Print more detail,true"`)
	require.Len(t, anns, 1)
	assert.Equal(t, KindOptional, anns[0].Kind)
	assert.Equal(t, []string{"false", "verbose", "Print more detail", "true"}, anns[0].Params)
}

func TestParseTag_PresenceMarkersHaveNoParams(t *testing.T) {
	anns := ParseTag(`action:"" common:""`)
	require.Len(t, anns, 2)
	assert.Equal(t, KindAction, anns[0].Kind)
	assert.Nil(t, anns[0].Params)
	assert.Equal(t, KindCommon, anns[1].Kind)
	assert.Nil(t, anns[1].Params)
}

func TestParseTag_GroupNamesSplit(t *testing.T) {
	anns := ParseTag(`group:"Start, Stop"`)
	require.Len(t, anns, 1)
	assert.Equal(t, KindGroup, anns[0].Kind)
	assert.Equal(t, []string{"Start", "Stop"}, anns[0].Params)
}

func TestParseTag_UnrelatedKeysIgnored(t *testing.T) {
	anns := ParseTag(`json:"path,omitempty" yaml:"path" validate:"required"`)
	assert.Empty(t, anns)
}

func TestParseTag_MixedRecognizedAndUnrelated(t *testing.T) {
	anns := ParseTag(`json:"verbose" optional:"false,verbose,Verbose output" common:""`)
	require.Len(t, anns, 2)
	assert.Equal(t, KindOptional, anns[0].Kind)
	assert.Equal(t, KindCommon, anns[1].Kind)
}

func TestParseTag_OrderIndependentOfSpelling(t *testing.T) {
	// Annotations come back in a fixed kind order, not tag spelling order.
	a := ParseTag(`common:"" required:"0,path,Path"`)
	b := ParseTag(`required:"0,path,Path" common:""`)
	assert.Equal(t, a, b)
}

func TestParseTag_EmptyTag(t *testing.T) {
	assert.Empty(t, ParseTag(""))
}

func TestParseTag_ParamsTrimmed(t *testing.T) {
	anns := ParseTag(`required:" 1 , out , Output file "`)
	require.Len(t, anns, 1)
	assert.Equal(t, []string{"1", "out", "Output file"}, anns[0].Params)
}
