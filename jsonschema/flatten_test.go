package jsonschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maroonedog/luq-sub004/jsonschema"
)

func mustToDSL(t *testing.T, schema, parentPath string) []jsonschema.Record {
	t.Helper()
	doc, err := jsonschema.FromJSON([]byte(schema))
	require.NoError(t, err)
	recs, err := jsonschema.ToDSL(doc, parentPath)
	require.NoError(t, err)
	return recs
}

func recordPaths(recs []jsonschema.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Path)
	}
	return out
}

func TestToDSLRecordLayout(t *testing.T) {
	recs := mustToDSL(t, `{
		"type": "object",
		"properties": {
			"b": {"type": "array", "items": {"type": "integer"}},
			"a": {"type": "string", "minLength": 2}
		},
		"required": ["a"]
	}`, "")

	// root first, properties in name order, element schemas after their parent
	assert.Equal(t, []string{"", "a", "b", "b[*]"}, recordPaths(recs))

	assert.Equal(t, jsonschema.TypeObject, recs[0].Type)
	assert.False(t, recs[0].Required)

	assert.True(t, recs[1].Required)
	assert.Equal(t, jsonschema.TypeString, recs[1].Type)
	assert.EqualValues(t, 2, recs[1].Constraints["minLength"])

	assert.Equal(t, jsonschema.TypeArray, recs[2].Type)

	// integer collapses to number plus a flag
	assert.Equal(t, jsonschema.TypeNumber, recs[3].Type)
	assert.Equal(t, true, recs[3].Constraints["integer"])
}

func TestToDSLParentPathPrefix(t *testing.T) {
	recs := mustToDSL(t, `{
		"type": "object",
		"properties": {"replicas": {"type": "integer"}}
	}`, "spec")

	assert.Equal(t, []string{"spec", "spec.replicas"}, recordPaths(recs))
}

func TestToDSLTupleShape(t *testing.T) {
	recs := mustToDSL(t, `{
		"type": "array",
		"items": [{"type": "string"}, {"type": "number"}]
	}`, "")

	assert.Equal(t, []string{"", "[0]", "[1]"}, recordPaths(recs))
	assert.Equal(t, jsonschema.TypeTuple, recs[0].Type)
	assert.Equal(t, jsonschema.TypeString, recs[1].Type)
	assert.Equal(t, jsonschema.TypeNumber, recs[2].Type)
}

func TestToDSLUnionCarriesAllTypes(t *testing.T) {
	recs := mustToDSL(t, `{"type": ["string", "null"]}`, "")

	require.Len(t, recs, 1)
	assert.Equal(t, jsonschema.TypeString, recs[0].Type)
	assert.Equal(t, []jsonschema.NodeType{jsonschema.TypeString, jsonschema.TypeNull}, recs[0].MultipleTypes)
}

func TestToDSLKnownKeysAccompanyAdditionalProperties(t *testing.T) {
	recs := mustToDSL(t, `{
		"type": "object",
		"properties": {"b": {}, "a": {}},
		"additionalProperties": false
	}`, "")

	require.NotEmpty(t, recs)
	assert.Equal(t, []string{"a", "b"}, recs[0].Constraints["knownKeys"])
	assert.Equal(t, false, recs[0].Constraints["additionalProperties"])
}
