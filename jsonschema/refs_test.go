package jsonschema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	luq "github.com/maroonedog/luq-sub004"
	"github.com/maroonedog/luq-sub004/jsonschema"
)

func TestImportExternalRefFails(t *testing.T) {
	_, _, err := jsonschema.Import([]byte(`{"$ref": "https://example.com/schema.json"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, jsonschema.ErrExternalRef))
}

func TestImportUnresolvedRefFails(t *testing.T) {
	_, _, err := jsonschema.Import([]byte(`{
		"type": "object",
		"properties": {"a": {"$ref": "#/definitions/missing"}}
	}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, jsonschema.ErrUnresolvedRef))
}

func TestImportRefPointerEscapes(t *testing.T) {
	v := mustImport(t, `{
		"type": "object",
		"definitions": {"a/b": {"type": "string"}, "c~d": {"type": "number"}},
		"properties": {
			"x": {"$ref": "#/definitions/a~1b"},
			"y": {"$ref": "#/definitions/c~0d"}
		}
	}`)

	assert.True(t, v.Validate(jdoc(t, `{"x":"s","y":1}`)).Valid)
	assert.False(t, v.Validate(jdoc(t, `{"x":1}`)).Valid)
	assert.False(t, v.Validate(jdoc(t, `{"y":"s"}`)).Valid)
}

func TestImportRefSiblingKeysWin(t *testing.T) {
	v := mustImport(t, `{
		"type": "object",
		"definitions": {"short": {"type": "string", "minLength": 1}},
		"properties": {"s": {"$ref": "#/definitions/short", "minLength": 3}}
	}`)

	assert.True(t, v.Validate(jdoc(t, `{"s":"abc"}`)).Valid)
	res := v.Validate(jdoc(t, `{"s":"ab"}`))
	require.False(t, res.Valid)
	assert.Equal(t, luq.CodeTooShort, res.Issues[0].Code)
	assert.EqualValues(t, 3, res.Issues[0].Params["min"])
}

func TestImportChainedRefs(t *testing.T) {
	v := mustImport(t, `{
		"type": "object",
		"definitions": {
			"a": {"$ref": "#/definitions/b"},
			"b": {"type": "number"}
		},
		"properties": {"n": {"$ref": "#/definitions/a"}}
	}`)

	assert.True(t, v.Validate(jdoc(t, `{"n":3}`)).Valid)
	assert.False(t, v.Validate(jdoc(t, `{"n":"x"}`)).Valid)
}

func TestImportRootRecursionTree(t *testing.T) {
	v := mustImport(t, `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"children": {"type": "array", "items": {"$ref": "#"}}
		},
		"required": ["name"]
	}`)

	assert.True(t, v.Validate(jdoc(t, `{
		"name": "root",
		"children": [{"name": "kid", "children": []}]
	}`)).Valid)

	res := v.Validate(jdoc(t, `{
		"name": "root",
		"children": [{"children": [{}]}]
	}`), luq.CollectAll())
	require.False(t, res.Valid)
	paths := issuePaths(res.Issues)
	assert.Contains(t, paths, "children[0].name")
	assert.Contains(t, paths, "children[0].children[0].name")
}

func TestImportRootRefAlone(t *testing.T) {
	v := mustImport(t, `{"$ref": "#"}`)
	assert.True(t, v.Validate(jdoc(t, `{"anything": true}`)).Valid)
	assert.True(t, v.Validate("scalar").Valid)
}

func TestImportDefinitionCycle(t *testing.T) {
	v := mustImport(t, `{
		"type": "object",
		"properties": {"head": {"$ref": "#/definitions/node"}},
		"definitions": {
			"node": {
				"type": "object",
				"properties": {
					"value": {"type": "number"},
					"next": {"$ref": "#/definitions/node"}
				},
				"required": ["value"]
			}
		}
	}`)

	assert.True(t, v.Validate(jdoc(t, `{"head":{"value":1,"next":{"value":2}}}`)).Valid)
	assert.True(t, v.Validate(jdoc(t, `{"head":{"value":1,"next":{"value":2,"next":{"value":3}}}}`)).Valid)

	res := v.Validate(jdoc(t, `{"head":{"value":1,"next":{"value":"x"}}}`))
	require.False(t, res.Valid)
	assert.Equal(t, luq.CodeRefSchema, res.Issues[0].Code)
	assert.Equal(t, "head.next", res.Issues[0].Path)

	// violations deeper in the chain still surface at the reference
	res = v.Validate(jdoc(t, `{"head":{"value":1,"next":{"value":2,"next":{"next":{}}}}}`))
	require.False(t, res.Valid)
	assert.Equal(t, "head.next", res.Issues[0].Path)
}

func TestImportMutualDefinitionCycle(t *testing.T) {
	v := mustImport(t, `{
		"type": "object",
		"properties": {"root": {"$ref": "#/definitions/a"}},
		"definitions": {
			"a": {
				"type": "object",
				"properties": {"b": {"$ref": "#/definitions/b"}, "tag": {"type": "string"}}
			},
			"b": {
				"type": "object",
				"properties": {"a": {"$ref": "#/definitions/a"}}
			}
		}
	}`)

	assert.True(t, v.Validate(jdoc(t, `{"root":{"b":{"a":{"tag":"x"}}}}`)).Valid)

	res := v.Validate(jdoc(t, `{"root":{"b":{"a":{"tag":5}}}}`))
	require.False(t, res.Valid)
	assert.Equal(t, luq.CodeRefSchema, res.Issues[0].Code)
}

func TestImportCompositionCycleDegrades(t *testing.T) {
	v, d, err := jsonschema.Import([]byte(`{
		"type": "object",
		"properties": {"a": {"$ref": "#/definitions/A"}},
		"definitions": {"A": {"allOf": [{"$ref": "#/definitions/A"}]}}
	}`))
	require.NoError(t, err)
	assert.True(t, d.HasWarnings())
	assert.True(t, v.Validate(jdoc(t, `{"a":1}`)).Valid)
}

func TestImportItemsRefCycle(t *testing.T) {
	v := mustImport(t, `{
		"type": "object",
		"properties": {"list": {"$ref": "#/definitions/cons"}},
		"definitions": {
			"cons": {
				"type": "array",
				"items": {
					"anyOf": [
						{"type": "number"},
						{"$ref": "#/definitions/cons"}
					]
				}
			}
		}
	}`)

	assert.True(t, v.Validate(jdoc(t, `{"list":[1,[2,[3]],4]}`)).Valid)

	res := v.Validate(jdoc(t, `{"list":[1,["x"]]}`))
	require.False(t, res.Valid)
}
