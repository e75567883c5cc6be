package docs_test

import (
	"encoding/json"
	"testing"

	"katalog/internal/docs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func okResponse(s *docs.Schema) map[string]docs.Response {
	return map[string]docs.Response{"200": {Description: "OK", Content: docs.JSONContent(s)}}
}

func TestBuilder_Build(t *testing.T) {
	doc, err := docs.NewBuilder(docs.Info{Title: "Test", Version: "1.0.0"}).
		AddSchema("Thing", &docs.Schema{Type: "object", Properties: map[string]*docs.Schema{"id": {Type: "integer"}}}).
		AddOperation("GET", "/things", docs.Operation{OperationID: "listThings", Responses: okResponse(docs.ArrayOf(docs.Ref("Thing")))}).
		AddOperation("GET", "/things/:id", docs.Operation{
			OperationID: "getThing",
			Parameters:  []docs.Parameter{{Name: "id", In: "path", Required: true, Schema: &docs.Schema{Type: "integer"}}},
			Responses:   okResponse(docs.Ref("Thing")),
		}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, docs.Version, doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/things")
	assert.Contains(t, doc.Paths, "/things/{id}")
	assert.Equal(t, "getThing", doc.Paths["/things/{id}"]["get"].OperationID)

	raw, err := doc.JSON()
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "3.0.3", decoded["openapi"])
	assert.Contains(t, string(raw), `"$ref": "#/components/schemas/Thing"`)

	y, err := doc.YAML()
	require.NoError(t, err)
	var fromYAML map[string]interface{}
	require.NoError(t, yaml.Unmarshal(y, &fromYAML))
	assert.Equal(t, "3.0.3", fromYAML["openapi"])
	assert.Contains(t, fromYAML["paths"], "/things/{id}")
}

func TestBuilder_UnresolvedRef(t *testing.T) {
	_, err := docs.NewBuilder(docs.Info{Title: "Test", Version: "1"}).
		AddOperation("GET", "/things", docs.Operation{Responses: okResponse(docs.Ref("Missing"))}).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolved reference #/components/schemas/Missing")
}

func TestBuilder_DuplicateOperation(t *testing.T) {
	op := docs.Operation{Responses: map[string]docs.Response{"204": {Description: "No Content"}}}
	_, err := docs.NewBuilder(docs.Info{Title: "Test", Version: "1"}).
		AddOperation("DELETE", "/things/:id", op).
		AddOperation("delete", "/things/{id}", op).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
}

func TestBuilder_OperationWithoutResponses(t *testing.T) {
	_, err := docs.NewBuilder(docs.Info{Title: "Test", Version: "1"}).
		AddOperation("GET", "/things", docs.Operation{}).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no responses")
}
