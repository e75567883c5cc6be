// Package docs assembles the OpenAPI 3.0 description of the HTTP API.
//
// The document is built once from operations registered by the handlers
// together with hand-written schema objects. It is then rendered to JSON
// or YAML and served as a static asset.
package docs

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Version is the OpenAPI version the documents declare.
const Version = "3.0.3"

// Document is the top-level OpenAPI document.
type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

// Info holds API metadata.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]Operation

// Operation describes a single API operation on a path.
type Operation struct {
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required" yaml:"required"`
	Schema      *Schema `json:"schema" yaml:"schema"`
}

// RequestBody describes the request body.
type RequestBody struct {
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool                 `json:"required" yaml:"required"`
	Content     map[string]MediaType `json:"content" yaml:"content"`
}

// MediaType pairs a media type with its schema.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Response describes a single response.
type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Components holds reusable schema objects.
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Schema is the subset of the OpenAPI schema object the API needs.
type Schema struct {
	Ref                  string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type                 string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format               string             `json:"format,omitempty" yaml:"format,omitempty"`
	Description          string             `json:"description,omitempty" yaml:"description,omitempty"`
	MaxLength            *int               `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	ReadOnly             bool               `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Items                *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Example              interface{}        `json:"example,omitempty" yaml:"example,omitempty"`
}

const refPrefix = "#/components/schemas/"

// Ref returns a schema referencing the named component.
func Ref(name string) *Schema {
	return &Schema{Ref: refPrefix + name}
}

// ArrayOf returns an array schema with the given items.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

// JSONContent wraps s as an application/json content map.
func JSONContent(s *Schema) map[string]MediaType {
	return map[string]MediaType{"application/json": {Schema: s}}
}

// Builder collects schemas and operations into a Document.
type Builder struct {
	doc  Document
	errs []string
}

// NewBuilder starts a document with the given metadata.
func NewBuilder(info Info) *Builder {
	return &Builder{
		doc: Document{
			OpenAPI:    Version,
			Info:       info,
			Paths:      make(map[string]PathItem),
			Components: Components{Schemas: make(map[string]*Schema)},
		},
	}
}

// AddSchema registers a named component schema.
func (b *Builder) AddSchema(name string, s *Schema) *Builder {
	if _, ok := b.doc.Components.Schemas[name]; ok {
		b.errs = append(b.errs, fmt.Sprintf("schema %s registered twice", name))
	}
	b.doc.Components.Schemas[name] = s
	return b
}

// AddOperation registers op under method and a router-style path such as
// /products/:id, which is rewritten to /products/{id}.
func (b *Builder) AddOperation(method, path string, op Operation) *Builder {
	oaPath := toOpenAPIPath(path)
	m := strings.ToLower(method)

	item, ok := b.doc.Paths[oaPath]
	if !ok {
		item = make(PathItem)
		b.doc.Paths[oaPath] = item
	}
	if _, dup := item[m]; dup {
		b.errs = append(b.errs, fmt.Sprintf("operation %s %s registered twice", method, oaPath))
	}
	if len(op.Responses) == 0 {
		b.errs = append(b.errs, fmt.Sprintf("operation %s %s has no responses", method, oaPath))
	}
	item[m] = op
	return b
}

// Build checks that every $ref resolves and returns the document.
func (b *Builder) Build() (*Document, error) {
	errs := append([]string(nil), b.errs...)
	for _, ref := range b.refs() {
		name := strings.TrimPrefix(ref, refPrefix)
		if _, ok := b.doc.Components.Schemas[name]; !ok || name == ref {
			errs = append(errs, fmt.Sprintf("unresolved reference %s", ref))
		}
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return nil, fmt.Errorf("invalid OpenAPI document: %s", strings.Join(errs, "; "))
	}
	doc := b.doc
	return &doc, nil
}

func (b *Builder) refs() []string {
	var refs []string
	var walk func(s *Schema)
	walk = func(s *Schema) {
		if s == nil {
			return
		}
		if s.Ref != "" {
			refs = append(refs, s.Ref)
		}
		for _, p := range s.Properties {
			walk(p)
		}
		walk(s.Items)
		walk(s.AdditionalProperties)
	}
	walkContent := func(content map[string]MediaType) {
		for _, mt := range content {
			walk(mt.Schema)
		}
	}

	for _, s := range b.doc.Components.Schemas {
		walk(s)
	}
	for _, item := range b.doc.Paths {
		for _, op := range item {
			for _, p := range op.Parameters {
				walk(p.Schema)
			}
			if op.RequestBody != nil {
				walkContent(op.RequestBody.Content)
			}
			for _, r := range op.Responses {
				walkContent(r.Content)
			}
		}
	}
	return refs
}

// JSON renders the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// toOpenAPIPath converts :name segments to {name}.
func toOpenAPIPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + strings.TrimSuffix(strings.TrimPrefix(seg, ":"), "?") + "}"
		}
	}
	return strings.Join(segments, "/")
}
