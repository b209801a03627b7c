package openapi

import (
	"regexp"
	"sort"
	"strings"
)

// Document represents a minimal OpenAPI document.
type Document struct {
	OpenAPI    string                          `json:"openapi"`
	Info       Info                            `json:"info"`
	Paths      map[string]map[string]Operation `json:"paths"`
	Components Components                      `json:"components,omitempty"`
}

// Info captures OpenAPI metadata.
type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Components aggregates schema components and security schemes.
type Components struct {
	Schemas         map[string]any `json:"schemas,omitempty"`
	SecuritySchemes map[string]any `json:"securitySchemes,omitempty"`
}

// Operation is one method on a path.
type Operation struct {
	OperationID string                `json:"operationId"`
	Tags        []string              `json:"tags,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty"`
	Security    []map[string][]string `json:"security,omitempty"`
	Responses   map[string]Response   `json:"responses"`
}

type Parameter struct {
	Name     string         `json:"name"`
	In       string         `json:"in"`
	Required bool           `json:"required"`
	Schema   map[string]any `json:"schema"`
}

type Response struct {
	Description string `json:"description"`
}

var pathParam = regexp.MustCompile(`\{([^}/]+)\}`)

// NewDocument constructs a minimal OpenAPI document.
func NewDocument(title, version string) *Document {
	return &Document{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:   title,
			Version: version,
		},
		Paths:      map[string]map[string]Operation{},
		Components: Components{Schemas: map[string]any{}},
	}
}

// AddSchema registers a component schema.
func (d *Document) AddSchema(name string, schema map[string]any) {
	if d == nil || name == "" || schema == nil {
		return
	}
	if d.Components.Schemas == nil {
		d.Components.Schemas = map[string]any{}
	}
	d.Components.Schemas[name] = schema
}

// AddBearerScheme declares an HTTP bearer security scheme under name.
func (d *Document) AddBearerScheme(name string) {
	if d == nil || name == "" {
		return
	}
	if d.Components.SecuritySchemes == nil {
		d.Components.SecuritySchemes = map[string]any{}
	}
	d.Components.SecuritySchemes[name] = map[string]any{"type": "http", "scheme": "bearer"}
}

// AddRoute records a ServeMux pattern such as "GET /api/site/{module}".
// Path parameters become required string parameters. Patterns without a
// method are ignored.
func (d *Document) AddRoute(pattern, tag, security string) {
	if d == nil {
		return
	}
	method, path, ok := strings.Cut(strings.TrimSpace(pattern), " ")
	if !ok || method == "" || path == "" {
		return
	}
	method = strings.ToLower(method)
	path = strings.TrimSpace(path)

	op := Operation{
		OperationID: operationID(method, path),
		Responses:   map[string]Response{"default": {Description: "JSON response or error envelope"}},
	}
	if tag != "" {
		op.Tags = []string{tag}
	}
	if security != "" {
		op.Security = []map[string][]string{{security: {}}}
	}
	for _, match := range pathParam.FindAllStringSubmatch(path, -1) {
		op.Parameters = append(op.Parameters, Parameter{
			Name:     match[1],
			In:       "path",
			Required: true,
			Schema:   map[string]any{"type": "string"},
		})
	}
	if d.Paths[path] == nil {
		d.Paths[path] = map[string]Operation{}
	}
	d.Paths[path][method] = op
}

// PathKeys returns the documented paths in order.
func (d *Document) PathKeys() []string {
	keys := make([]string, 0, len(d.Paths))
	for key := range d.Paths {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func operationID(method, path string) string {
	var b strings.Builder
	b.WriteString(method)
	for _, segment := range strings.Split(path, "/") {
		segment = strings.Trim(segment, "{}")
		for _, part := range strings.FieldsFunc(segment, func(r rune) bool { return r == '-' || r == '.' || r == '_' }) {
			b.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}
	return b.String()
}
