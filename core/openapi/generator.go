package openapi

import (
	"sort"
	"strings"

	"github.com/artpar/actionkit/domain/action"
	"github.com/artpar/actionkit/domain/params"
)

// Generator builds an OpenAPI spec from an action registry. Paths follow
// the resource routing conventions: "tasks.index" becomes GET /tasks,
// "tasks.show" becomes GET /tasks/{id}, and so on. Actions outside the
// conventional verb set are documented as POST /<resource>/<verb>.
type Generator struct {
	registry *action.Registry
	info     Info
	servers  []Server
}

// NewGenerator creates a generator over the given registry.
func NewGenerator(registry *action.Registry) *Generator {
	return &Generator{
		registry: registry,
		info: Info{
			Title:       "ActionKit API",
			Version:     "1.0.0",
			Description: "Auto-generated documentation for registered actions",
		},
	}
}

// SetInfo sets the API info.
func (g *Generator) SetInfo(info Info) {
	g.info = info
}

// AddServer adds a server URL.
func (g *Generator) AddServer(url, description string) {
	g.servers = append(g.servers, Server{URL: url, Description: description})
}

// Generate creates the OpenAPI specification.
func (g *Generator) Generate() *Spec {
	spec := &Spec{
		OpenAPI: "3.0.3",
		Info:    g.info,
		Servers: g.servers,
		Paths:   make(map[string]PathItem),
		Components: Components{
			Schemas: map[string]*Schema{
				"Envelope":      envelopeSchema(),
				"ErrorEnvelope": errorEnvelopeSchema(),
			},
			SecuritySchemes: map[string]SecurityScheme{
				"bearerAuth": {
					Type:        "http",
					Scheme:      "bearer",
					Description: "Bearer token authentication",
				},
			},
		},
	}

	seen := make(map[string]bool)
	for _, name := range g.registry.Names() {
		cfg, _ := g.registry.Get(name)
		resource, verb := splitActionName(name)
		if !seen[resource] {
			seen[resource] = true
			spec.Tags = append(spec.Tags, Tag{
				Name:        resource,
				Description: "Operations on " + resource,
			})
		}
		g.generateAction(spec, cfg, resource, verb)
	}

	sort.Slice(spec.Tags, func(i, j int) bool { return spec.Tags[i].Name < spec.Tags[j].Name })
	return spec
}

// generateAction adds one action to the spec.
func (g *Generator) generateAction(spec *Spec, cfg action.Config, resource, verb string) {
	method, path, member := conventionalRoute(resource, verb)

	op := &Operation{
		Tags:        []string{resource},
		Summary:     verb + " " + resource,
		OperationID: strings.ReplaceAll(cfg.Name, ".", "_"),
		Responses:   g.buildResponses(cfg),
	}

	if member {
		op.Parameters = append(op.Parameters, Parameter{
			Name:        "id",
			In:          "path",
			Required:    true,
			Description: "Resource identifier",
			Schema:      &Schema{Type: "string"},
		})
	}
	op.Parameters = append(op.Parameters, Parameter{
		Name:        "format",
		In:          "query",
		Description: "Response format override",
		Schema:      &Schema{Type: "string", Enum: formatNames()},
	})

	if !cfg.SkipAuthentication {
		op.Security = []SecurityRequirement{{"bearerAuth": {}}}
	}

	if method == "POST" || method == "PUT" || method == "PATCH" {
		op.RequestBody = requestBody(cfg)
	}

	item := spec.Paths[path]
	switch method {
	case "GET":
		item.Get = op
	case "POST":
		item.Post = op
	case "PUT":
		item.Put = op
		item.Patch = op
	case "PATCH":
		item.Patch = op
	case "DELETE":
		item.Delete = op
	}
	spec.Paths[path] = item
}

// buildResponses documents the success envelope plus one error response
// per category the action can produce.
func (g *Generator) buildResponses(cfg action.Config) map[string]Response {
	responses := map[string]Response{
		"200": {
			Description: "Successful response",
			Content: map[string]MediaType{
				"application/json": {Schema: &Schema{Ref: "#/components/schemas/Envelope"}},
			},
		},
	}

	cats := []action.Category{
		action.CategoryValidation,
		action.CategoryNotFound,
		action.CategoryAuthorization,
		action.CategoryAny,
	}
	for _, cat := range cats {
		status := statusString(cat.StatusCode())
		responses[status] = Response{
			Description: categoryDescription(cat),
			Content: map[string]MediaType{
				"application/json": {Schema: &Schema{Ref: "#/components/schemas/ErrorEnvelope"}},
			},
		}
	}
	return responses
}

// requestBody derives a JSON schema from the action's permit filter.
func requestBody(cfg action.Config) *RequestBody {
	schema := filterSchema(cfg.Permit)
	if cfg.ParamsKey != "" {
		schema = &Schema{
			Type:       "object",
			Properties: map[string]*Schema{cfg.ParamsKey: schema},
		}
	}
	return &RequestBody{
		Description: "Action parameters",
		Content: map[string]MediaType{
			"application/json": {Schema: schema},
		},
	}
}

func filterSchema(filter params.Filter) *Schema {
	schema := &Schema{Type: "object"}
	if len(filter) == 0 {
		return schema
	}
	schema.Properties = make(map[string]*Schema, len(filter))
	for _, rule := range filter {
		schema.Properties[rule.Key] = ruleSchema(rule)
	}
	return schema
}

func ruleSchema(rule params.Rule) *Schema {
	var item *Schema
	if rule.Nested != nil {
		item = filterSchema(rule.Nested)
	} else {
		item = &Schema{Type: "string"}
	}
	if rule.Array {
		return &Schema{Type: "array", Items: item}
	}
	return item
}

func envelopeSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"data": {Description: "Result resource or collection"},
			"meta": {
				Type: "object",
				Properties: map[string]*Schema{
					"version": {Type: "string"},
				},
			},
		},
		Required: []string{"data", "meta"},
	}
}

func errorEnvelopeSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"error": {
				Type: "object",
				Properties: map[string]*Schema{
					"type":    {Type: "string"},
					"message": {Type: "string"},
					"errors": {
						Type:        "object",
						Description: "Field name to list of messages",
					},
				},
			},
		},
		Required: []string{"error"},
	}
}

// splitActionName splits "tasks.create" into resource and verb. A name
// without a dot is its own resource with verb "index".
func splitActionName(name string) (resource, verb string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, "index"
}

// conventionalRoute maps a resource/verb pair to an HTTP method and path.
// member reports whether the path carries an {id} segment.
func conventionalRoute(resource, verb string) (method, path string, member bool) {
	base := "/" + resource
	switch verb {
	case "index":
		return "GET", base, false
	case "new":
		return "GET", base + "/new", false
	case "create":
		return "POST", base, false
	case "show":
		return "GET", base + "/{id}", true
	case "edit":
		return "GET", base + "/{id}/edit", true
	case "update":
		return "PUT", base + "/{id}", true
	case "destroy":
		return "DELETE", base + "/{id}", true
	default:
		return "POST", base + "/" + verb, false
	}
}

func formatNames() []string {
	fs := action.Formats()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = string(f)
	}
	return names
}

func categoryDescription(cat action.Category) string {
	switch cat {
	case action.CategoryValidation:
		return "Validation failed"
	case action.CategoryNotFound:
		return "Resource not found"
	case action.CategoryAuthorization:
		return "Access denied"
	default:
		return "Internal error"
	}
}

func statusString(code int) string {
	switch code {
	case 422:
		return "422"
	case 404:
		return "404"
	case 403:
		return "403"
	default:
		return "500"
	}
}
