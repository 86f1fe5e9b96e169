package tool

// Descriptor advertises one tool and the JSON schema of its arguments.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

var fieldSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":      map[string]any{"type": "string", "description": "Field name in any case style"},
		"type":      map[string]any{"type": "string", "description": "string, text, integer, long, short, boolean, date, datetime, time, decimal, float, double or uuid"},
		"required":  map[string]any{"type": "boolean"},
		"nullable":  map[string]any{"type": "boolean", "description": "Legacy flag; false means required"},
		"minLength": map[string]any{"type": "integer", "minimum": 0},
		"maxLength": map[string]any{"type": "integer", "minimum": 0},
		"isEmail":   map[string]any{"type": "boolean"},
	},
	"required": []string{"name", "type"},
}

func entitySchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"entityName": map[string]any{"type": "string", "description": "Entity name, e.g. JobPost"},
			"fields":     map[string]any{"type": "array", "items": fieldSchema},
		},
		"required": []string{"entityName", "fields"},
	}
}

func tableSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tableName": map[string]any{"type": "string"},
		},
		"required": []string{"tableName"},
	}
}

func emptySchema() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}

// Tools lists the registered tools in a stable order.
func (a *Adapter) Tools() []Descriptor {
	return []Descriptor{
		{Name: "generate_entity", Description: "Generate a JPA entity class", InputSchema: entitySchema()},
		{Name: "generate_full_crud", Description: "Generate entity, repository, service and controller", InputSchema: entitySchema()},
		{Name: "generate_dtos", Description: "Generate request and response DTOs with validation", InputSchema: entitySchema()},
		{Name: "generate_enhanced_controller", Description: "Generate a REST controller with OpenAPI annotations", InputSchema: entitySchema()},
		{Name: "setup_api_infrastructure", Description: "Generate OpenAPI configuration and a global exception handler", InputSchema: emptySchema()},
		{Name: "list_tables", Description: "List the tables of the configured database schema", InputSchema: emptySchema()},
		{Name: "describe_table", Description: "Describe the columns of a table", InputSchema: tableSchema()},
		{Name: "generate_entity_from_table", Description: "Generate a JPA entity from an existing table", InputSchema: tableSchema()},
		{Name: "generate_crud_from_table", Description: "Generate entity, DTOs, repository, service and controller from an existing table", InputSchema: tableSchema()},
		{Name: "create_migration", Description: "Create a versioned SQL migration from raw SQL or an entity description", InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"description": map[string]any{"type": "string", "description": "Letters, digits and spaces; becomes the file name"},
				"sql":         map[string]any{"type": "string"},
				"entityName":  map[string]any{"type": "string"},
				"fields":      map[string]any{"type": "array", "items": fieldSchema},
			},
			"required": []string{"description"},
		}},
		{Name: "analyze_performance", Description: "Report slow queries and column statistics", InputSchema: emptySchema()},
	}
}
