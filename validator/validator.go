package validator

import (
	"fmt"
	"strings"
)

// Issue describes one identifier problem
type Issue struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning"
}

// Result collects the issues found for one entity
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// WarningMessages returns the warning messages in order
func (r *Result) WarningMessages() []string {
	msgs := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		msgs = append(msgs, w.Message)
	}
	return msgs
}

// FirstError returns the first error message, or "" when the result is valid
func (r *Result) FirstError() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Words that cannot be used as field names in generated Java sources.
var javaReserved = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true, "var": true, "record": true, "yield": true,
}

// Table names that need quoting in PostgreSQL.
var sqlReserved = []string{"user", "order", "group", "table", "index", "view", "schema", "select", "where", "limit"}

// Contextual keywords that stay legal as variable names.
var javaContextual = map[string]bool{"var": true, "record": true, "yield": true}

// IsJavaReserved reports whether name is a Java keyword or literal
func IsJavaReserved(name string) bool {
	return javaReserved[name]
}

// ValidateEntityName checks the class and variable forms of an entity name.
// The generated sources declare "class <pascal>" and "<Pascal> <camel>"
// parameters, so both must be legal Java identifiers.
func ValidateEntityName(pascal, camel string) error {
	if pascal == "" {
		return fmt.Errorf("entity name cannot be empty")
	}
	if pascal[0] >= '0' && pascal[0] <= '9' {
		return fmt.Errorf("entity name '%s' cannot start with a digit", pascal)
	}
	if IsJavaReserved(camel) && !javaContextual[camel] {
		return fmt.Errorf("entity name '%s' is a reserved Java keyword", camel)
	}
	return nil
}

// ValidateEntity checks the entity table name and its field names. fields
// holds the camelCase form of each field.
func ValidateEntity(table string, fields []string) *Result {
	result := &Result{
		Valid:    true,
		Errors:   []Issue{},
		Warnings: []Issue{},
	}

	if err := validateTableName(table); err != nil {
		result.Errors = append(result.Errors, Issue{
			Type:     "table_name",
			Table:    table,
			Message:  err.Error(),
			Severity: "error",
		})
	}

	for _, keyword := range sqlReserved {
		if strings.ToLower(table) == keyword {
			result.Warnings = append(result.Warnings, Issue{
				Type:     "reserved_table",
				Table:    table,
				Message:  fmt.Sprintf("table name '%s' is a reserved SQL keyword and must be quoted in hand-written queries", table),
				Severity: "warning",
			})
		}
	}

	for _, field := range fields {
		if err := validateFieldName(field); err != nil {
			result.Errors = append(result.Errors, Issue{
				Type:     "field_name",
				Table:    table,
				Field:    field,
				Message:  err.Error(),
				Severity: "error",
			})
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// validateTableName validates table name format
func validateTableName(tableName string) error {
	if tableName == "" {
		return fmt.Errorf("table name cannot be empty")
	}

	if len(tableName) > 63 {
		return fmt.Errorf("table name '%s' is too long (max 63 characters)", tableName)
	}

	for _, char := range tableName {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') || char == '_') {
			return fmt.Errorf("table name '%s' contains invalid character '%c'", tableName, char)
		}
	}

	return nil
}

// validateFieldName rejects names that would not compile as Java fields
func validateFieldName(name string) error {
	if name == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	if name[0] >= '0' && name[0] <= '9' {
		return fmt.Errorf("field name '%s' cannot start with a digit", name)
	}
	if IsJavaReserved(name) {
		return fmt.Errorf("field name '%s' is a reserved Java keyword", name)
	}
	return nil
}
