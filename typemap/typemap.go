// Package typemap maps the abstract field-type vocabulary onto the output
// language type system and onto PostgreSQL column types.
package typemap

import (
	"fmt"
	"strings"
)

// Abstract field types.
const (
	String   = "string"
	Text     = "text"
	Integer  = "integer"
	Long     = "long"
	Short    = "short"
	Boolean  = "boolean"
	Date     = "date"
	DateTime = "datetime"
	Time     = "time"
	Decimal  = "decimal"
	Float    = "float"
	Double   = "double"
	UUID     = "uuid"
)

// Mapping is the resolved output type for an abstract type.
type Mapping struct {
	OutputType string
	Import     string // fully qualified import, empty when none is needed
	Fallback   bool   // true when the abstract type was unknown
}

// Table is a finite abstract-type lookup for one output language.
type Table struct {
	entries  map[string]Mapping
	fallback Mapping
}

// NewTable builds a lookup from abstract type names, matched
// case-insensitively, and the mapping used for unknown names.
func NewTable(entries map[string]Mapping, fallback Mapping) Table {
	t := Table{entries: make(map[string]Mapping, len(entries)), fallback: fallback}
	for name, m := range entries {
		t.entries[normalize(name)] = m
	}
	return t
}

// Java maps the abstract vocabulary onto Java types.
var Java = NewTable(map[string]Mapping{
	String:   {OutputType: "String"},
	Text:     {OutputType: "String"},
	Integer:  {OutputType: "Integer"},
	Long:     {OutputType: "Long"},
	Short:    {OutputType: "Short"},
	Boolean:  {OutputType: "Boolean"},
	Date:     {OutputType: "LocalDate", Import: "java.time.LocalDate"},
	DateTime: {OutputType: "LocalDateTime", Import: "java.time.LocalDateTime"},
	Time:     {OutputType: "LocalTime", Import: "java.time.LocalTime"},
	Decimal:  {OutputType: "BigDecimal", Import: "java.math.BigDecimal"},
	Float:    {OutputType: "Float"},
	Double:   {OutputType: "Double"},
	UUID:     {OutputType: "UUID", Import: "java.util.UUID"},
}, Mapping{OutputType: "String"})

// Resolve returns the mapping for abstract. It never fails: unknown types
// resolve to the String fallback with Fallback set.
func (t Table) Resolve(abstract string) Mapping {
	if m, ok := t.entries[normalize(abstract)]; ok {
		return m
	}
	m := t.fallback
	m.Fallback = true
	return m
}

// Known reports whether abstract is part of the vocabulary.
func Known(abstract string) bool {
	_, ok := Java.entries[normalize(abstract)]
	return ok
}

// ExtraImports returns the imports an output type string needs beyond what
// Resolve reports, e.g. for generic or fully spelled types.
func ExtraImports(outputType string) []string {
	var imports []string
	if strings.Contains(outputType, "BigDecimal") {
		imports = append(imports, "java.math.BigDecimal")
	}
	if strings.Contains(outputType, "LocalDateTime") {
		imports = append(imports, "java.time.LocalDateTime")
	} else if strings.Contains(outputType, "LocalDate") {
		imports = append(imports, "java.time.LocalDate")
	}
	if strings.Contains(outputType, "LocalTime") {
		imports = append(imports, "java.time.LocalTime")
	}
	if strings.Contains(outputType, "UUID") {
		imports = append(imports, "java.util.UUID")
	}
	return imports
}

// FromSQL maps a PostgreSQL information_schema data_type onto the abstract
// vocabulary. Unknown types map to string with fallback set.
func FromSQL(dataType string) (abstract string, fallback bool) {
	switch normalize(dataType) {
	case "bigint", "int8", "bigserial":
		return Long, false
	case "integer", "int", "int4", "serial":
		return Integer, false
	case "smallint", "int2":
		return Short, false
	case "numeric", "decimal":
		return Decimal, false
	case "real", "float4":
		return Float, false
	case "double precision", "float8":
		return Double, false
	case "character varying", "varchar", "character", "char":
		return String, false
	case "text":
		return Text, false
	case "boolean", "bool":
		return Boolean, false
	case "date":
		return Date, false
	case "timestamp", "timestamp without time zone", "timestamp with time zone", "timestamptz":
		return DateTime, false
	case "time", "time without time zone":
		return Time, false
	case "uuid":
		return UUID, false
	default:
		return String, true
	}
}

// DDL returns the PostgreSQL column type for an abstract type. maxLength
// sizes VARCHAR columns when positive.
func DDL(abstract string, maxLength int) string {
	switch normalize(abstract) {
	case Text:
		return "TEXT"
	case Integer:
		return "INTEGER"
	case Long:
		return "BIGINT"
	case Short:
		return "SMALLINT"
	case Boolean:
		return "BOOLEAN"
	case Date:
		return "DATE"
	case DateTime:
		return "TIMESTAMP"
	case Time:
		return "TIME"
	case Decimal:
		return "NUMERIC(19,2)"
	case Float:
		return "REAL"
	case Double:
		return "DOUBLE PRECISION"
	case UUID:
		return "UUID"
	default:
		if maxLength <= 0 {
			maxLength = 255
		}
		return fmt.Sprintf("VARCHAR(%d)", maxLength)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
