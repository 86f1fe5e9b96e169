package introspect

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/crudforge/apperr"
	"github.com/ridoystarlord/crudforge/naming"
	"github.com/ridoystarlord/crudforge/schema"
	"github.com/ridoystarlord/crudforge/typemap"
)

// Columns that map onto the implicit entity members.
var timestampColumns = map[string]bool{"created_at": true, "updated_at": true}

// FieldFromColumn folds one catalog column into a field. A NOT NULL column
// is required unless the database fills it with a default.
func FieldFromColumn(col schema.ColumnMeta) (schema.FieldSpec, string, error) {
	id, err := naming.NewIdentifier(col.Name)
	if err != nil {
		return schema.FieldSpec{}, "", apperr.Validation("column %q cannot be mapped to a field name", col.Name)
	}

	var warning string
	abstract, fallback := typemap.FromSQL(col.SQLType)
	if fallback {
		warning = fmt.Sprintf("column %s: unsupported type %q, using String", col.Name, col.SQLType)
	}

	field := schema.FieldSpec{
		Name:         id,
		AbstractType: abstract,
		Required:     !col.Nullable && !col.HasDefault,
	}
	if abstract == typemap.String && !fallback && col.MaxLength != nil {
		n := *col.MaxLength
		field.Constraints.MaxLength = &n
	}

	src := col
	field.Source = &src
	return field, warning, nil
}

// ShapeFromColumns builds the entity for table. The id column is dropped and
// created_at/updated_at fold into the implicit timestamps. Any other key
// layout is kept as ordinary fields and reported as a warning.
func ShapeFromColumns(table string, cols []schema.ColumnMeta, opts schema.Options) (*schema.EntityShape, []string, error) {
	if len(cols) == 0 {
		return nil, nil, apperr.Validation("table %q not found", table)
	}
	name, err := naming.NewIdentifier(table)
	if err != nil {
		return nil, nil, apperr.Validation("invalid table name %q", table)
	}

	var (
		warnings []string
		fields   []schema.FieldSpec
		keys     []string
		hasID    bool
	)
	for _, col := range cols {
		if col.IsPrimaryKey {
			keys = append(keys, col.Name)
		}
		if col.Name == "id" {
			hasID = true
			continue
		}
		if timestampColumns[col.Name] {
			continue
		}

		field, warning, err := FieldFromColumn(col)
		if err != nil {
			return nil, nil, err
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
		fields = append(fields, field)
	}

	switch {
	case !hasID:
		warnings = append(warnings, fmt.Sprintf("table %s has no id column; a generated id is assumed", table))
	case len(keys) > 1 || (len(keys) == 1 && keys[0] != "id"):
		warnings = append(warnings, fmt.Sprintf("table %s has primary key (%s); key columns are generated as ordinary fields", table, strings.Join(keys, ", ")))
	}

	shape, more, err := schema.Assemble(name, table, fields, opts)
	if err != nil {
		return nil, nil, err
	}
	return shape, append(warnings, more...), nil
}
