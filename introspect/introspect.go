package introspect

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ridoystarlord/crudforge/apperr"
	"github.com/ridoystarlord/crudforge/schema"
)

// Querier is the part of *sql.DB the introspector needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Introspector reads table metadata from the PostgreSQL catalog.
type Introspector struct {
	q      Querier
	schema string
}

// New returns an introspector reading tables of dbSchema ("public" when empty).
func New(q Querier, dbSchema string) *Introspector {
	if dbSchema == "" {
		dbSchema = "public"
	}
	return &Introspector{q: q, schema: dbSchema}
}

type TableInfo struct {
	Name string
	Type string // BASE TABLE, VIEW, ...
}

// ListTables returns every table and view of the configured schema.
func (in *Introspector) ListTables(ctx context.Context) ([]TableInfo, error) {
	tablesQuery := `
	SELECT table_name, table_type
	FROM information_schema.tables
	WHERE table_schema = $1
	ORDER BY table_name;
	`

	rows, err := in.q.QueryContext(ctx, tablesQuery, in.schema)
	if err != nil {
		return nil, apperr.Query("list tables", err)
	}
	defer rows.Close()

	var tables []TableInfo
	for rows.Next() {
		var t TableInfo
		if err := rows.Scan(&t.Name, &t.Type); err != nil {
			return nil, apperr.Query("list tables", fmt.Errorf("scanning table name: %w", err))
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Query("list tables", fmt.Errorf("iterating table rows: %w", err))
	}

	return tables, nil
}

// Columns returns the columns of table in ordinal order. A table without
// columns is reported as unknown.
func (in *Introspector) Columns(ctx context.Context, table string) ([]schema.ColumnMeta, error) {
	if table == "" {
		return nil, apperr.Validation("tableName is required")
	}

	columnsQuery := `
	SELECT
		c.column_name,
		c.data_type,
		(c.is_nullable = 'YES') AS is_nullable,
		(c.column_default IS NOT NULL) AS has_default,
		c.character_maximum_length,
		c.numeric_precision,
		c.numeric_scale,
		EXISTS (
			SELECT 1
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON tc.constraint_name = kcu.constraint_name
				AND tc.table_schema = kcu.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
				AND tc.table_schema = c.table_schema
				AND tc.table_name = c.table_name
				AND kcu.column_name = c.column_name
		) AS is_primary
	FROM information_schema.columns c
	WHERE c.table_schema = $1 AND c.table_name = $2
	ORDER BY c.ordinal_position;
	`

	op := "describe table " + table
	rows, err := in.q.QueryContext(ctx, columnsQuery, in.schema, table)
	if err != nil {
		return nil, apperr.Query(op, err)
	}
	defer rows.Close()

	var columns []schema.ColumnMeta
	for rows.Next() {
		var (
			col                      schema.ColumnMeta
			maxLen, precision, scale sql.NullInt64
		)
		if err := rows.Scan(
			&col.Name,
			&col.SQLType,
			&col.Nullable,
			&col.HasDefault,
			&maxLen,
			&precision,
			&scale,
			&col.IsPrimaryKey,
		); err != nil {
			return nil, apperr.Query(op, fmt.Errorf("scanning column: %w", err))
		}
		col.MaxLength = intOrNil(maxLen)
		col.NumericPrecision = intOrNil(precision)
		col.NumericScale = intOrNil(scale)
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Query(op, fmt.Errorf("iterating column rows: %w", err))
	}

	if len(columns) == 0 {
		return nil, apperr.Validation("table %q not found in schema %q", table, in.schema)
	}

	return columns, nil
}

func intOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
