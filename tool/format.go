package tool

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/crudforge/introspect"
	"github.com/ridoystarlord/crudforge/schema"
)

func formatTables(dbSchema string, tables []introspect.TableInfo) string {
	if len(tables) == 0 {
		return fmt.Sprintf("No tables found in schema %s\n", dbSchema)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Tables in schema %s:\n", dbSchema)
	for _, t := range tables {
		fmt.Fprintf(&b, "- %s (%s)\n", t.Name, t.Type)
	}
	return b.String()
}

// formatColumns lists columns as "- name: type(len) NOT NULL".
func formatColumns(table string, cols []schema.ColumnMeta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table %s:\n", table)
	for _, c := range cols {
		typ := c.SQLType
		if c.MaxLength != nil {
			typ = fmt.Sprintf("%s(%d)", typ, *c.MaxLength)
		}
		null := "NULL"
		if !c.Nullable {
			null = "NOT NULL"
		}
		fmt.Fprintf(&b, "- %s: %s %s", c.Name, typ, null)
		if c.IsPrimaryKey {
			b.WriteString(" PRIMARY KEY")
		}
		if c.HasDefault {
			b.WriteString(" DEFAULT")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatReport(dbSchema string, r *introspect.PerformanceReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Performance report for schema %s\n", dbSchema)

	b.WriteString("\nSlow queries:\n")
	if len(r.SlowQueries) == 0 {
		b.WriteString("- none\n")
	}
	for _, q := range r.SlowQueries {
		fmt.Fprintf(&b, "- %.2fms avg, %d calls, %d rows: %s\n", q.MeanTime, q.Calls, q.Rows, oneLine(q.Query))
	}

	b.WriteString("\nColumn statistics:\n")
	if len(r.TableStats) == 0 {
		b.WriteString("- none\n")
	}
	for _, s := range r.TableStats {
		fmt.Fprintf(&b, "- %s.%s: n_distinct=%g", s.Table, s.Column, s.NDistinct)
		if s.Correlation != nil {
			fmt.Fprintf(&b, ", correlation=%.2f", *s.Correlation)
		}
		b.WriteString("\n")
	}

	if r.Note != "" {
		fmt.Fprintf(&b, "\nNote: %s\n", r.Note)
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
