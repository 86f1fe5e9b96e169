package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ridoystarlord/crudforge/apperr"
	"github.com/ridoystarlord/crudforge/generator"
	"github.com/ridoystarlord/crudforge/introspect"
	"github.com/ridoystarlord/crudforge/schema"
)

var errNoConnector = errors.New("no database configured")

type tableArgs struct {
	TableName string `mapstructure:"tableName"`
}

type migrationArgs struct {
	Description          string `mapstructure:"description"`
	SQL                  string `mapstructure:"sql"`
	schema.EntityRequest `mapstructure:",squash"`
}

func (a *Adapter) generateFamily(family generator.Family) handler {
	return func(ctx context.Context, s Settings, args map[string]any) (*Result, error) {
		var req schema.EntityRequest
		if err := decode(args, &req); err != nil {
			return nil, err
		}
		shape, warnings, err := schema.Build(req, s.Options)
		if err != nil {
			return nil, err
		}
		return a.write(s, shape.Name.Pascal, generator.Generate(a.backend, shape, family), warnings)
	}
}

func (a *Adapter) generateFromTable(family generator.Family) handler {
	return func(ctx context.Context, s Settings, args map[string]any) (*Result, error) {
		table, err := tableName(args)
		if err != nil {
			return nil, err
		}

		db, err := a.open(ctx)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		cols, err := introspect.New(db, s.DBSchema).Columns(ctx, table)
		if err != nil {
			return nil, err
		}
		shape, warnings, err := introspect.ShapeFromColumns(table, cols, s.Options)
		if err != nil {
			return nil, err
		}
		return a.write(s, shape.Name.Pascal, generator.Generate(a.backend, shape, family), warnings)
	}
}

func (a *Adapter) setupInfrastructure(ctx context.Context, s Settings, args map[string]any) (*Result, error) {
	return a.write(s, "API infrastructure", generator.Infrastructure(a.backend, s.Options.WithDefaults()), nil)
}

func (a *Adapter) listTables(ctx context.Context, s Settings, args map[string]any) (*Result, error) {
	db, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	in := introspect.New(db, s.DBSchema)
	tables, err := in.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	return textResult(formatTables(schemaName(s), tables), nil), nil
}

func (a *Adapter) describeTable(ctx context.Context, s Settings, args map[string]any) (*Result, error) {
	table, err := tableName(args)
	if err != nil {
		return nil, err
	}

	db, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	cols, err := introspect.New(db, s.DBSchema).Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	return textResult(formatColumns(table, cols), nil), nil
}

func (a *Adapter) createMigration(ctx context.Context, s Settings, args map[string]any) (*Result, error) {
	var m migrationArgs
	if err := decode(args, &m); err != nil {
		return nil, err
	}
	if strings.TrimSpace(m.Description) == "" {
		return nil, apperr.Validation("description is required")
	}

	var warnings []string
	sql := m.SQL
	if strings.TrimSpace(sql) == "" {
		if strings.TrimSpace(m.EntityName) == "" {
			return nil, apperr.Validation("either sql or entityName with fields is required")
		}
		shape, more, err := schema.Build(m.EntityRequest, s.Options)
		if err != nil {
			return nil, err
		}
		warnings = more
		sql = generator.CreateTableSQL(shape)
	}

	artifact, err := generator.NewMigration(a.backend, m.Description, sql, a.now())
	if err != nil {
		return nil, err
	}
	return a.write(s, "migration", []schema.SourceArtifact{artifact}, warnings)
}

func (a *Adapter) analyzePerformance(ctx context.Context, s Settings, args map[string]any) (*Result, error) {
	db, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	report, err := introspect.New(db, s.DBSchema).Analyze(ctx)
	if err != nil {
		return nil, err
	}
	return textResult(formatReport(schemaName(s), report), nil), nil
}

// write persists artifacts and lists what was written. On failure the files
// already written stay on disk.
func (a *Adapter) write(s Settings, subject string, artifacts []schema.SourceArtifact, warnings []string) (*Result, error) {
	written, err := s.Writer.WriteAll(artifacts)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generated %d file(s) for %s:\n", len(written), subject)
	for _, p := range written {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	if len(warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return textResult(b.String(), warnings), nil
}

func tableName(args map[string]any) (string, error) {
	var t tableArgs
	if err := decode(args, &t); err != nil {
		return "", err
	}
	if strings.TrimSpace(t.TableName) == "" {
		return "", apperr.Validation("tableName is required")
	}
	return strings.TrimSpace(t.TableName), nil
}

func schemaName(s Settings) string {
	if s.DBSchema == "" {
		return "public"
	}
	return s.DBSchema
}
