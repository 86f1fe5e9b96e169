package generator

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/ridoystarlord/crudforge/apperr"
	"github.com/ridoystarlord/crudforge/emitter"
	"github.com/ridoystarlord/crudforge/schema"
	"github.com/ridoystarlord/crudforge/typemap"
)

// Family is an ordered set of artifacts generated together.
type Family []schema.ArtifactKind

var (
	EntityOnly     = Family{schema.KindEntity}
	FullCRUD       = Family{schema.KindEntity, schema.KindRepository, schema.KindService, schema.KindController}
	DTOs           = Family{schema.KindRequestDTO, schema.KindResponseDTO}
	ControllerOnly = Family{schema.KindController}
	TableCRUD      = Family{
		schema.KindEntity, schema.KindRequestDTO, schema.KindResponseDTO,
		schema.KindRepository, schema.KindService, schema.KindController,
	}
)

// MigrationDir is where migration scripts live, relative to the resources root.
const MigrationDir = "db/migration"

// Generate renders every artifact of family for shape, in family order.
func Generate(b *emitter.Backend, shape *schema.EntityShape, family Family) []schema.SourceArtifact {
	artifacts := make([]schema.SourceArtifact, 0, len(family))
	for _, kind := range family {
		switch kind {
		case schema.KindEntity:
			artifacts = append(artifacts, b.Entity(shape))
		case schema.KindRequestDTO:
			artifacts = append(artifacts, b.RequestDTO(shape))
		case schema.KindResponseDTO:
			artifacts = append(artifacts, b.ResponseDTO(shape))
		case schema.KindRepository:
			artifacts = append(artifacts, b.Repository(shape))
		case schema.KindService:
			artifacts = append(artifacts, b.Service(shape))
		case schema.KindController:
			artifacts = append(artifacts, b.Controller(shape))
		}
	}
	return artifacts
}

// Infrastructure renders the cross-cutting API configuration artifacts.
func Infrastructure(b *emitter.Backend, opts schema.Options) []schema.SourceArtifact {
	return []schema.SourceArtifact{
		b.OpenAPIConfig(opts),
		b.ExceptionHandler(opts),
	}
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	validSlug     = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// MigrationFilename returns the versioned migration path for description:
// db/migration/V<yyyyMMddHHmmss>__<slug>.sql, with the timestamp in UTC.
func MigrationFilename(description string, at time.Time) (string, error) {
	slug := strings.ToLower(whitespaceRun.ReplaceAllString(description, "_"))
	if !validSlug.MatchString(slug) {
		return "", apperr.Validation("migration description %q must contain only letters, digits and whitespace", description)
	}

	timestamp := at.UTC().Format("20060102150405")
	return path.Join(MigrationDir, fmt.Sprintf("V%s__%s.sql", timestamp, slug)), nil
}

// NewMigration builds the migration artifact for description and sql.
func NewMigration(b *emitter.Backend, description, sql string, at time.Time) (schema.SourceArtifact, error) {
	if strings.TrimSpace(sql) == "" {
		return schema.SourceArtifact{}, apperr.Validation("migration sql is required")
	}
	name, err := MigrationFilename(description, at)
	if err != nil {
		return schema.SourceArtifact{}, err
	}
	return b.Migration(name, description, sql, at), nil
}

// CreateTableSQL synthesizes the DDL matching the generated entity: a
// BIGSERIAL id, one column per field and the two timestamps.
func CreateTableSQL(shape *schema.EntityShape) string {
	columns := []string{`"id" BIGSERIAL PRIMARY KEY`}
	for _, f := range shape.Fields {
		maxLength := 0
		if f.Constraints.MaxLength != nil {
			maxLength = *f.Constraints.MaxLength
		}
		col := fmt.Sprintf(`"%s" %s`, columnName(f), typemap.DDL(f.AbstractType, maxLength))
		if f.Required {
			col += " NOT NULL"
		}
		columns = append(columns, col)
	}
	columns = append(columns,
		`"created_at" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP`,
		`"updated_at" TIMESTAMP`,
	)

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE \"%s\" (\n", shape.Table)
	for i, col := range columns {
		b.WriteString("    ")
		b.WriteString(col)
		if i < len(columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");\n")
	fmt.Fprintf(&b, "\n-- Rollback: DROP TABLE IF EXISTS \"%s\";\n", shape.Table)
	return b.String()
}

func columnName(f schema.FieldSpec) string {
	if f.Source != nil {
		return f.Source.Name
	}
	return f.Name.Snake
}
