package schema

import "github.com/ridoystarlord/crudforge/naming"

// EntityShape is the normalized description of one entity. The implicit
// id, createdAt and updatedAt members never appear in Fields.
type EntityShape struct {
	Name    naming.Identifier
	Table   string
	Fields  []FieldSpec
	Options Options
}

type FieldSpec struct {
	Name         naming.Identifier
	AbstractType string
	Required     bool
	Constraints  Constraints
	Source       *ColumnMeta // set only for introspected fields
}

type Constraints struct {
	MinLength *int
	MaxLength *int
	IsEmail   bool
}

// HasLength reports whether a min or max length is set.
func (c Constraints) HasLength() bool {
	return c.MinLength != nil || c.MaxLength != nil
}

// ColumnMeta is one column as reported by the database catalog.
type ColumnMeta struct {
	Name             string
	SQLType          string
	Nullable         bool
	HasDefault       bool
	IsPrimaryKey     bool
	MaxLength        *int
	NumericPrecision *int
	NumericScale     *int
}

// Options carries the per-invocation rendering settings.
type Options struct {
	BasePackage   string
	APIPrefix     string
	AllowedOrigin string
	API           APIInfo
}

// APIInfo feeds the generated OpenAPI configuration.
type APIInfo struct {
	Title        string
	Version      string
	Description  string
	ContactName  string
	ContactEmail string
	Servers      []string
}

type ArtifactKind string

const (
	KindEntity           ArtifactKind = "entity"
	KindRequestDTO       ArtifactKind = "request_dto"
	KindResponseDTO      ArtifactKind = "response_dto"
	KindRepository       ArtifactKind = "repository"
	KindService          ArtifactKind = "service"
	KindController       ArtifactKind = "controller"
	KindMigration        ArtifactKind = "migration"
	KindOpenAPIConfig    ArtifactKind = "openapi_config"
	KindExceptionHandler ArtifactKind = "exception_handler"
)

// SourceArtifact is one generated file, relative to its output root.
type SourceArtifact struct {
	Kind         ArtifactKind
	RelativePath string
	Content      string
}

// IsResource reports whether the artifact belongs under the resources root
// rather than the source root.
func (a SourceArtifact) IsResource() bool {
	return a.Kind == KindMigration
}
