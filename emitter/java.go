package emitter

import (
	"path"
	"strings"
	"time"

	"github.com/ridoystarlord/crudforge/schema"
)

// Entity renders the persistence model.
func (b *Backend) Entity(shape *schema.EntityShape) schema.SourceArtifact {
	v := b.newEntityView(shape)

	var im Imports
	im.Add(
		"jakarta.persistence.Column",
		"jakarta.persistence.Entity",
		"jakarta.persistence.GeneratedValue",
		"jakarta.persistence.GenerationType",
		"jakarta.persistence.Id",
		"jakarta.persistence.PrePersist",
		"jakarta.persistence.PreUpdate",
		"jakarta.persistence.Table",
		"java.time.LocalDateTime",
		"java.util.Objects",
	)
	b.fieldImports(&im, shape.Fields)
	v.Imports = im.Block()

	return b.artifact(schema.KindEntity, path.Join("model", v.Class), b.render("entity.java.tmpl", v))
}

// RequestDTO renders the inbound payload: declared fields only, carrying the
// validation annotations.
func (b *Backend) RequestDTO(shape *schema.EntityShape) schema.SourceArtifact {
	v := b.newEntityView(shape)

	var im Imports
	b.fieldImports(&im, shape.Fields)
	validationImports(&im, shape.Fields)

	dto := dtoView{
		Package: v.Package,
		Class:   v.Class + "RequestDTO",
		Imports: im.Block(),
		Fields:  v.Fields,
	}
	return b.artifact(schema.KindRequestDTO, path.Join("dto", dto.Class), b.render("dto.java.tmpl", dto))
}

// ResponseDTO renders the outbound payload: id, declared fields and the
// timestamps, without validation annotations.
func (b *Backend) ResponseDTO(shape *schema.EntityShape) schema.SourceArtifact {
	v := b.newEntityView(shape)

	var im Imports
	b.fieldImports(&im, shape.Fields)
	im.Add("java.time.LocalDateTime")

	fields := make([]fieldView, 0, len(v.Fields)+3)
	fields = append(fields, fieldView{Name: "id", Accessor: "Id", Type: "Long"})
	for _, f := range v.Fields {
		f.Validation = nil
		fields = append(fields, f)
	}
	fields = append(fields,
		fieldView{Name: "createdAt", Accessor: "CreatedAt", Type: "LocalDateTime"},
		fieldView{Name: "updatedAt", Accessor: "UpdatedAt", Type: "LocalDateTime"},
	)

	dto := dtoView{
		Package: v.Package,
		Class:   v.Class + "ResponseDTO",
		Imports: im.Block(),
		Fields:  fields,
	}
	return b.artifact(schema.KindResponseDTO, path.Join("dto", dto.Class), b.render("dto.java.tmpl", dto))
}

// Repository renders the Spring Data repository interface.
func (b *Backend) Repository(shape *schema.EntityShape) schema.SourceArtifact {
	v := b.newEntityView(shape)

	var im Imports
	im.Add(
		v.Package+".model."+v.Class,
		"org.springframework.data.jpa.repository.JpaRepository",
		"org.springframework.data.jpa.repository.Query",
		"org.springframework.data.repository.query.Param",
		"org.springframework.stereotype.Repository",
		"java.time.LocalDateTime",
		"java.util.List",
	)
	v.Imports = im.Block()

	return b.artifact(schema.KindRepository, path.Join("repository", v.Class+"Repository"), b.render("repository.java.tmpl", v))
}

// Service renders the transactional service.
func (b *Backend) Service(shape *schema.EntityShape) schema.SourceArtifact {
	v := b.newEntityView(shape)

	var im Imports
	im.Add(
		v.Package+".model."+v.Class,
		v.Package+".repository."+v.Class+"Repository",
		"jakarta.persistence.EntityNotFoundException",
		"org.springframework.data.domain.Page",
		"org.springframework.data.domain.Pageable",
		"org.springframework.stereotype.Service",
		"org.springframework.transaction.annotation.Transactional",
		"java.util.Optional",
	)
	v.Imports = im.Block()

	return b.artifact(schema.KindService, path.Join("service", v.Class+"Service"), b.render("service.java.tmpl", v))
}

// Controller renders the REST controller working on the DTOs.
func (b *Backend) Controller(shape *schema.EntityShape) schema.SourceArtifact {
	v := b.newEntityView(shape)

	var im Imports
	im.Add(
		v.Package+".dto."+v.Class+"RequestDTO",
		v.Package+".dto."+v.Class+"ResponseDTO",
		v.Package+".model."+v.Class,
		v.Package+".service."+v.Class+"Service",
		"io.swagger.v3.oas.annotations.Operation",
		"io.swagger.v3.oas.annotations.Parameter",
		"io.swagger.v3.oas.annotations.responses.ApiResponse",
		"io.swagger.v3.oas.annotations.responses.ApiResponses",
		"io.swagger.v3.oas.annotations.tags.Tag",
		"jakarta.persistence.EntityNotFoundException",
		"jakarta.validation.Valid",
		"org.springframework.data.domain.Page",
		"org.springframework.data.domain.Pageable",
		"org.springframework.http.HttpStatus",
		"org.springframework.http.ResponseEntity",
		"org.springframework.web.bind.annotation.DeleteMapping",
		"org.springframework.web.bind.annotation.GetMapping",
		"org.springframework.web.bind.annotation.PathVariable",
		"org.springframework.web.bind.annotation.PostMapping",
		"org.springframework.web.bind.annotation.PutMapping",
		"org.springframework.web.bind.annotation.RequestBody",
		"org.springframework.web.bind.annotation.RequestMapping",
		"org.springframework.web.bind.annotation.RestController",
	)
	if v.AllowedOrigin != "" {
		im.Add("org.springframework.web.bind.annotation.CrossOrigin")
	}
	v.Imports = im.Block()

	return b.artifact(schema.KindController, path.Join("controller", v.Class+"Controller"), b.render("controller.java.tmpl", v))
}

type openAPIView struct {
	Package      string
	Imports      string
	Title        string
	Version      string
	Description  string
	ContactName  string
	ContactEmail string
	Servers      []string
}

// OpenAPIConfig renders the API documentation bean.
func (b *Backend) OpenAPIConfig(opts schema.Options) schema.SourceArtifact {
	opts = opts.WithDefaults()

	var im Imports
	im.Add(
		"io.swagger.v3.oas.models.OpenAPI",
		"io.swagger.v3.oas.models.info.Info",
		"io.swagger.v3.oas.models.servers.Server",
		"org.springframework.context.annotation.Bean",
		"org.springframework.context.annotation.Configuration",
		"java.util.List",
	)
	hasContact := opts.API.ContactName != "" || opts.API.ContactEmail != ""
	if hasContact {
		im.Add("io.swagger.v3.oas.models.info.Contact")
	}

	servers := opts.API.Servers
	if len(servers) == 0 {
		servers = []string{"http://localhost:8080"}
	}

	v := openAPIView{
		Package:      opts.BasePackage,
		Imports:      im.Block(),
		Title:        opts.API.Title,
		Version:      opts.API.Version,
		Description:  opts.API.Description,
		ContactName:  opts.API.ContactName,
		ContactEmail: opts.API.ContactEmail,
		Servers:      servers,
	}
	return b.artifact(schema.KindOpenAPIConfig, path.Join("config", "OpenAPIConfig"), b.render("openapi_config.java.tmpl", v))
}

// ExceptionHandler renders the global REST exception advice.
func (b *Backend) ExceptionHandler(opts schema.Options) schema.SourceArtifact {
	opts = opts.WithDefaults()

	var im Imports
	im.Add(
		"jakarta.persistence.EntityNotFoundException",
		"org.slf4j.Logger",
		"org.slf4j.LoggerFactory",
		"org.springframework.http.HttpStatus",
		"org.springframework.http.ResponseEntity",
		"org.springframework.validation.FieldError",
		"org.springframework.web.bind.MethodArgumentNotValidException",
		"org.springframework.web.bind.annotation.ExceptionHandler",
		"org.springframework.web.bind.annotation.RestControllerAdvice",
		"java.time.LocalDateTime",
		"java.util.HashMap",
		"java.util.LinkedHashMap",
		"java.util.Map",
	)

	v := struct {
		Package string
		Imports string
	}{opts.BasePackage, im.Block()}
	return b.artifact(schema.KindExceptionHandler, path.Join("exception", "GlobalExceptionHandler"), b.render("exception_handler.java.tmpl", v))
}

// Migration renders a migration script at relPath, which is relative to the
// resources root.
func (b *Backend) Migration(relPath, description, sql string, created time.Time) schema.SourceArtifact {
	v := struct {
		Description string
		Created     string
		SQL         string
	}{
		Description: strings.Join(strings.Fields(description), " "),
		Created:     created.UTC().Format(time.RFC3339),
		SQL:         strings.TrimRight(sql, "\n"),
	}
	return schema.SourceArtifact{
		Kind:         schema.KindMigration,
		RelativePath: relPath,
		Content:      b.render("migration.sql.tmpl", v),
	}
}

func (b *Backend) artifact(kind schema.ArtifactKind, name, content string) schema.SourceArtifact {
	return schema.SourceArtifact{
		Kind:         kind,
		RelativePath: name + b.Ext,
		Content:      content,
	}
}
