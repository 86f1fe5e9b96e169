package schema

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/crudforge/apperr"
	"github.com/ridoystarlord/crudforge/naming"
	"github.com/ridoystarlord/crudforge/typemap"
	"github.com/ridoystarlord/crudforge/validator"
)

const (
	DefaultBasePackage = "com.example.app"
	DefaultAPIPrefix   = "/api/v1"
)

// EntityRequest is a hand-written entity description, as received from a
// tool call or an entities file.
type EntityRequest struct {
	EntityName string         `json:"entityName" yaml:"entityName" mapstructure:"entityName"`
	Fields     []FieldRequest `json:"fields" yaml:"fields" mapstructure:"fields"`
}

type FieldRequest struct {
	Name      string `json:"name" yaml:"name" mapstructure:"name"`
	Type      string `json:"type" yaml:"type" mapstructure:"type"`
	Required  *bool  `json:"required,omitempty" yaml:"required" mapstructure:"required"`
	Nullable  *bool  `json:"nullable,omitempty" yaml:"nullable" mapstructure:"nullable"`
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength" mapstructure:"minLength"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength" mapstructure:"maxLength"`
	IsEmail   bool   `json:"isEmail,omitempty" yaml:"isEmail" mapstructure:"isEmail"`
}

// isRequired resolves the required flag. An explicit required wins; the
// legacy nullable:false means required.
func (f FieldRequest) isRequired() bool {
	if f.Required != nil {
		return *f.Required
	}
	if f.Nullable != nil {
		return !*f.Nullable
	}
	return false
}

// WithDefaults fills unset options.
func (o Options) WithDefaults() Options {
	if o.BasePackage == "" {
		o.BasePackage = DefaultBasePackage
	}
	if strings.TrimSpace(o.APIPrefix) == "" {
		o.APIPrefix = DefaultAPIPrefix
	}
	o.APIPrefix = "/" + strings.Trim(strings.TrimSpace(o.APIPrefix), "/")
	if o.API.Title == "" {
		o.API.Title = "Generated API"
	}
	if o.API.Version == "" {
		o.API.Version = "1.0.0"
	}
	return o
}

// Build validates req and turns it into an EntityShape. The returned
// warnings are non-fatal notes such as type fallbacks.
func Build(req EntityRequest, opts Options) (*EntityShape, []string, error) {
	if strings.TrimSpace(req.EntityName) == "" {
		return nil, nil, apperr.Validation("entityName is required")
	}
	name, err := naming.NewIdentifier(req.EntityName)
	if err != nil {
		return nil, nil, apperr.Validation("invalid entity name %q", req.EntityName)
	}

	var warnings []string
	fields := make([]FieldSpec, 0, len(req.Fields))
	for i, f := range req.Fields {
		field, warning, err := buildField(i, f)
		if err != nil {
			return nil, nil, err
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
		fields = append(fields, field)
	}

	shape, more, err := Assemble(name, name.Snake, fields, opts)
	if err != nil {
		return nil, nil, err
	}
	return shape, append(warnings, more...), nil
}

func buildField(i int, f FieldRequest) (FieldSpec, string, error) {
	if strings.TrimSpace(f.Name) == "" {
		return FieldSpec{}, "", apperr.Validation("field %d: name is required", i+1)
	}
	id, err := naming.NewIdentifier(f.Name)
	if err != nil {
		return FieldSpec{}, "", apperr.Validation("invalid field name %q", f.Name)
	}

	var warning string
	abstract := strings.ToLower(strings.TrimSpace(f.Type))
	if abstract == "" {
		abstract = typemap.String
	}
	if !typemap.Known(abstract) {
		warning = fmt.Sprintf("field %s: unknown type %q, using String", id.Camel, f.Type)
		abstract = typemap.String
	}
	mapping := typemap.Java.Resolve(abstract)

	c := Constraints{MinLength: f.MinLength, MaxLength: f.MaxLength, IsEmail: f.IsEmail}
	if err := checkConstraints(id.Camel, mapping.OutputType, c); err != nil {
		return FieldSpec{}, "", err
	}

	return FieldSpec{
		Name:         id,
		AbstractType: abstract,
		Required:     f.isRequired(),
		Constraints:  c,
	}, warning, nil
}

func checkConstraints(field, outputType string, c Constraints) error {
	if c.MinLength != nil && *c.MinLength < 0 {
		return apperr.Validation("field %s: minLength must not be negative", field)
	}
	if c.MaxLength != nil && *c.MaxLength < 0 {
		return apperr.Validation("field %s: maxLength must not be negative", field)
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return apperr.Validation("field %s: minLength %d exceeds maxLength %d", field, *c.MinLength, *c.MaxLength)
	}
	if outputType != "String" {
		if c.HasLength() {
			return apperr.Validation("field %s: length constraints require a string type", field)
		}
		if c.IsEmail {
			return apperr.Validation("field %s: isEmail requires a string type", field)
		}
	}
	return nil
}

var implicitFields = map[string]bool{"id": true, "createdAt": true, "updatedAt": true}

// Assemble checks the shape-wide invariants over already normalized fields
// and returns the finished shape. It is shared by the hand-written and the
// introspected paths.
func Assemble(name naming.Identifier, table string, fields []FieldSpec, opts Options) (*EntityShape, []string, error) {
	if err := validator.ValidateEntityName(name.Pascal, name.Camel); err != nil {
		return nil, nil, apperr.Validation("%s", err.Error())
	}

	seen := make(map[string]bool, len(fields))
	camelNames := make([]string, 0, len(fields))
	for _, f := range fields {
		camel := f.Name.Camel
		if implicitFields[camel] {
			return nil, nil, apperr.Validation("field %q collides with the implicit %s field", f.Name.Raw, camel)
		}
		if seen[camel] {
			return nil, nil, apperr.Validation("duplicate field %q", camel)
		}
		seen[camel] = true
		camelNames = append(camelNames, camel)
	}

	result := validator.ValidateEntity(table, camelNames)
	if !result.Valid {
		return nil, nil, apperr.Validation("%s", result.FirstError())
	}

	return &EntityShape{
		Name:    name,
		Table:   table,
		Fields:  fields,
		Options: opts.WithDefaults(),
	}, result.WarningMessages(), nil
}
