package emitter

import (
	"fmt"
	"path"
	"strings"

	"github.com/ridoystarlord/crudforge/schema"
	"github.com/ridoystarlord/crudforge/typemap"
)

type entityView struct {
	Package       string
	Class         string
	Var           string
	Plural        string // pluralized class name, e.g. JobPosts
	Table         string
	BasePath      string
	Human         string
	HumanPlural   string
	AllowedOrigin string
	Imports       string
	Fields        []fieldView
}

type fieldView struct {
	Name        string
	Accessor    string
	Type        string
	ColumnAttrs string
	Validation  []string
}

type dtoView struct {
	Package string
	Class   string
	Imports string
	Fields  []fieldView
}

func (b *Backend) newEntityView(shape *schema.EntityShape) entityView {
	opts := shape.Options.WithDefaults()
	human := strings.ReplaceAll(shape.Name.Snake, "_", " ")
	return entityView{
		Package:       opts.BasePackage,
		Class:         shape.Name.Pascal,
		Var:           shape.Name.Camel,
		Plural:        rules.Pluralize(shape.Name.Pascal),
		Table:         shape.Table,
		BasePath:      path.Join(opts.APIPrefix, shape.Name.Kebab),
		Human:         human,
		HumanPlural:   rules.Pluralize(human),
		AllowedOrigin: opts.AllowedOrigin,
		Fields:        b.fieldViews(shape.Fields),
	}
}

func (b *Backend) fieldViews(fields []schema.FieldSpec) []fieldView {
	views := make([]fieldView, 0, len(fields))
	for _, f := range fields {
		views = append(views, fieldView{
			Name:        f.Name.Camel,
			Accessor:    f.Name.Pascal,
			Type:        b.Types.Resolve(f.AbstractType).OutputType,
			ColumnAttrs: columnAttrs(f),
			Validation:  validationAnnotations(f),
		})
	}
	return views
}

// fieldImports adds the imports needed by the field types, including those
// implied by the spelled-out output type.
func (b *Backend) fieldImports(im *Imports, fields []schema.FieldSpec) {
	for _, f := range fields {
		m := b.Types.Resolve(f.AbstractType)
		im.Add(m.Import)
		im.Add(typemap.ExtraImports(m.OutputType)...)
	}
}

func columnName(f schema.FieldSpec) string {
	if f.Source != nil {
		return f.Source.Name
	}
	return f.Name.Snake
}

func columnAttrs(f schema.FieldSpec) string {
	attrs := []string{fmt.Sprintf("name = %s", javaString(columnName(f)))}
	if f.Constraints.MaxLength != nil {
		attrs = append(attrs, fmt.Sprintf("length = %d", *f.Constraints.MaxLength))
	}
	if f.Source != nil && f.AbstractType == "decimal" && f.Source.NumericPrecision != nil {
		attrs = append(attrs, fmt.Sprintf("precision = %d", *f.Source.NumericPrecision))
		if f.Source.NumericScale != nil {
			attrs = append(attrs, fmt.Sprintf("scale = %d", *f.Source.NumericScale))
		}
	}
	if f.Required {
		attrs = append(attrs, "nullable = false")
	}
	return strings.Join(attrs, ", ")
}

// validationAnnotations returns the request-side constraint annotations in
// a fixed order: presence, length, format.
func validationAnnotations(f schema.FieldSpec) []string {
	var out []string
	name := f.Name.Camel
	c := f.Constraints

	if f.Required {
		out = append(out, fmt.Sprintf("@NotNull(message = %s)", javaString(name+" is required")))
	}

	switch {
	case c.MinLength != nil && c.MaxLength != nil:
		msg := fmt.Sprintf("%s must be between %d and %d characters", name, *c.MinLength, *c.MaxLength)
		out = append(out, fmt.Sprintf("@Size(min = %d, max = %d, message = %s)", *c.MinLength, *c.MaxLength, javaString(msg)))
	case c.MaxLength != nil:
		msg := fmt.Sprintf("%s must be at most %d characters", name, *c.MaxLength)
		out = append(out, fmt.Sprintf("@Size(max = %d, message = %s)", *c.MaxLength, javaString(msg)))
	case c.MinLength != nil:
		msg := fmt.Sprintf("%s must be at least %d characters", name, *c.MinLength)
		out = append(out, fmt.Sprintf("@Size(min = %d, message = %s)", *c.MinLength, javaString(msg)))
	}

	if c.IsEmail {
		out = append(out, fmt.Sprintf("@Email(message = %s)", javaString(name+" must be a valid email address")))
	}
	return out
}

func validationImports(im *Imports, fields []schema.FieldSpec) {
	for _, f := range fields {
		if f.Required {
			im.Add("jakarta.validation.constraints.NotNull")
		}
		if f.Constraints.HasLength() {
			im.Add("jakarta.validation.constraints.Size")
		}
		if f.Constraints.IsEmail {
			im.Add("jakarta.validation.constraints.Email")
		}
	}
}
