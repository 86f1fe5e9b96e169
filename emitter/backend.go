// Package emitter renders an EntityShape into output-language source files.
//
// Rendering is split between a Backend, which owns the type table and the
// templates, and small view structs built from the shape. Emitters are pure:
// same shape in, same artifact out.
package emitter

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/go-openapi/inflect"

	"github.com/ridoystarlord/crudforge/typemap"
)

//go:embed templates/java/*.tmpl
var javaTemplates embed.FS

// Backend is one output language.
type Backend struct {
	Name      string
	Ext       string
	Types     typemap.Table
	templates *template.Template
}

// Java renders Spring Boot 3 sources.
var Java = &Backend{
	Name:      "java",
	Ext:       ".java",
	Types:     typemap.Java,
	templates: template.Must(template.New("java").Funcs(templateFuncs()).ParseFS(javaTemplates, "templates/java/*.tmpl")),
}

var rules = inflect.NewDefaultRuleset()

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"quote": javaString,
		"join":  strings.Join,
	}
}

// javaString renders s as a Java string literal.
func javaString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}

func (b *Backend) render(name string, data any) string {
	var buf bytes.Buffer
	if err := b.templates.ExecuteTemplate(&buf, name, data); err != nil {
		// Views are built by this package; a failure here is a template bug.
		panic("emitter: rendering " + name + ": " + err.Error())
	}
	return buf.String()
}
