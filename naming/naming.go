// Package naming converts identifiers between PascalCase, camelCase,
// snake_case and kebab-case.
//
// Words are split on '_' and '-' and wherever an uppercase letter follows a
// lowercase letter or a digit. A run of consecutive uppercase letters stays
// one word, so "HTTPServer" becomes "Httpserver". Every transform is
// idempotent.
package naming

import (
	"strings"

	"github.com/ridoystarlord/crudforge/apperr"
)

// Identifier carries one name in every supported convention.
type Identifier struct {
	Raw    string
	Pascal string
	Camel  string
	Snake  string
	Kebab  string
}

// NewIdentifier computes all forms of raw.
func NewIdentifier(raw string) (Identifier, error) {
	words, err := splitWords(raw)
	if err != nil {
		return Identifier{}, err
	}
	return Identifier{
		Raw:    raw,
		Pascal: pascal(words),
		Camel:  camel(words),
		Snake:  joinLower(words, "_"),
		Kebab:  joinLower(words, "-"),
	}, nil
}

// String returns the raw name.
func (id Identifier) String() string { return id.Raw }

// ToPascalCase converts s to PascalCase: "job_post" -> "JobPost".
func ToPascalCase(s string) (string, error) {
	words, err := splitWords(s)
	if err != nil {
		return "", err
	}
	return pascal(words), nil
}

// ToCamelCase converts s to camelCase: "job_post" -> "jobPost".
func ToCamelCase(s string) (string, error) {
	words, err := splitWords(s)
	if err != nil {
		return "", err
	}
	return camel(words), nil
}

// ToSnakeCase converts s to snake_case: "JobPost" -> "job_post".
func ToSnakeCase(s string) (string, error) {
	words, err := splitWords(s)
	if err != nil {
		return "", err
	}
	return joinLower(words, "_"), nil
}

// ToKebabCase converts s to kebab-case: "JobPost" -> "job-post".
func ToKebabCase(s string) (string, error) {
	words, err := splitWords(s)
	if err != nil {
		return "", err
	}
	return joinLower(words, "-"), nil
}

func pascal(words []string) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(strings.ToLower(w)))
	}
	return b.String()
}

func camel(words []string) string {
	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i > 0 {
			w = capitalize(w)
		}
		b.WriteString(w)
	}
	return b.String()
}

func joinLower(words []string, sep string) string {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return strings.Join(lowered, sep)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func splitWords(s string) ([]string, error) {
	if s == "" {
		return nil, apperr.Validation("empty identifier")
	}

	var (
		words   []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	var prev byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || c == '-':
			flush()
		case isUpper(c):
			if isLower(prev) || isDigit(prev) {
				flush()
			}
			current.WriteByte(c)
		case isLower(c) || isDigit(c):
			current.WriteByte(c)
		default:
			return nil, apperr.Validation("invalid identifier %q: unexpected character %q", s, c)
		}
		prev = c
	}
	flush()

	if len(words) == 0 {
		return nil, apperr.Validation("empty identifier")
	}
	return words, nil
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
