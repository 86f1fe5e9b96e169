package emitter

import (
	"sort"
	"strings"
)

// Imports is an ordered, deduplicated set of fully qualified imports. Each
// emitter call builds its own.
type Imports struct {
	seen  map[string]bool
	paths []string
}

// Add records paths, ignoring empty and already present entries.
func (im *Imports) Add(paths ...string) {
	if im.seen == nil {
		im.seen = make(map[string]bool)
	}
	for _, p := range paths {
		if p == "" || im.seen[p] {
			continue
		}
		im.seen[p] = true
		im.paths = append(im.paths, p)
	}
}

// List returns the imports sorted, with java.* and javax.* after the rest.
func (im *Imports) List() []string {
	out := append([]string(nil), im.paths...)
	sort.Slice(out, func(i, j int) bool {
		si, sj := isJavaStd(out[i]), isJavaStd(out[j])
		if si != sj {
			return sj
		}
		return out[i] < out[j]
	})
	return out
}

// Block renders the import section, preceded by a newline so a template can
// place it directly under the package line. An empty set renders as "".
func (im *Imports) Block() string {
	list := im.List()
	if len(list) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	prevStd := isJavaStd(list[0])
	for _, p := range list {
		if std := isJavaStd(p); std != prevStd {
			b.WriteString("\n")
			prevStd = std
		}
		b.WriteString("import ")
		b.WriteString(p)
		b.WriteString(";\n")
	}
	return b.String()
}

func isJavaStd(p string) bool {
	return strings.HasPrefix(p, "java.") || strings.HasPrefix(p, "javax.")
}
