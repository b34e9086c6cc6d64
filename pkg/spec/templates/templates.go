// Package templates holds the per-service spec templates shipped with the
// generator. Each template accepts the documented variable set and produces
// one YAML document fragment starting with a `---` separator.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed *.tmpl
var embeddedTemplates embed.FS

// Get retrieves the content of an embedded template file, e.g. "osd.tmpl".
func Get(name string) (string, error) {
	content, err := fs.ReadFile(embeddedTemplates, name)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template '%s': %w", name, err)
	}
	return string(content), nil
}

// List returns the names of all embedded template files.
func List() ([]string, error) {
	entries, err := fs.Glob(embeddedTemplates, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	return entries, nil
}
