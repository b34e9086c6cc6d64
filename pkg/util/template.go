package util

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
)

// RenderTemplate renders tmplStr with the sprig function map. Missing keys
// are an error, not an empty string: a spec document with holes must never
// reach the orchestrator.
func RenderTemplate(tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New("spectemplate").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(tmplStr)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to execute template")
	}
	return buf.String(), nil
}
