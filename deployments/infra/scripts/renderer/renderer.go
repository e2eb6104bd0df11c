package renderer

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/kellendonk/webv2/internal/edge"
)

const templateGlob = "templates/*.tmpl"

//go:embed templates/*.tmpl
var tplFS embed.FS

var ErrUnknownTemplate = errors.New("unknown template")

// templates parses every embedded template once. Template names are the file
// base names.
var templates = sync.OnceValues(func() (*template.Template, error) {
	return template.New("").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		ParseFS(tplFS, templateGlob)
})

// Render merges the named template with data.
func Render(name TemplateName, data any) (string, error) {
	root, err := templates()
	if err != nil {
		return "", fmt.Errorf("parsing templates %q: %w", templateGlob, err)
	}

	t := root.Lookup(string(name))
	if t == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", name, err)
	}
	return buf.String(), nil
}

// MustRender is Render for synthesis code, where a broken template is a
// programming error.
func MustRender(name TemplateName, data any) string {
	out, err := Render(name, data)
	if err != nil {
		panic(err)
	}
	return out
}

// WebsiteViewerRequest renders the CloudFront Function applying
// edge.WebsiteTransformer rules with cfg baked in.
func WebsiteViewerRequest(cfg edge.Config) (string, error) {
	return Render(TplWebsiteViewerRequest, FunctionData{Props: cfg})
}

// ApiKeyViewerRequest renders the CloudFront Function applying
// edge.ApiKeyTransformer rules with cfg baked in.
func ApiKeyViewerRequest(cfg edge.ApiKeyConfig) (string, error) {
	return Render(TplApiKeyViewerRequest, FunctionData{Props: cfg})
}
