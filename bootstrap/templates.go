package bootstrap

import (
	"embed"
	"io/fs"

	"github.com/artpar/actionkit/web"
)

//go:embed templates
var templateFS embed.FS

// NewTemplates parses the embedded taskboard templates.
func NewTemplates() (*web.Templates, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	return web.NewTemplates(sub)
}
