package trendminer

import (
	"io/fs"

	"github.com/goliatone/go-trendminer/pkg/renderers/shell"
)

// EmbeddedTemplates exposes the built-in page shell and fragment templates so
// callers can copy or extend them and pass the result to WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return shell.TemplatesFS()
}
