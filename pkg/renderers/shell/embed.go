package shell

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl templates/fragments/*.tpl
var embeddedTemplates embed.FS

// BaseTemplate is the path of the page shell inside TemplatesFS.
const BaseTemplate = "templates/base.tpl"

// AnalyseFragment renders the upload form with its validation feedback.
const AnalyseFragment = "templates/fragments/analyse.tpl"

// TemplatesFS exposes the embedded shell templates so callers can copy it as a
// starting point for their own WithTemplatesFS bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
