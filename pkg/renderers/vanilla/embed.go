package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// PageTemplate is the template rendered for the whole page.
	PageTemplate = "templates/page.html"

	StylesheetName = "reportgen.css"
	ScriptName     = "reportgen.js"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the stylesheet and page script so callers can serve them
// over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
