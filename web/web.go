// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
)

//go:embed views/*.tmpl
var views embed.FS

// Templates parses the embedded pages. Every file defines one template
// named after the page: index, status, statusall and file.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(views, "views/*.tmpl"))
}
