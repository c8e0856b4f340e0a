// Package web embeds the page templates, browser scripts and locale files so
// the binary serves them without runtime filesystem paths.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html templates/layouts/*.html static/css/*.css static/js/*.js locales/*.toml
var ContentFS embed.FS

// Sub returns the embedded subtree rooted at dir
func Sub(dir string) fs.FS {
	sub, err := fs.Sub(ContentFS, dir)
	if err != nil {
		// dir is one of the embedded directories; this cannot fail at runtime
		panic(err)
	}
	return sub
}

// NewEngine creates the template engine over the embedded templates
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(Sub("templates")), ".html")

	// style values come from the render tree and are already CSS
	engine.AddFunc("css", func(s string) template.CSS {
		return template.CSS(s)
	})

	return engine
}
