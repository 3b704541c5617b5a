// Package web embeds the analysis page served by blockfall-web.
package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"sync"

	"svw.info/blockfall/internal/domain"
)

//go:embed templates/*.tmpl static/*
var assets embed.FS

var (
	once  sync.Once
	pages *template.Template
)

// Page is the data the index template renders.
type Page struct {
	Dimension domain.Dimension
	Target    domain.Target
}

// StaticFS serves the /static assets.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return http.FS(embed.FS{})
	}
	return http.FS(sub)
}

// RenderIndex writes the analysis page for the configured board.
func RenderIndex(w io.Writer, p Page) error {
	once.Do(func() {
		pages = template.Must(template.ParseFS(assets, "templates/*.tmpl"))
	})
	return pages.ExecuteTemplate(w, "index.tmpl", p)
}
