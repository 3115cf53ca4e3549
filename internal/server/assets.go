package server

import (
	"embed"
	"io/fs"
)

//go:embed views/*.html
var viewsFS embed.FS

//go:embed static/*
var staticFS embed.FS

func viewsRoot() (fs.FS, error) {
	return fs.Sub(viewsFS, "views")
}

func staticRoot() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
