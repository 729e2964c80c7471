package main

import (
	"embed"
	"io/fs"
)

//go:embed all:frontend
var statusPage embed.FS

// statusPageFS strips the frontend/ prefix so the status page is served
// from the site root.
func statusPageFS() fs.FS {
	sub, err := fs.Sub(statusPage, "frontend")
	if err != nil {
		panic(err)
	}
	return sub
}
