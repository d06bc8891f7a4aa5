// Package web embeds the server-rendered HTML assets so the binary ships
// self-contained.
package web

import "embed"

// Templates holds the HTML templates under templates/.
//
//go:embed templates/*.html
var Templates embed.FS
