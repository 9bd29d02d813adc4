// Package web embeds the static chat UI served next to the API.
package web

import "embed"

//go:embed static
var Static embed.FS
