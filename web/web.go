// Package web embeds the static dashboard served next to the API.
package web

import "embed"

//go:embed static
var Static embed.FS
