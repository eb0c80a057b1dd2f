package web

import "embed"

// Assets holds the embedded static pages and HTML templates.
// Handlers access static files via fs.Sub(Assets, "static"); the HTML
// renderer parses templates/rent_info.html directly.
//
//go:embed static templates
var Assets embed.FS
