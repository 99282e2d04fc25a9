package main

import (
	"mime"

	"gitlab.com/gitlab-org/labkit/log"
)

// extraMIMETypes covers the file types of progressive web apps that older
// mime databases get wrong or miss
var extraMIMETypes = map[string]string{
	".avif":        "image/avif",
	".mjs":         "text/javascript",
	".wasm":        "application/wasm",
	".webmanifest": "application/manifest+json",
}

func addExtraMIMETypes() {
	for ext, mimeType := range extraMIMETypes {
		if err := mime.AddExtensionType(ext, mimeType); err != nil {
			log.WithError(err).Errorf("failed to add extension: %q with MIME type: %q", ext, mimeType)
		}
	}
}
