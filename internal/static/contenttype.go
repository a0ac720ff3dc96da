package static

import "path"

// DefaultContentType is used for extensions missing from the table.
const DefaultContentType = "text/plain"

var contentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// ContentType returns the content type for the extension of name.
// Matching is case-sensitive.
func ContentType(name string) string {
	if ct, ok := contentTypes[path.Ext(name)]; ok {
		return ct
	}
	return DefaultContentType
}
