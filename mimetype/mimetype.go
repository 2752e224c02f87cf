// Package mimetype resolves short type tokens and file extensions into
// canonical Content-Type values.
package mimetype

import (
	"mime"
	"strings"
)

// DefaultType is the fallback for tokens no lookup can resolve.
const DefaultType = "application/octet-stream"

// aliases maps common tokens ahead of stdlib mime, which is driven by the
// host's mime.types and can be missing or surprising in containers.
var aliases = map[string]string{
	"bin":   "application/octet-stream",
	"css":   "text/css",
	"gif":   "image/gif",
	"htm":   "text/html",
	"html":  "text/html",
	"jpeg":  "image/jpeg",
	"jpg":   "image/jpeg",
	"js":    "text/javascript",
	"json":  "application/json",
	"md":    "text/markdown",
	"mjs":   "text/javascript",
	"pdf":   "application/pdf",
	"png":   "image/png",
	"svg":   "image/svg+xml",
	"text":  "text/plain",
	"txt":   "text/plain",
	"xml":   "application/xml",
	"yaml":  "application/yaml",
	"yml":   "application/yaml",
	"woff2": "font/woff2",
}

// Normalize canonicalizes a Content-Type token.
//
// A token containing "/" is treated as a full media type and passed through;
// anything else is resolved as a type alias or file extension, falling back to
// DefaultType. Types that carry textual data are annotated with charset=utf-8
// unless a charset parameter is already present.
func Normalize(token string) string {
	ct := token
	if !strings.Contains(token, "/") {
		ct = Lookup(token)
		if ct == "" {
			ct = DefaultType
		}
	}

	if cs := Charset(ct); cs != "" && !strings.Contains(strings.ToLower(ct), "charset") {
		ct += "; charset=" + cs
	}

	return ct
}

// Lookup resolves a bare token or file extension, with or without the leading
// dot, into a media type without parameters. It returns "" for unknown tokens.
func Lookup(token string) string {
	token = strings.ToLower(strings.TrimPrefix(token, "."))
	if ct, ok := aliases[token]; ok {
		return ct
	}

	ct := mime.TypeByExtension("." + token)
	if ct == "" {
		return ""
	}

	// stdlib may tack on its own parameters
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	return ct
}

// Charset returns the charset a media type should declare, or "" when the
// type carries no textual data.
func Charset(mediaType string) string {
	base := mediaType
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = base[:i]
	}
	base = strings.ToLower(strings.TrimSpace(base))

	switch {
	case strings.HasPrefix(base, "text/"),
		base == "application/json",
		base == "application/javascript",
		base == "application/xml",
		strings.HasSuffix(base, "+json"),
		strings.HasSuffix(base, "+xml"):
		return "utf-8"
	}

	return ""
}
