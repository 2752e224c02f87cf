package respond

import (
	"github.com/spf13/afero"

	"github.com/mintleaf-web/respond/etag"
	"github.com/mintleaf-web/respond/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithBufferThreshold sets the string body length at which Send materializes
// the body into a byte buffer before measuring it. Purely a tuning knob.
func WithBufferThreshold(n int) func(*Responder) {
	return func(d *Responder) {
		d.cfg.bufferThreshold = n
	}
}

// WithETag sets the generator deriving ETag validators from body bytes.
//
// [etag.Weak] is the default; [etag.Strong] or any custom generator works.
func WithETag(fn etag.Generator) func(*Responder) {
	return func(d *Responder) {
		d.cfg.bodyETag = fn
		d.cfg.fileETag = fn != nil
	}
}

// WithoutETag disables ETag generation for bodies and files alike.
func WithoutETag() func(*Responder) {
	return WithETag(nil)
}

// WithFs sets the filesystem SendFile and Download deliver from.
//
// The operating system's filesystem is used by default.
func WithFs(fsys afero.Fs) func(*Responder) {
	return func(d *Responder) {
		d.fs = fsys
	}
}

// WithJSONEscape turns on replacing <, >, and & in serialized JSON with
// their unicode escapes, for JSON embedded into HTML documents.
func WithJSONEscape() func(*Responder) {
	return func(d *Responder) {
		d.cfg.jsonEscape = true
	}
}

// WithJSONReplacer sets a ReplacerFunc applied to every key-value pair
// before JSON serialization.
func WithJSONReplacer(fn ReplacerFunc) func(*Responder) {
	return func(d *Responder) {
		d.cfg.jsonReplacer = fn
	}
}

// WithJSONSpaces indents serialized JSON with n spaces per level.
func WithJSONSpaces(n int) func(*Responder) {
	return func(d *Responder) {
		d.cfg.jsonSpaces = n
	}
}

// WithJSONPCallback sets the query parameter JSONP reads the callback
// function name from, "callback" being the default.
func WithJSONPCallback(name string) func(*Responder) {
	return func(d *Responder) {
		if name != "" {
			d.cfg.jsonpCallback = name
		}
	}
}

// WithLogger sets the provided implementation of logger.Logger in order to
// log all statements through it.
//
// If no logger is provided through this option, a default one is configured.
func WithLogger(log logger.Logger) func(*Responder) {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithSigningSecret sets the secret signed cookies are HMACed with.
//
// Requesting a signed cookie without this option is a configuration error.
func WithSigningSecret(secret string) func(*Responder) {
	return func(d *Responder) {
		d.cfg.signingSecret = secret
	}
}
