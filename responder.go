package respond

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/spf13/afero"

	"github.com/mintleaf-web/respond/etag"
	"github.com/mintleaf-web/respond/logger"
)

// Responder maintains reusable pieces for responding to HTTP requests.
//
// Most oftentimes, setting up a single instance of a Responder suffices for
// an application. Meaning, one needs only application-wide configuration of
// how HTTP responses should look. Our suggestion does not exclude creating
// diverse Responders for non-overlapping segments of an application.
//
// When handling a specific HTTP request, calling code asks the Responder for
// a [*Context] and works through its methods.
type Responder struct {
	logger logger.Logger

	// Filesystem files are delivered from
	fs afero.Fs

	// Pool of *bytes.Buffer to serialize bodies into
	pool *sync.Pool

	cfg config
}

// config are the per-application knobs a *Context consults while writing.
type config struct {
	bodyETag        etag.Generator
	fileETag        bool
	jsonEscape      bool
	jsonSpaces      int
	jsonReplacer    ReplacerFunc
	jsonpCallback   string
	signingSecret   string
	bufferThreshold int
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
//
// Defaults: weak ETags for bodies and files, JSON HTML-escaping off, JSONP
// callback parameter "callback", files read from the operating system.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
		fs:   afero.NewOsFs(),
		cfg: config{
			bodyETag:        etag.Weak,
			fileETag:        true,
			jsonpCallback:   "callback",
			bufferThreshold: 1000,
		},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	return d
}

// Context wraps one in-flight request/response pair.
// Construct a fresh *Context per request; a *Context is never reused.
func (d *Responder) Context(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		w:      w,
		r:      r,
		d:      d,
		Locals: make(map[string]any),
	}
}
