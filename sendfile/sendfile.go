// Package sendfile streams a file from an afero filesystem into an HTTP
// response, reporting progress through a small set of hook events instead of
// a return value, so a caller can drive a delivery session regardless of how
// far the stream got before failing.
package sendfile

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/afero"

	"github.com/mintleaf-web/respond/etag"
	"github.com/mintleaf-web/respond/fresh"
	"github.com/mintleaf-web/respond/mimetype"
)

// Options configures one Streamer.
type Options struct {
	// MaxAge is written into a public Cache-Control directive when
	// CacheControl is set. Zero is an explicit max-age=0.
	MaxAge time.Duration

	// CacheControl enables the Cache-Control header.
	CacheControl bool

	// LastModified enables the Last-Modified header from file metadata.
	LastModified bool

	// ETag enables a weak validator derived from file metadata.
	ETag bool

	// Status overrides the implicit 200 written before the body.
	Status int
}

// Hooks receives the events of one streaming attempt.
// Every field is optional; a nil hook is skipped.
//
// Exactly one of Directory, Error, or End fires last. File fires before
// headers are written when the target resolves to a regular file; Stream
// fires immediately before body bytes are written; Headers fires after the
// streamer populated the response headers but before any are sent.
type Hooks struct {
	Directory func(path string)
	File      func(fi fs.FileInfo)
	Headers   func(h http.Header)
	Stream    func()
	End       func()
	Error     func(err error)
}

func (h Hooks) directory(path string) {
	if h.Directory != nil {
		h.Directory(path)
	}
}

func (h Hooks) file(fi fs.FileInfo) {
	if h.File != nil {
		h.File(fi)
	}
}

func (h Hooks) headers(hdr http.Header) {
	if h.Headers != nil {
		h.Headers(hdr)
	}
}

func (h Hooks) stream() {
	if h.Stream != nil {
		h.Stream()
	}
}

func (h Hooks) end() {
	if h.End != nil {
		h.End()
	}
}

func (h Hooks) error(err error) {
	if h.Error != nil {
		h.Error(err)
	}
}

// A Streamer delivers a single file once. It is not reused.
type Streamer struct {
	fsys afero.Fs
	path string
	opts Options
}

// New constructs a Streamer for path on fsys.
func New(fsys afero.Fs, path string, opts Options) *Streamer {
	return &Streamer{fsys: fsys, path: path, opts: opts}
}

// Pipe runs the delivery, emitting events on hooks as it progresses.
//
// Conditional requests that prove fresh complete as a 304 without a body.
// HEAD requests complete after headers. Pipe writes the status line itself;
// callers must not have written one already.
func (s *Streamer) Pipe(w http.ResponseWriter, r *http.Request, hooks Hooks) {
	fi, err := s.fsys.Stat(s.path)
	if err != nil {
		hooks.error(err)
		return
	}

	if fi.IsDir() {
		hooks.directory(s.path)
		return
	}

	hooks.file(fi)

	h := w.Header()
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", mimetype.Normalize(filepath.Ext(s.path)))
	}

	if s.opts.LastModified && h.Get("Last-Modified") == "" {
		h.Set("Last-Modified", fi.ModTime().UTC().Format(http.TimeFormat))
	}

	if s.opts.CacheControl && h.Get("Cache-Control") == "" {
		h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int64(s.opts.MaxAge/time.Second)))
	}

	if s.opts.ETag && h.Get("ETag") == "" {
		h.Set("ETag", etag.File(fi))
	}

	hooks.headers(h)

	if isConditional(r) && fresh.Fresh(r.Header, h) {
		h.Del("Content-Type")
		h.Del("Content-Length")
		h.Del("Transfer-Encoding")
		w.WriteHeader(http.StatusNotModified)
		hooks.end()
		return
	}

	h.Set("Content-Length", strconv.FormatInt(fi.Size(), 10))

	status := s.opts.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		hooks.end()
		return
	}

	f, err := s.fsys.Open(s.path)
	if err != nil {
		hooks.error(err)
		return
	}
	defer f.Close()

	hooks.stream()

	if err := copyBody(r, w, f); err != nil {
		hooks.error(err)
		return
	}

	hooks.end()
}

// copyBody streams f into w, bailing out between chunks once the client has
// gone away. Disconnects mid-write surface as the write error itself.
func copyBody(r *http.Request, w io.Writer, f io.Reader) error {
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-r.Context().Done():
			return r.Context().Err()
		default:
		}

		n, err := f.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}

		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func isConditional(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}
