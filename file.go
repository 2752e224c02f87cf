package respond

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mintleaf-web/respond/logger"
	"github.com/mintleaf-web/respond/sendfile"
)

// FileOptions configures SendFile and Download.
type FileOptions struct {
	// Root confines delivery beneath it: every path, absolute or not,
	// resolves relative to Root when it is set. A path without a Root
	// must be absolute.
	Root string

	// MaxAge feeds the Cache-Control header on the delivered file.
	MaxAge time.Duration

	// Header overrides response headers once the streamer has populated
	// its own, before any are sent.
	Header map[string]string

	// OnComplete, when set, receives the delivery outcome exactly once:
	// nil on success, ErrIsDir, ErrAborted, or the underlying failure.
	// SendFile then returns nil and the callback owns error handling.
	OnComplete func(error)
}

// deliverState tracks how far a delivery session got, resolving the
// streaming-vs-buffered ambiguity explicitly.
type deliverState int

const (
	deliverUnknown deliverState = iota
	deliverBuffered
	deliverStreaming
)

// A delivery is the transient state machine of one streaming attempt. Its
// terminal callback fires at most once however many events arrive, and in
// whatever order the streamer and the connection report them.
type delivery struct {
	done  bool
	state deliverState
	cb    func(error)
}

func (s *delivery) terminate(err error) {
	if s.done {
		return
	}
	s.done = true
	s.cb(err)
}

// finish handles the connection-side completion signal. Some failures, a
// client disconnecting mid-stream above all, only surface here and never
// through the streamer.
func (s *delivery) finish(err error) {
	if err != nil && isAbort(err) {
		s.terminate(fmt.Errorf("%w: %v", ErrAborted, err))
		return
	}

	if err != nil {
		s.terminate(err)
		return
	}

	if s.done {
		return
	}

	// the streamer never confirmed a fully buffered file, so the
	// connection ended mid-stream
	if s.state != deliverBuffered {
		s.terminate(ErrAborted)
		return
	}

	s.terminate(nil)
}

// SendFile streams the file at path to the client, applying the Responder's
// ETag configuration and the options' header overrides.
//
// path must be non-empty. With opts.Root set, every path resolves beneath
// Root and can never escape it; without a Root, path must be absolute.
// Violations return ErrInvalid before any delivery starts.
//
// Without an OnComplete callback the default policy applies to the delivery
// outcome: a directory target returns ErrSkipped so a router can fall
// through to its next handler, client aborts are swallowed (the client is
// gone; they are logged at debug), and anything else returns as the error.
func (c *Context) SendFile(path string, opts FileOptions) error {
	if c.done {
		return ErrSent
	}

	if path == "" {
		return fmt.Errorf("%w: path required to SendFile", ErrInvalid)
	}

	full := path
	if opts.Root != "" {
		full = filepath.Join(opts.Root, filepath.Clean("/"+path))
		if !strings.HasPrefix(full, filepath.Clean(opts.Root)+string(filepath.Separator)) {
			return fmt.Errorf("%w: path %q escapes Root", ErrInvalid, path)
		}
	} else if !filepath.IsAbs(path) {
		return fmt.Errorf("%w: path must be absolute or Root must be set", ErrInvalid)
	}

	sess := &delivery{}

	var policyErr error
	if opts.OnComplete != nil {
		sess.cb = opts.OnComplete
	} else {
		sess.cb = func(err error) {
			switch {
			case err == nil:
			case errors.Is(err, ErrIsDir):
				policyErr = fmt.Errorf("%w: %v", ErrSkipped, err)
			case errors.Is(err, ErrAborted):
				c.d.logger.Debug(fmt.Sprintf("delivery of %s aborted by client", path),
					&logger.LogContext{Request: c.r, Error: err})
			default:
				policyErr = err
			}
		}
	}

	streamer := sendfile.New(c.d.fs, full, sendfile.Options{
		MaxAge:       opts.MaxAge,
		CacheControl: true,
		LastModified: true,
		ETag:         c.d.cfg.fileETag,
		Status:       c.status,
	})

	// the streamer writes no status line on the directory and stat-error
	// paths; the Context only counts as terminated once it saw a file
	wrote := false

	streamer.Pipe(c.w, c.r, sendfile.Hooks{
		Directory: func(p string) {
			sess.terminate(fmt.Errorf("%w: %s", ErrIsDir, p))
		},
		Error: func(err error) {
			if isAbort(err) {
				err = fmt.Errorf("%w: %v", ErrAborted, err)
			}
			sess.terminate(err)
		},
		End: func() {
			wrote = true
			sess.terminate(nil)
		},
		File: func(fs.FileInfo) {
			wrote = true
			sess.state = deliverBuffered
		},
		Stream: func() {
			sess.state = deliverStreaming
		},
		Headers: func(h http.Header) {
			for k, v := range opts.Header {
				h.Set(k, v)
			}
		},
	})

	// connection-side signal; a no-op when the streamer already terminated
	sess.finish(c.r.Context().Err())

	if wrote {
		c.done = true
	}

	if opts.OnComplete != nil {
		return nil
	}

	return policyErr
}

// Download delivers path as an attachment. filename, or the path's base name
// when empty, becomes the suggested name in a Content-Disposition header the
// caller's header overrides can never displace. Relative paths without a
// Root resolve against the working directory.
func (c *Context) Download(path, filename string, opts FileOptions) error {
	if filename == "" {
		filename = filepath.Base(path)
	}

	headers := make(map[string]string, len(opts.Header)+1)
	for k, v := range opts.Header {
		if strings.EqualFold(k, "Content-Disposition") {
			continue
		}
		headers[k] = v
	}
	headers["Content-Disposition"] = mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	opts.Header = headers

	if !filepath.IsAbs(path) && opts.Root == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("%w: cannot resolve %q: %v", ErrInvalid, path, err)
		}
		path = abs
	}

	return c.SendFile(path, opts)
}

// isAbort reports whether err is the client going away rather than a failure
// of our own.
func isAbort(err error) bool {
	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, context.Canceled)
}
