package respond

import (
	"fmt"
	"net/http"
)

// A Context decorates one in-flight HTTP response with status and header
// management, body serialization, content negotiation, cookie issuance,
// file delivery, and redirects.
//
// A Context belongs to the single goroutine handling its request; its
// methods must not be called concurrently.
type Context struct {
	w http.ResponseWriter
	r *http.Request
	d *Responder

	// Locals holds request-scoped values handed to an external view
	// renderer. The Context itself never reads it.
	Locals map[string]any

	status int
	done   bool
}

// Status buffers the response status code for the terminal write.
//
// Codes outside 100..999 cannot appear in a status line and return ErrRange.
func (c *Context) Status(code int) error {
	if code < 100 || code > 999 {
		return fmt.Errorf("%w: status code %d not in 100..999", ErrRange, code)
	}

	c.status = code
	return nil
}

// StatusCode returns the buffered status code, 200 when none was set.
func (c *Context) StatusCode() int {
	if c.status == 0 {
		return http.StatusOK
	}

	return c.status
}

// Request returns the request this Context responds to.
func (c *Context) Request() *http.Request { return c.r }

// Writer exposes the underlying http.ResponseWriter for collaborators that
// need it, e.g. an external view renderer. Writing to it directly bypasses
// the Context's terminal-write guard.
func (c *Context) Writer() http.ResponseWriter { return c.w }

// end performs the terminal write: status line, then body bytes.
// It runs at most once per Context; later calls return ErrSent.
func (c *Context) end(body []byte) error {
	if c.done {
		return ErrSent
	}
	c.done = true

	c.w.WriteHeader(c.StatusCode())

	if len(body) == 0 {
		return nil
	}

	if _, err := c.w.Write(body); err != nil {
		return err
	}

	return nil
}

// End terminates the response without a body and without a Content-Length,
// the one send path that leaves the header off entirely.
func (c *Context) End() error { return c.end(nil) }
