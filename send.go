package respond

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mintleaf-web/respond/fresh"
)

// Send serializes body and terminates the response.
//
// Strings go out as text/html unless a Content-Type was already set, and any
// Content-Type on a string body gains charset=utf-8 when it lacks a charset.
// Byte slices go out as application/octet-stream by default. A nil body is
// the empty string. Everything else delegates to JSON.
//
// Content-Length and, when a generator is configured, ETag are computed from
// the exact bytes written. A request that proves fresh against the response
// validators completes as a 304; 204, 205, and 304 responses shed the body
// and its framing headers per HTTP semantics. HEAD requests terminate before
// any body bytes.
func (c *Context) Send(body any) error {
	switch b := body.(type) {
	case nil:
		return c.sendString("")
	case string:
		return c.sendString(b)
	case []byte:
		return c.sendBytes(b)
	default:
		return c.JSON(body)
	}
}

// SendStatus sets the status code and sends its standard reason phrase as a
// text/plain body, the code's decimal form when no phrase is registered.
func (c *Context) SendStatus(code int) error {
	if err := c.Status(code); err != nil {
		return err
	}

	c.ContentType("text")

	body := http.StatusText(code)
	if body == "" {
		body = strconv.Itoa(code)
	}

	return c.Send(body)
}

func (c *Context) sendString(s string) error {
	if ct := c.Get("Content-Type"); ct == "" {
		c.ContentType("html")
	} else {
		c.w.Header().Set("Content-Type", ensureCharset(ct))
	}

	// An ETag generator hashes exact bytes, so the body is materialized up
	// front; short strings are otherwise measured in place. In Go both
	// branches agree on the byte count, the threshold stays a tuning knob
	// for when materialization happens.
	var b []byte
	if c.etagWanted() || len(s) >= c.d.cfg.bufferThreshold {
		b = []byte(s)
	}

	c.w.Header().Set("Content-Length", strconv.Itoa(len(s)))
	c.applyETag(b)

	if c.requestFresh() {
		c.status = http.StatusNotModified
	}

	if b == nil {
		b = []byte(s)
	}

	return c.write(b)
}

func (c *Context) sendBytes(b []byte) error {
	if c.Get("Content-Type") == "" {
		c.ContentType("bin")
	}

	c.w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	c.applyETag(b)

	if c.requestFresh() {
		c.status = http.StatusNotModified
	}

	return c.write(b)
}

// write applies the status-driven body rules and performs the terminal write.
func (c *Context) write(body []byte) error {
	switch c.StatusCode() {
	case http.StatusNoContent, http.StatusNotModified:
		c.Remove("Content-Type")
		c.Remove("Content-Length")
		c.Remove("Transfer-Encoding")
		body = nil
	case http.StatusResetContent:
		c.w.Header().Set("Content-Length", "0")
		c.Remove("Transfer-Encoding")
		body = nil
	}

	if c.r.Method == http.MethodHead {
		return c.end(nil)
	}

	return c.end(body)
}

// etagWanted reports whether an ETag still needs computing for this response.
func (c *Context) etagWanted() bool {
	return c.d.cfg.bodyETag != nil && c.Get("ETag") == ""
}

// applyETag sets the ETag header from body, unless the generator declines
// by returning "".
func (c *Context) applyETag(body []byte) {
	if !c.etagWanted() {
		return
	}

	if v := c.d.cfg.bodyETag(body); v != "" {
		c.w.Header().Set("ETag", v)
	}
}

// requestFresh reports whether the client's cached copy satisfies the
// response being built, making a 304 the correct completion.
func (c *Context) requestFresh() bool {
	if c.r.Method != http.MethodGet && c.r.Method != http.MethodHead {
		return false
	}

	sc := c.StatusCode()
	if (sc >= http.StatusOK && sc < http.StatusMultipleChoices) || sc == http.StatusNotModified {
		return fresh.Fresh(c.r.Header, c.w.Header())
	}

	return false
}

// ensureCharset appends charset=utf-8 to a media type lacking any charset.
// String bodies always declare their encoding, whatever their type.
func ensureCharset(ct string) string {
	if strings.Contains(strings.ToLower(ct), "charset") {
		return ct
	}

	return ct + "; charset=utf-8"
}
