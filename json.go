package respond

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// A ReplacerFunc rewrites a key-value pair before JSON serialization.
// It is applied to the root value under the empty key, then recursively to
// the pairs of every map and the elements of every slice it returns.
// Struct fields are left to their encoding/json tags.
type ReplacerFunc func(key string, v any) any

type removed struct{}

// Removed drops a key-value pair entirely when returned from a ReplacerFunc.
// Inside slices the element becomes null instead, keeping positions stable.
var Removed = new(removed)

// callbackRegexp strips everything a JSONP callback name may not contain.
var callbackRegexp = regexp.MustCompile(`[^\w$.\[\]]`)

// JSON serializes v per the Responder's replacer, indent, and escape
// settings, then sends it, defaulting the Content-Type to application/json.
func (c *Context) JSON(v any) error {
	body, err := c.marshalJSON(v)
	if err != nil {
		return err
	}

	if c.Get("Content-Type") == "" {
		if err := c.Set("Content-Type", "application/json"); err != nil {
			return err
		}
	}

	return c.Send(body)
}

// JSONP serializes v like JSON and, when the request's query carries a
// callback name, wraps the payload in a guarded invocation of it:
//
//	/**/ typeof cb==='function'&&cb({"x":1});
//
// The callback parameter name comes from the Responder configuration; the
// supplied name is stripped to the characters a JS member expression may
// contain. U+2028 and U+2029 are escaped in the payload since they break JS
// parsers despite being legal JSON. X-Content-Type-Options: nosniff is set
// either way; with a callback the Content-Type becomes text/javascript.
func (c *Context) JSONP(v any) error {
	body, err := c.marshalJSON(v)
	if err != nil {
		return err
	}

	if c.Get("Content-Type") == "" {
		if err := c.Set("X-Content-Type-Options", "nosniff"); err != nil {
			return err
		}
		if err := c.Set("Content-Type", "application/json"); err != nil {
			return err
		}
	}

	var callback string
	if vals := c.r.URL.Query()[c.d.cfg.jsonpCallback]; len(vals) > 0 {
		callback = callbackRegexp.ReplaceAllString(vals[0], "")
	}

	if callback != "" {
		if err := c.Set("X-Content-Type-Options", "nosniff"); err != nil {
			return err
		}
		if err := c.Set("Content-Type", "text/javascript"); err != nil {
			return err
		}

		body = strings.ReplaceAll(body, "\u2028", `\u2028`)
		body = strings.ReplaceAll(body, "\u2029", `\u2029`)
		body = "/**/ typeof " + callback + "==='function'&&" + callback + "(" + body + ");"
	}

	return c.Send(body)
}

// marshalJSON serializes v into a string using the configured settings.
func (c *Context) marshalJSON(v any) (string, error) {
	if fn := c.d.cfg.jsonReplacer; fn != nil {
		r := applyReplacer(fn, "", v)
		if r == any(Removed) {
			r = nil
		}
		v = r
	}

	buf := c.d.pool.Get().(*bytes.Buffer)
	buf.Reset()
	defer c.d.pool.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(c.d.cfg.jsonEscape)
	if n := c.d.cfg.jsonSpaces; n > 0 {
		enc.SetIndent("", strings.Repeat(" ", n))
	}

	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: cannot serialize body: %v", ErrInvalid, err)
	}

	// Encode appends its own newline
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func applyReplacer(fn ReplacerFunc, key string, v any) any {
	v = fn(key, v)
	if v == any(Removed) {
		return v
	}

	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if r := applyReplacer(fn, k, val); r != any(Removed) {
				out[k] = r
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			r := applyReplacer(fn, strconv.Itoa(i), val)
			if r == any(Removed) {
				r = nil
			}
			out[i] = r
		}
		return out
	}

	return v
}
