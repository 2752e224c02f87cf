package respond

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mintleaf-web/respond/mimetype"
)

// Set stores values under field, replacing any prior value.
//
// A Content-Type value is canonicalized first: short tokens resolve to full
// media types and textual types gain a charset parameter. Content-Type
// cannot hold more than one value; trying returns ErrInvalid.
func (c *Context) Set(field string, values ...string) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: no value for header %q", ErrInvalid, field)
	}

	if isContentType(field) {
		if len(values) > 1 {
			return fmt.Errorf("%w: Content-Type cannot be set to multiple values", ErrInvalid)
		}

		c.w.Header().Set(field, mimetype.Normalize(values[0]))
		return nil
	}

	h := c.w.Header()
	h.Set(field, values[0])
	for _, v := range values[1:] {
		h.Add(field, v)
	}

	return nil
}

// SetHeaders stores every field-value pair in hdrs, as Set would.
func (c *Context) SetHeaders(hdrs map[string]string) error {
	for field, value := range hdrs {
		if err := c.Set(field, value); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the first stored value for field, or "".
func (c *Context) Get(field string) string { return c.w.Header().Get(field) }

// Values returns every stored value for field in insertion order.
func (c *Context) Values(field string) []string { return c.w.Header().Values(field) }

// Append merges values after any already stored under field, preserving
// insertion order. With nothing stored yet it behaves as Set, including
// Content-Type canonicalization; appending a second Content-Type value
// returns ErrInvalid like Set does.
func (c *Context) Append(field string, values ...string) error {
	h := c.w.Header()
	if len(h.Values(field)) == 0 {
		return c.Set(field, values...)
	}

	if isContentType(field) {
		return fmt.Errorf("%w: Content-Type cannot be set to multiple values", ErrInvalid)
	}

	for _, v := range values {
		h.Add(field, v)
	}

	return nil
}

// Remove drops all values stored under field.
func (c *Context) Remove(field string) { c.w.Header().Del(field) }

// ContentType canonicalizes token (see [Set]) and stores it as the
// response's Content-Type.
func (c *Context) ContentType(token string) {
	c.w.Header().Set("Content-Type", mimetype.Normalize(token))
}

// Links renders rels into an RFC 5988 Link header value, one entry per URL,
// appended after any Link value already present.
func (c *Context) Links(rels map[string][]string) {
	names := make([]string, 0, len(rels))
	for rel := range rels {
		names = append(names, rel)
	}
	sort.Strings(names)

	entries := make([]string, 0, len(rels))
	for _, rel := range names {
		for _, u := range rels[rel] {
			entries = append(entries, fmt.Sprintf("<%s>; rel=%q", u, rel))
		}
	}

	val := strings.Join(entries, ", ")
	if prior := c.Get("Link"); prior != "" {
		val = prior + ", " + val
	}

	c.w.Header().Set("Link", val)
}

// Vary adds fields to the Vary header, skipping ones already listed.
// Once the header holds *, nothing further is added.
func (c *Context) Vary(fields ...string) {
	current := parseTokens(strings.Join(c.Values("Vary"), ","))
	for _, cur := range current {
		if cur == "*" {
			return
		}
	}

	for _, field := range fields {
		if field == "*" {
			c.w.Header().Set("Vary", "*")
			return
		}

		seen := false
		for _, cur := range current {
			if strings.EqualFold(cur, field) {
				seen = true
				break
			}
		}
		if !seen {
			current = append(current, field)
		}
	}

	c.w.Header().Set("Vary", strings.Join(current, ", "))
}

func isContentType(field string) bool { return strings.EqualFold(field, "Content-Type") }

// parseTokens splits a comma-delimited header value into trimmed tokens.
func parseTokens(val string) []string {
	parts := strings.Split(val, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}

	return tokens
}
