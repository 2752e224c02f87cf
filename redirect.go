package respond

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
)

// Redirect sends a 302 to location. See RedirectWith.
func (c *Context) Redirect(location string) error {
	return c.RedirectWith(http.StatusFound, location)
}

// RedirectWith sets the status code, points Location at the percent-encoded
// target, and sends a small negotiated body naming the destination: plain
// text for text clients, an anchor tag with the location HTML-escaped for
// HTML clients, and nothing for everyone else. HEAD requests terminate
// without body bytes.
func (c *Context) RedirectWith(code int, location string) error {
	if err := c.Status(code); err != nil {
		return err
	}

	loc := c.Location(location)
	phrase := http.StatusText(code)

	var body string
	err := c.Format(map[string]HandlerFunc{
		"text": func(*Context) error {
			body = fmt.Sprintf("%s. Redirecting to %s", phrase, loc)
			return nil
		},
		"html": func(*Context) error {
			u := html.EscapeString(loc)
			body = fmt.Sprintf(`<p>%s. Redirecting to <a href="%s">%s</a></p>`, phrase, u, u)
			return nil
		},
		DefaultFormat: func(*Context) error {
			body = ""
			return nil
		},
	})
	if err != nil {
		return err
	}

	c.w.Header().Set("Content-Length", strconv.Itoa(len(body)))

	if c.r.Method == http.MethodHead {
		return c.end(nil)
	}

	return c.end([]byte(body))
}

// Location sets the Location header to the percent-encoded form of target
// and returns the value stored. The keyword "back" resolves to the request's
// Referrer, or / absent one.
func (c *Context) Location(target string) string {
	if target == "back" {
		target = c.r.Header.Get("Referer")
		if target == "" {
			target = "/"
		}
	}

	loc := target
	if u, err := url.Parse(target); err == nil {
		loc = u.String()
	}

	c.w.Header().Set("Location", loc)
	return loc
}
