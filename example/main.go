package main

import (
	"errors"
	"net/http"

	"github.com/spf13/afero"

	. "github.com/mintleaf-web/respond"
)

// Handler shares the initialized Responder across all example responses.
type Handler struct {
	*Responder
}

// greet is a fully-formed use of Format: curl it with different Accept
// headers to watch the body change shape.
func (h *Handler) greet(w http.ResponseWriter, r *http.Request) {
	c := h.Context(w, r)
	err := c.Format(map[string]HandlerFunc{
		"html": func(c *Context) error { return c.Send("<h1>hey there</h1>") },
		"json": func(c *Context) error { return c.JSON(map[string]any{"greeting": "hey there"}) },
		"text": func(c *Context) error { return c.Send("hey there") },
		DefaultFormat: func(c *Context) error {
			return c.SendStatus(http.StatusNotAcceptable)
		},
	})
	h.fail(c, err)
}

// widgets responds with JSONP when a ?callback= is present, plain JSON
// otherwise.
func (h *Handler) widgets(w http.ResponseWriter, r *http.Request) {
	c := h.Context(w, r)
	err := c.JSONP([]any{
		map[string]any{"id": 1, "name": "sprocket"},
		map[string]any{"id": 2, "name": "flange"},
	})
	h.fail(c, err)
}

// login issues a signed session cookie and bounces the client home.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	c := h.Context(w, r)
	if err := c.Cookie("session", "user-1", CookieOptions{HTTPOnly: true, Signed: true}); err != nil {
		h.fail(c, err)
		return
	}

	h.fail(c, c.Redirect("/"))
}

// logout clears that cookie again.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	c := h.Context(w, r)
	if err := c.ClearCookie("session", CookieOptions{}); err != nil {
		h.fail(c, err)
		return
	}

	h.fail(c, c.Redirect("back"))
}

// report streams a file off the in-memory filesystem as an attachment.
func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	c := h.Context(w, r)
	h.fail(c, c.Download("report.csv", "quarterly.csv", FileOptions{Root: "/srv"}))
}

// fail maps the errors handlers surface onto responses of their own.
func (h *Handler) fail(c *Context, err error) {
	var statusErr *StatusError
	switch {
	case err == nil:
	case errors.As(err, &statusErr):
		_ = c.SendStatus(statusErr.Code)
	case errors.Is(err, ErrSent):
	default:
		_ = c.SendStatus(http.StatusInternalServerError)
	}
}

func main() {
	// an in-memory filesystem keeps the example self-contained
	fsys := afero.NewMemMapFs()
	_ = afero.WriteFile(fsys, "/srv/report.csv", []byte("quarter,revenue\nQ2,1337\n"), 0o644)

	opts := FromEnv()
	opts = append(opts, WithFs(fsys), WithSigningSecret("keyboard cat"))
	d := NewResponder(opts...)

	h := &Handler{d}
	http.HandleFunc("/widgets", h.widgets)
	http.HandleFunc("/login", h.login)
	http.HandleFunc("/logout", h.logout)
	http.HandleFunc("/report", h.report)
	http.HandleFunc("/", h.greet)

	http.ListenAndServe("localhost:8081", nil)
}
