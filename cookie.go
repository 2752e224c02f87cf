package respond

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mintleaf-web/respond/cookies"
)

// CookieOptions enumerates the attributes a Set-Cookie entry recognizes.
type CookieOptions struct {
	// Path defaults to / when left empty.
	Path   string
	Domain string

	// Expires is ignored when MaxAge is set; MaxAge then derives an
	// absolute expiry from the current time alongside a whole-second
	// Max-Age attribute.
	Expires time.Time
	MaxAge  time.Duration

	Secure   bool
	HTTPOnly bool
	SameSite cookies.SameSite

	// Signed HMACs the value with the Responder's signing secret.
	// Requesting it without a configured secret returns ErrBadConfig.
	Signed bool
}

// Cookie appends a Set-Cookie header entry for name. Prior entries are never
// overwritten; each call produces another header occurrence, as HTTP allows.
//
// String values pass through as-is. Any other value is JSON-encoded and
// prefixed j: so a reader can tell the two apart. Signed values are prefixed
// s: with the signature appended.
func (c *Context) Cookie(name string, value any, opts CookieOptions) error {
	var val string
	switch v := value.(type) {
	case string:
		val = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: cannot encode cookie value: %v", ErrInvalid, err)
		}
		val = "j:" + string(b)
	}

	if opts.Signed {
		if c.d.cfg.signingSecret == "" {
			return fmt.Errorf("%w: signed cookies require a signing secret", ErrBadConfig)
		}
		val = "s:" + cookies.Sign(val, c.d.cfg.signingSecret)
	}

	attrs := cookies.Attributes{
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  opts.Expires,
		Secure:   opts.Secure,
		HTTPOnly: opts.HTTPOnly,
		SameSite: opts.SameSite,
	}
	if attrs.Path == "" {
		attrs.Path = "/"
	}

	if opts.MaxAge > 0 {
		attrs.Expires = time.Now().Add(opts.MaxAge)
		attrs.MaxAge = opts.MaxAge.Truncate(time.Second)
	}

	entry, err := cookies.Serialize(name, val, attrs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return c.Append("Set-Cookie", entry)
}

// ClearCookie expires the named cookie: empty value, expiry in the past, and
// no Max-Age even when opts carries one, since a past expiry alongside a
// future Max-Age would contradict itself.
func (c *Context) ClearCookie(name string, opts CookieOptions) error {
	opts.MaxAge = 0
	opts.Expires = time.Unix(0, 0).UTC()
	if opts.Path == "" {
		opts.Path = "/"
	}

	return c.Cookie(name, "", opts)
}
