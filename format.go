package respond

import (
	"net/http"
	"sort"

	"github.com/mintleaf-web/respond/accept"
	"github.com/mintleaf-web/respond/mimetype"
)

// A HandlerFunc produces one representation of a response during content
// negotiation.
type HandlerFunc func(*Context) error

// DefaultFormat keys the handler Format falls back on when no offered type
// is acceptable.
const DefaultFormat = "default"

// Format selects a handler from handlers by negotiating the request's Accept
// header against the handlers' media-type keys. Keys may be short tokens
// ("json", "html"); they are canonicalized before negotiation, and ties
// between equally preferred types break alphabetically on the canonical
// form.
//
// Accept is always added to Vary, whatever the outcome. On a match the
// response Content-Type is set to the matched canonical type before its
// handler runs. With no match, the DefaultFormat handler runs if present;
// otherwise Format returns a *StatusError with code 406 listing the offered
// types.
func (c *Context) Format(handlers map[string]HandlerFunc) error {
	c.Vary("Accept")

	offers := make([]string, 0, len(handlers))
	byOffer := make(map[string]HandlerFunc, len(handlers))
	for key, fn := range handlers {
		if key == DefaultFormat {
			continue
		}

		offer := key
		if ct := mimetype.Lookup(key); ct != "" {
			offer = ct
		}
		offers = append(offers, offer)
		byOffer[offer] = fn
	}
	sort.Strings(offers)

	if best := accept.Negotiate(c.r.Header.Get("Accept"), offers...); best != "" {
		c.ContentType(best)
		return byOffer[best](c)
	}

	if fn, ok := handlers[DefaultFormat]; ok {
		return fn(c)
	}

	return &StatusError{Code: http.StatusNotAcceptable, Types: offers}
}
