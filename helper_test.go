package respond_test

import (
	"net/http/httptest"
	"testing"

	"github.com/mintleaf-web/respond"
)

// newContext spins up a recorded request/response pair for exercising a
// single Context method.
func newContext(t *testing.T, method, target string, opts ...respond.ResponderOptFn) (*respond.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, target, nil)

	return respond.NewResponder(opts...).Context(w, r), w
}
