package respond

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrAborted   = errors.New("client aborted")
	ErrBadConfig = errors.New("bad config")
	ErrInvalid   = errors.New("invalid")
	ErrIsDir     = errors.New("is a directory")
	ErrRange     = errors.New("out of range")
	ErrSent      = errors.New("response already sent")
	ErrSkipped   = errors.New("not handled here")
)

// A StatusError carries an HTTP status into the caller's error handling
// chain, for failures that only surface once request content is inspected.
//
// Format returns one with StatusNotAcceptable when negotiation fails; Types
// then lists the media types that were offered, so an error handler can
// produce a diagnostic body.
type StatusError struct {
	Code  int
	Types []string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	if len(e.Types) > 0 {
		msg += ": offered " + strings.Join(e.Types, ", ")
	}

	return msg
}
