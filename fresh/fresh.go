// Package fresh determines whether a client's cached representation is still
// valid, comparing the conditional headers of a request against the validators
// set on the in-flight response.
package fresh

import (
	"net/http"
	"regexp"
	"strings"
)

var noCacheRegexp = regexp.MustCompile(`(?:^|,)\s*?no-cache\s*?(?:,|$)`)

// Fresh reports whether the response under construction matches the client's
// cached copy. A true result means the response can complete as a 304.
//
// The If-None-Match list is compared against the response ETag, treating weak
// and strong validators as equivalent. If-Modified-Since is compared against
// Last-Modified. A request Cache-Control containing no-cache is never fresh.
func Fresh(reqHeader, respHeader http.Header) bool {
	modifiedSince := reqHeader.Get("If-Modified-Since")
	noneMatch := reqHeader.Get("If-None-Match")

	if modifiedSince == "" && noneMatch == "" {
		return false
	}

	if cc := reqHeader.Get("Cache-Control"); cc != "" && noCacheRegexp.MatchString(cc) {
		return false
	}

	if noneMatch != "" && noneMatch != "*" {
		et := respHeader.Get("ETag")
		if et == "" {
			return false
		}

		stale := true
		for _, match := range parseTokenList(noneMatch) {
			if match == et || match == "W/"+et || "W/"+match == et {
				stale = false
				break
			}
		}
		if stale {
			return false
		}
	}

	if modifiedSince != "" {
		lm := respHeader.Get("Last-Modified")
		if lm == "" {
			return false
		}

		lastModified, err := http.ParseTime(lm)
		if err != nil {
			return false
		}

		since, err := http.ParseTime(modifiedSince)
		if err != nil {
			return false
		}

		if lastModified.After(since) {
			return false
		}
	}

	return true
}

// parseTokenList splits a comma-delimited header value into trimmed tokens.
func parseTokenList(val string) []string {
	parts := strings.Split(val, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}

	return tokens
}
