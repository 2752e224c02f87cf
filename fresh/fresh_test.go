package fresh_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mintleaf-web/respond/fresh"
)

func TestFresh(t *testing.T) {
	tcs := []struct {
		name     string
		req      http.Header
		resp     http.Header
		expected bool
	}{
		{
			"No-Conditional-Headers",
			http.Header{},
			http.Header{"Etag": {`"abc"`}},
			false,
		},
		{
			"ETag-Match",
			http.Header{"If-None-Match": {`"abc"`}},
			http.Header{"Etag": {`"abc"`}},
			true,
		},
		{
			"ETag-Mismatch",
			http.Header{"If-None-Match": {`"abc"`}},
			http.Header{"Etag": {`"def"`}},
			false,
		},
		{
			"ETag-Weak-Vs-Strong",
			http.Header{"If-None-Match": {`W/"abc"`}},
			http.Header{"Etag": {`"abc"`}},
			true,
		},
		{
			"ETag-List",
			http.Header{"If-None-Match": {`"xyz", "abc"`}},
			http.Header{"Etag": {`"abc"`}},
			true,
		},
		{
			"ETag-Star",
			http.Header{"If-None-Match": {"*"}},
			http.Header{},
			true,
		},
		{
			"ETag-Missing-On-Response",
			http.Header{"If-None-Match": {`"abc"`}},
			http.Header{},
			false,
		},
		{
			"No-Cache-Defeats-Freshness",
			http.Header{
				"If-None-Match": {`"abc"`},
				"Cache-Control": {"no-cache"},
			},
			http.Header{"Etag": {`"abc"`}},
			false,
		},
		{
			"Unmodified",
			http.Header{"If-Modified-Since": {"Sat, 01 Jan 2022 00:00:00 GMT"}},
			http.Header{"Last-Modified": {"Fri, 31 Dec 2021 00:00:00 GMT"}},
			true,
		},
		{
			"Modified",
			http.Header{"If-Modified-Since": {"Fri, 31 Dec 2021 00:00:00 GMT"}},
			http.Header{"Last-Modified": {"Sat, 01 Jan 2022 00:00:00 GMT"}},
			false,
		},
		{
			"Unparseable-Date",
			http.Header{"If-Modified-Since": {"not-a-date"}},
			http.Header{"Last-Modified": {"Sat, 01 Jan 2022 00:00:00 GMT"}},
			false,
		},
		{
			"Both-Validators-Must-Hold",
			http.Header{
				"If-None-Match":     {`"abc"`},
				"If-Modified-Since": {"Fri, 31 Dec 2021 00:00:00 GMT"},
			},
			http.Header{
				"Etag":          {`"abc"`},
				"Last-Modified": {"Sat, 01 Jan 2022 00:00:00 GMT"},
			},
			false,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, fresh.Fresh(tc.req, tc.resp))
		})
	}
}
