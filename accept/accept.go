// Package accept implements proactive content negotiation over the Accept
// request header.
package accept

import (
	"strconv"
	"strings"
)

// A mediaRange is one client preference parsed out of an Accept header.
type mediaRange struct {
	typ string
	sub string
	q   float64
	idx int
}

// Negotiate returns the offer the client prefers most, or "" when no offer is
// acceptable. An empty header accepts anything, yielding the first offer.
//
// Each offer takes its quality from the most specific range matching it.
// Preference then follows quality, the order ranges appear in the header,
// and finally the order of the offers.
func Negotiate(header string, offers ...string) string {
	if len(offers) == 0 {
		return ""
	}

	ranges := parse(header)

	best := ""
	bestQ := 0.0
	bestIdx := len(ranges)
	for _, offer := range offers {
		typ, sub, ok := splitType(offer)
		if !ok {
			continue
		}

		// the most specific matching range decides the offer's quality,
		// so an exact q=0 excludes a type a wildcard would otherwise admit
		var match *mediaRange
		matchSpec := 0
		for j := range ranges {
			if spec := specificity(ranges[j], typ, sub); spec > matchSpec {
				match, matchSpec = &ranges[j], spec
			}
		}

		if match == nil || match.q == 0 {
			continue
		}

		if match.q > bestQ || (match.q == bestQ && match.idx < bestIdx) {
			best, bestQ, bestIdx = offer, match.q, match.idx
		}
	}

	return best
}

// parse breaks an Accept header value into media ranges.
// Malformed parts are skipped; an empty header means */*.
func parse(header string) []mediaRange {
	if strings.TrimSpace(header) == "" {
		return []mediaRange{{typ: "*", sub: "*", q: 1}}
	}

	parts := strings.Split(header, ",")
	ranges := make([]mediaRange, 0, len(parts))
	for i, part := range parts {
		fields := strings.Split(part, ";")

		typ, sub, ok := splitType(fields[0])
		if !ok {
			continue
		}

		mr := mediaRange{typ: typ, sub: sub, q: 1, idx: i}
		for _, param := range fields[1:] {
			k, v, found := strings.Cut(strings.TrimSpace(param), "=")
			if !found || !strings.EqualFold(k, "q") {
				continue
			}

			q, err := strconv.ParseFloat(v, 64)
			if err != nil || q < 0 || q > 1 {
				continue
			}
			mr.q = q
		}

		ranges = append(ranges, mr)
	}

	return ranges
}

// specificity scores how precisely a range names the offered type:
// exact match 3, subtype wildcard 2, full wildcard 1, no match 0.
func specificity(mr mediaRange, typ, sub string) int {
	switch {
	case mr.typ == typ && mr.sub == sub:
		return 3
	case mr.typ == typ && mr.sub == "*":
		return 2
	case mr.typ == "*" && mr.sub == "*":
		return 1
	}

	return 0
}

func splitType(val string) (string, string, bool) {
	typ, sub, found := strings.Cut(strings.ToLower(strings.TrimSpace(val)), "/")
	if !found || typ == "" || sub == "" {
		return "", "", false
	}

	return typ, sub, true
}
