// Package cookies serializes Set-Cookie header values and signs cookie
// payloads with a keyed HMAC.
package cookies

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SameSite is the SameSite cookie attribute.
type SameSite int

const (
	SameSiteDefault SameSite = iota
	SameSiteLax
	SameSiteStrict
	SameSiteNone
)

func (s SameSite) String() string {
	switch s {
	case SameSiteLax:
		return "Lax"
	case SameSiteStrict:
		return "Strict"
	case SameSiteNone:
		return "None"
	default:
		return ""
	}
}

// Attributes is the attribute set serialized after the name=value pair.
type Attributes struct {
	Path     string
	Domain   string
	Expires  time.Time
	MaxAge   time.Duration
	Secure   bool
	HTTPOnly bool
	SameSite SameSite
}

// fieldContentRegexp matches characters valid in a cookie name or attribute
// per RFC 7230 field-content.
var fieldContentRegexp = regexp.MustCompile(`^[\x{0009}\x{0020}-\x{007e}\x{0080}-\x{00ff}]+$`)

// ErrSerialize is returned when a cookie part cannot appear in a header.
var ErrSerialize = fmt.Errorf("cookie part contains invalid characters")

// Serialize renders a complete Set-Cookie header value.
// The cookie value is percent-encoded; name and attributes must already be
// header-safe or ErrSerialize returns.
func Serialize(name, value string, attrs Attributes) (string, error) {
	if name == "" || !fieldContentRegexp.MatchString(name) || strings.ContainsAny(name, "=;, ") {
		return "", fmt.Errorf("%w: name %q", ErrSerialize, name)
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(encode(value))

	if attrs.MaxAge > 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.FormatInt(int64(attrs.MaxAge/time.Second), 10))
	}

	if attrs.Domain != "" {
		if !fieldContentRegexp.MatchString(attrs.Domain) {
			return "", fmt.Errorf("%w: domain %q", ErrSerialize, attrs.Domain)
		}
		b.WriteString("; Domain=")
		b.WriteString(attrs.Domain)
	}

	if attrs.Path != "" {
		if !fieldContentRegexp.MatchString(attrs.Path) {
			return "", fmt.Errorf("%w: path %q", ErrSerialize, attrs.Path)
		}
		b.WriteString("; Path=")
		b.WriteString(attrs.Path)
	}

	if !attrs.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(attrs.Expires.UTC().Format(http.TimeFormat))
	}

	if attrs.HTTPOnly {
		b.WriteString("; HttpOnly")
	}

	if attrs.Secure {
		b.WriteString("; Secure")
	}

	if ss := attrs.SameSite.String(); ss != "" {
		b.WriteString("; SameSite=")
		b.WriteString(ss)
	}

	return b.String(), nil
}

// Sign appends a base64 HMAC-SHA256 signature to value, separated by a dot.
// Padding is stripped so the signature stays cookie-safe.
func Sign(value, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return value + "." + strings.TrimRight(sig, "=")
}

// Unsign splits a signed value back apart, reporting whether the signature
// verifies under secret. The comparison is constant-time.
func Unsign(signed, secret string) (string, bool) {
	i := strings.LastIndexByte(signed, '.')
	if i < 0 {
		return "", false
	}

	value := signed[:i]
	expected := Sign(value, secret)
	if subtle.ConstantTimeCompare([]byte(signed), []byte(expected)) != 1 {
		return "", false
	}

	return value, true
}

// encode percent-encodes a cookie value the way encodeURIComponent would,
// leaving the characters cookies conventionally carry intact.
func encode(value string) string {
	escaped := url.QueryEscape(value)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	// QueryEscape is stricter than cookie values require; undo the noisy ones.
	for raw, enc := range map[string]string{
		"!": "%21", "*": "%2A", "(": "%28", ")": "%29", "'": "%27",
	} {
		escaped = strings.ReplaceAll(escaped, enc, raw)
	}

	return escaped
}
