// Package etag generates entity tag validators for response bodies and files.
package etag

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"io/fs"
)

// A Generator derives an entity tag from the exact bytes of a response body.
//
// Returning an empty string skips setting the ETag header.
type Generator func(body []byte) string

// Strong computes a strong validator from the body length and a truncated
// SHA-1 digest, e.g. `"7-rM9AyJuqT6iOan/xHh+AW+7K/T8"`.
func Strong(body []byte) string {
	sum := sha1.Sum(body)
	hash := base64.StdEncoding.EncodeToString(sum[:])[:27]
	return fmt.Sprintf("%q", fmt.Sprintf("%x-%s", len(body), hash))
}

// Weak computes the same validator as Strong marked weak with the W/ prefix.
func Weak(body []byte) string { return "W/" + Strong(body) }

// File computes a weak validator from file metadata instead of file contents,
// so a stat suffices and large files need not be read twice.
func File(fi fs.FileInfo) string {
	return fmt.Sprintf("W/%q", fmt.Sprintf("%x-%x", fi.Size(), fi.ModTime().UnixMilli()))
}
