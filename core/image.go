package core

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// dataURIPrefix marks an image reference that is already in wire form.
const dataURIPrefix = "data:"

// EncodeImageRef normalizes one image reference into its wire
// representation. References are inspected cheaply, in order:
//
//  1. data URI: passed through unchanged.
//  2. absolute http(s) URL: passed through as a reference; the service
//     fetches it, the client never does.
//  3. readable local file path: bytes are read and wrapped as a data URI.
//  4. raw base64 image payload: wrapped as a data URI with a sniffed
//     media type.
//
// Anything else, including an unreadable local path, fails with an
// *InputError. No attempt is made to validate image content or to
// re-encode or resize.
func EncodeImageRef(ref string) (string, error) {
	if ref == "" {
		return "", NewInputError("image reference is empty")
	}

	if strings.HasPrefix(ref, dataURIPrefix) {
		return ref, nil
	}

	if isHTTPURL(ref) {
		return ref, nil
	}

	if _, err := os.Stat(ref); err == nil {
		data, err := os.ReadFile(ref)
		if err != nil {
			return "", NewInputError("cannot read image file %q: %v", ref, err)
		}
		return encodeDataURI(data), nil
	}

	// Not a file on disk; last chance is a raw base64 payload.
	if data, err := base64.StdEncoding.DecodeString(ref); err == nil && len(data) > 0 {
		return encodeDataURI(data), nil
	}

	return "", NewInputError("image reference %q is not a data URI, URL, readable file, or base64 payload", ref)
}

// EncodeImageRefs normalizes a slice of image references, preserving
// order. The first failing reference aborts with its error.
func EncodeImageRefs(refs []string) ([]string, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]string, len(refs))
	for i, ref := range refs {
		enc, err := EncodeImageRef(ref)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

// isHTTPURL reports whether s parses as an absolute URL with an
// http or https scheme.
func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// encodeDataURI wraps raw image bytes as a base64 data URI with a
// sniffed media type.
func encodeDataURI(data []byte) string {
	mediaType := http.DetectContentType(data)
	return dataURIPrefix + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
