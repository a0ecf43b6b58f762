package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
)

// Signature verification outcomes. Missing and mismatched are distinct so
// the front door can return distinct 400 bodies.
var (
	errMissingSignature  = errors.New("signature header missing")
	errSignatureMismatch = errors.New("signature mismatch")
)

// verifySignature checks the X-Hub-Signature header against the raw request
// body bytes exactly as received. GitHub signs the body with HMAC-SHA1 and
// sends "sha1=<hex>"; re-serializing a parsed payload is not guaranteed to
// be byte-identical to what was signed, so verification always uses the
// original bytes.
//
// The comparison is a plain equal-length byte compare, not a constant-time
// one. Known limitation: an attacker who can measure response timing very
// precisely could in principle recover the digest byte by byte. The shared
// secret itself is never comparable this way.
func verifySignature(body []byte, signature, secret string) error {
	if signature == "" {
		return errMissingSignature
	}

	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	expected := "sha1=" + hex.EncodeToString(mac.Sum(nil))

	if len(signature) != len(expected) || !bytes.Equal([]byte(signature), []byte(expected)) {
		return errSignatureMismatch
	}
	return nil
}

// computeSignature returns the signature header value GitHub would send for
// body. Used for testing.
func computeSignature(body []byte, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return "sha1=" + hex.EncodeToString(mac.Sum(nil))
}
