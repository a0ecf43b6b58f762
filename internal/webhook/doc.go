// Package webhook implements the GitHub webhook front door: source-IP
// allow-listing and HMAC-SHA1 signature verification in front of the event
// dispatcher.
//
// # Security Model
//
//   - Deliveries are accepted only from configured CIDR blocks (GitHub's
//     published webhook ranges by default); malformed addresses fail closed.
//     Only the TCP peer address is consulted; X-Forwarded-For and friends
//     are client-controlled and ignored
//   - HMAC-SHA1 signatures ("sha1=<hex>" in X-Hub-Signature) verified over
//     the raw body bytes as received, never a re-serialized parse
//   - The signature compare is byte-for-byte over equal-length buffers, not
//     constant time; documented limitation of the wire contract
//   - Body size limits enforced to prevent resource exhaustion
//
// # Request Flow
//
//  1. HTTP POST arrives at /github
//  2. Source address checked against the allow-list (403 on deny)
//  3. Body size checked (413 if too large)
//  4. HMAC-SHA1 computed over raw body, compared to X-Hub-Signature
//     (400 with distinct bodies for missing vs. mismatched)
//  5. X-GitHub-Event dispatched to at most one registered handler;
//     unknown or disabled events are a no-op
//  6. 204 No Content returned immediately; formatting and publishing run
//     detached from the request
//
// # Error Responses
//
//   - 403 "Access denied": source not allow-listed
//   - 400 "Invalid or missing GitHub signature": no signature header
//   - 400 "Invalid GitHub signature": signature mismatch
//   - 413: body exceeds max size
//   - 204: accepted and dispatched (whether or not a note is published)
package webhook
