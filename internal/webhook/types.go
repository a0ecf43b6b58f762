package webhook

// Config holds webhook server configuration.
type Config struct {
	// Listen is the host:port the front door binds.
	Listen string

	// Secret is the shared HMAC secret GitHub signs deliveries with.
	Secret string

	// AllowedSources are the CIDR blocks deliveries may originate from
	// (GitHub's published webhook ranges by default).
	AllowedSources []string

	// MaxBodySize is the maximum allowed request body size in bytes
	// (default: 1MB).
	MaxBodySize int64
}

// GitHub delivery headers.
const (
	HeaderEvent     = "X-GitHub-Event"
	HeaderSignature = "X-Hub-Signature"
	HeaderDelivery  = "X-GitHub-Delivery"
)

// DefaultMaxBodySize is the body limit applied when none is configured.
const DefaultMaxBodySize = 1048576 // 1 MB

// Plain-text response bodies.
const (
	msgAccessDenied     = "Access denied"
	msgMissingSignature = "Invalid or missing GitHub signature"
	msgBadSignature     = "Invalid GitHub signature"
)

// Dispatcher hands a verified delivery to its event handler. Returns whether
// a handler was registered for the event type.
type Dispatcher interface {
	Dispatch(event, deliveryID string, body []byte) bool
}
