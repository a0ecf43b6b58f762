package webhook

import (
	"fmt"
	"net"
	"net/netip"
)

// DefaultAllowedSources are GitHub's published webhook source ranges. The
// provider can change them, so they are a configurable default rather than
// a constant.
var DefaultAllowedSources = []string{
	"192.30.252.0/22",
	"185.199.108.0/22",
	"140.82.112.0/20",
	"143.55.64.0/20",
}

// SourceFilter checks client addresses against a fixed set of CIDR blocks.
type SourceFilter struct {
	prefixes []netip.Prefix
}

// NewSourceFilter parses the configured CIDR blocks. An empty list falls
// back to DefaultAllowedSources.
func NewSourceFilter(cidrs []string) (*SourceFilter, error) {
	if len(cidrs) == 0 {
		cidrs = DefaultAllowedSources
	}

	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, c := range cidrs {
		p, err := netip.ParsePrefix(c)
		if err != nil {
			return nil, fmt.Errorf("invalid source CIDR %q: %w", c, err)
		}
		prefixes = append(prefixes, p)
	}
	return &SourceFilter{prefixes: prefixes}, nil
}

// Allowed reports whether remoteAddr (a host:port or bare address) falls
// inside any configured block. Malformed addresses deny (fail closed).
func (f *SourceFilter) Allowed(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, p := range f.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
