// Package hostutil validates the host part of stream and service URLs.
package hostutil

import (
	"fmt"
	"net"
	"strings"
)

// ValidateHost accepts a dotted-quad IPv4 address, an IPv6 literal (without
// brackets) or an RFC 1123 hostname.
func ValidateHost(raw string) error {
	switch {
	case looksLikeIPv4(raw):
		if ip := net.ParseIP(raw); ip == nil || ip.To4() == nil {
			return fmt.Errorf("bad IP: '%s'", raw)
		}
	case strings.Contains(raw, ":"):
		if ip := net.ParseIP(raw); ip == nil || ip.To4() != nil {
			return fmt.Errorf("bad IPv6: '%s'", raw)
		}
	default:
		if !validHostname(raw) {
			return fmt.Errorf("bad hostname: '%s'", raw)
		}
	}
	return nil
}

// looksLikeIPv4 reports four dot-separated all-digit groups.
func looksLikeIPv4(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || strings.Trim(p, "0123456789") != "" {
			return false
		}
	}
	return true
}

func validHostname(raw string) bool {
	if raw == "" || len(raw) > 253 {
		return false
	}
	for _, label := range strings.Split(raw, ".") {
		if len(label) < 1 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
				return false
			}
		}
	}
	return true
}
