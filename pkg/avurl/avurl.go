// Package avurl parses media URLs (rtmp://, rtmps://, http://, ...) the way
// ffmpeg splits them.
package avurl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/edirooss/streamforge/pkg/hostutil"
)

var (
	ErrUnparsable = errors.New("unable to parse URL")
	ErrNotStream  = errors.New("not an RTMP URL")
)

type URL struct {
	Scheme   string `json:"scheme"`
	Userinfo string `json:"userinfo"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Path     string `json:"path"`
}

// Parse splits raw into components and validates host and port.
func Parse(raw string) (*URL, error) {
	scheme, userinfo, host, port, path, l := split(raw)

	// re-joining must reproduce the input; anything else is a split bug
	if raw != join(scheme, userinfo, host, port, path, l) {
		return nil, ErrUnparsable
	}
	if l.junk != "" {
		return nil, fmt.Errorf("invalid URL: junk %q after ']'", l.junk)
	}
	if l.at {
		return nil, errors.New("userinfo should not be embedded in the URL")
	}
	if host != "" {
		if err := hostutil.ValidateHost(host); err != nil {
			return nil, err
		}
	}
	if port != "" && !isPort(port) {
		return nil, fmt.Errorf("bad port: '%s'", port)
	}

	return &URL{Scheme: scheme, Userinfo: userinfo, Host: host, Port: port, Path: path}, nil
}

// ParseRTMP parses raw and additionally requires an rtmp/rtmps scheme and a host.
func ParseRTMP(raw string) (*URL, error) {
	u, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(u.Scheme) {
	case "rtmp", "rtmps":
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrNotStream, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrNotStream)
	}
	return u, nil
}

// isPort reports whether s is a decimal port (0–65535) without leading zeros.
func isPort(s string) bool {
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= 0 && n <= 65535
}
