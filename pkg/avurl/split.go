package avurl

import "strings"

// layout records the punctuation split() consumed so join() can put it back.
type layout struct {
	scheme  bool   // ':' after scheme
	slashes int    // leading '/' after "scheme:" (0..2)
	at      bool   // '@' after userinfo
	bracket bool   // host was a "[v6]" literal
	port    bool   // ':' before port
	junk    string // bytes between ']' and the path
}

// split follows FFmpeg's av_url_split (libavformat/utils.c) so that stream
// URLs are read the same way ffmpeg will read them.
//
// Unlike the C version the port is kept as the raw substring ("123abc" stays
// "123abc" instead of becoming 123).
func split(raw string) (scheme, userinfo, host, port, path string, l layout) {
	colon := strings.IndexByte(raw, ':')
	if colon == -1 {
		path = raw // no scheme: plain file name
		return
	}
	l.scheme = true
	scheme = raw[:colon]

	cur := colon + 1
	for l.slashes < 2 && cur < len(raw) && raw[cur] == '/' {
		cur++
		l.slashes++
	}
	if cur == len(raw) {
		return
	}

	end := cur + strcspn(raw[cur:], "/?#")
	path = raw[end:]
	if end == cur {
		return // "scheme:[//]/path", no authority
	}

	// userinfo runs up to the last '@' of the authority
	for {
		i := strings.IndexByte(raw[cur:end], '@')
		if i == -1 {
			break
		}
		l.at = true
		userinfo = raw[colon+1+l.slashes : cur+i]
		cur += i + 1
		if cur == len(raw) {
			return
		}
	}

	if rb := strings.IndexByte(raw[cur:end], ']'); rb != -1 && raw[cur] == '[' {
		l.bracket = true
		host = raw[cur+1 : cur+rb]
		cur += rb + 1
		if cur == len(raw) {
			return
		}
		switch {
		case raw[cur] == ':':
			l.port = true
			port = raw[cur+1 : end]
		case cur != end:
			l.junk = raw[cur:end]
		}
		return
	}

	if i := strings.IndexByte(raw[cur:end], ':'); i != -1 {
		l.port = true
		host = raw[cur : cur+i]
		port = raw[cur+i+1 : end]
		return
	}
	host = raw[cur:end]
	return
}

// join is the inverse of split.
func join(scheme, userinfo, host, port, path string, l layout) string {
	var sb strings.Builder
	sb.WriteString(scheme)
	if l.scheme {
		sb.WriteByte(':')
	}
	sb.WriteString(strings.Repeat("/", l.slashes))
	sb.WriteString(userinfo)
	if l.at {
		sb.WriteByte('@')
	}
	if l.bracket {
		sb.WriteString("[" + host + "]")
	} else {
		sb.WriteString(host)
	}
	if l.port {
		sb.WriteByte(':')
	}
	sb.WriteString(port)
	sb.WriteString(l.junk)
	sb.WriteString(path)
	return sb.String()
}

// strcspn returns the length of the leading part of s holding none of reject.
func strcspn(s, reject string) int {
	if i := strings.IndexAny(s, reject); i != -1 {
		return i
	}
	return len(s)
}
