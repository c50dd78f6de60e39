package service

import (
	"net/url"
	"strings"
)

// defaultHosts are the accepted video source domains.
var defaultHosts = []string{"youtube.com", "youtu.be"}

// LinkClassifier decides whether a message text references a
// supported video source.
type LinkClassifier struct {
	hosts []string
}

// NewLinkClassifier creates a classifier for the given domains, or
// the YouTube defaults when none are given.
func NewLinkClassifier(hosts ...string) *LinkClassifier {
	if len(hosts) == 0 {
		hosts = defaultHosts
	}
	lowered := make([]string, len(hosts))
	for i, h := range hosts {
		lowered[i] = strings.ToLower(h)
	}
	return &LinkClassifier{hosts: lowered}
}

// Classify reports whether text is an http(s) URL whose host is one
// of the accepted domains or a subdomain of one. The host component
// is parsed and compared, so an accepted domain appearing elsewhere
// in the text (a query parameter, a path segment) does not match.
func (c *LinkClassifier) Classify(text string) bool {
	u, err := url.Parse(strings.TrimSpace(text))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, accepted := range c.hosts {
		if host == accepted || strings.HasSuffix(host, "."+accepted) {
			return true
		}
	}
	return false
}
