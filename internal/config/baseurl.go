package config

import (
	"net"
	"strings"
)

// DefaultBaseURL is used when no rule matches the deployment host.
const DefaultBaseURL = "http://127.0.0.1:8000/api"

const productionDomain = "kitchenhelper-ai.de"

type hostRule struct {
	match func(host string) bool
	url   func(host string) string
}

// Rules are checked in order; the first match wins.
var hostRules = []hostRule{
	{
		match: func(h string) bool { return h == productionDomain || h == "www."+productionDomain },
		url:   func(string) string { return "https://api." + productionDomain + "/api" },
	},
	{
		match: func(h string) bool { return strings.HasSuffix(h, "."+productionDomain) },
		url:   func(h string) string { return "https://" + h + "/api" },
	},
	{
		match: func(h string) bool { return h == "localhost" || h == "127.0.0.1" || h == "::1" },
		url:   func(string) string { return DefaultBaseURL },
	},
}

// ResolveBaseURL maps the host the client is deployed against to the API
// prefix. A port in host is ignored.
func ResolveBaseURL(host string) string {
	h := normalizeHost(host)
	if h == "" {
		return DefaultBaseURL
	}
	for _, rule := range hostRules {
		if rule.match(h) {
			return rule.url(h)
		}
	}
	return DefaultBaseURL
}

func normalizeHost(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	h = strings.TrimPrefix(h, "https://")
	h = strings.TrimPrefix(h, "http://")
	if i := strings.IndexByte(h, '/'); i >= 0 {
		h = h[:i]
	}
	if split, _, err := net.SplitHostPort(h); err == nil {
		h = split
	}
	return strings.Trim(strings.TrimSuffix(h, "."), "[]")
}
