package twelvelabs

import (
	"fmt"
	"net/url"
	"strings"
)

const defaultBaseURL = "https://api.twelvelabs.io"

var defaultAllowedHosts = map[string]struct{}{
	"api.twelvelabs.io": {},
}

func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}

// ValidateBaseURL rejects analysis API endpoints that could leak the API key:
// only https, no userinfo, no query or fragment, and the host must be the
// default API host or explicitly allow-listed.
func ValidateBaseURL(baseURL string, allowedHosts []string) error {
	baseURL = normalizeBaseURL(baseURL)

	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid TWELVELABS_BASE_URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid TWELVELABS_BASE_URL %q: absolute URL with host is required", baseURL)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("invalid TWELVELABS_BASE_URL %q: https is required", baseURL)
	}
	if u.User != nil {
		return fmt.Errorf("invalid TWELVELABS_BASE_URL %q: userinfo is not allowed", baseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("invalid TWELVELABS_BASE_URL %q: query and fragment are not allowed", baseURL)
	}

	host := strings.ToLower(u.Hostname())
	if _, ok := defaultAllowedHosts[host]; ok {
		return nil
	}
	for _, h := range allowedHosts {
		if strings.EqualFold(strings.TrimSpace(h), host) {
			return nil
		}
	}
	return fmt.Errorf("invalid TWELVELABS_BASE_URL %q: host %q is not in TWELVELABS_ALLOWED_HOSTS", baseURL, host)
}
